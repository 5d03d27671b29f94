// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/avollmer/taskmate/internal/config"
	"codeberg.org/avollmer/taskmate/internal/repository"
	"codeberg.org/avollmer/taskmate/internal/services/recovery"
	"codeberg.org/avollmer/taskmate/internal/services/session"
	"codeberg.org/avollmer/taskmate/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validHashKey is a valid 32-byte hex-encoded key for testing
const validHashKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func newTestConfig() *config.SessionConfig {
	return &config.SessionConfig{
		CookieName: "_test_session",
		MaxAge:     3600,
		HashKey:    validHashKey,
	}
}

func newTestManager(t *testing.T) (*session.Manager, *repository.Repository) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	mgr, err := session.NewManager(repo, newTestConfig(), false)
	require.NoError(t, err)
	return mgr, repo
}

// serve runs one request through the session middleware and returns the
// response plus any cookies it set.
func serve(mgr *session.Manager, cookies []*http.Cookie, handler echo.HandlerFunc) (*httptest.ResponseRecorder, []*http.Cookie) {
	e := echo.New()
	e.Use(mgr.Middleware())
	e.GET("/", handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, rec.Result().Cookies()
}

func TestNewManager(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.NotNil(t, mgr)
}

func TestNewManager_EmptyHashKeyGeneratesEphemeral(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	cfg := newTestConfig()
	cfg.HashKey = ""

	mgr, err := session.NewManager(repo, cfg, false)

	require.NoError(t, err)
	assert.NotNil(t, mgr)
}

func TestNewManager_InvalidHashKey(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	cfg := newTestConfig()
	cfg.HashKey = "not-hex"

	_, err := session.NewManager(repo, cfg, false)

	require.Error(t, err)
}

func TestNewManager_ShortHashKey(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	cfg := newTestConfig()
	cfg.HashKey = "0123456789abcdef" // 8 bytes

	_, err := session.NewManager(repo, cfg, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "key too short")
}

func TestMiddleware_SetsCookieOnFreshSession(t *testing.T) {
	mgr, _ := newTestManager(t)

	_, cookies := serve(mgr, nil, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.Len(t, cookies, 1)
	assert.Equal(t, "_test_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestSession_FlashRoundTrip(t *testing.T) {
	mgr, _ := newTestManager(t)

	_, cookies := serve(mgr, nil, func(c echo.Context) error {
		sess := session.FromContext(c.Request().Context())
		sess.Flash(session.FlashSuccess, "hello")
		return c.NoContent(http.StatusOK)
	})

	var popped []session.Flash
	serve(mgr, cookies, func(c echo.Context) error {
		popped = session.FromContext(c.Request().Context()).PopFlashes()
		return c.NoContent(http.StatusOK)
	})

	require.Len(t, popped, 1)
	assert.Equal(t, session.FlashSuccess, popped[0].Level)
	assert.Equal(t, "hello", popped[0].Message)

	// Flashes are one-shot
	serve(mgr, cookies, func(c echo.Context) error {
		assert.Empty(t, session.FromContext(c.Request().Context()).PopFlashes())
		return c.NoContent(http.StatusOK)
	})
}

func TestSession_UserIDPersists(t *testing.T) {
	mgr, _ := newTestManager(t)

	_, cookies := serve(mgr, nil, func(c echo.Context) error {
		session.FromContext(c.Request().Context()).SetUserID(42)
		return c.NoContent(http.StatusOK)
	})

	serve(mgr, cookies, func(c echo.Context) error {
		assert.Equal(t, int64(42), session.FromContext(c.Request().Context()).UserID())
		return c.NoContent(http.StatusOK)
	})
}

func TestSession_RecoveryStateRoundTrip(t *testing.T) {
	mgr, _ := newTestManager(t)

	_, cookies := serve(mgr, nil, func(c echo.Context) error {
		sess := session.FromContext(c.Request().Context())
		sess.SetRecoveryState(&recovery.State{
			Step:  recovery.StepOTPEntry,
			Email: "anna@example.com",
			Code:  "123456",
		})
		return c.NoContent(http.StatusOK)
	})

	serve(mgr, cookies, func(c echo.Context) error {
		st := session.FromContext(c.Request().Context()).RecoveryState()
		require.NotNil(t, st)
		assert.Equal(t, recovery.StepOTPEntry, st.Step)
		assert.Equal(t, "anna@example.com", st.Email)
		assert.Equal(t, "123456", st.Code)
		return c.NoContent(http.StatusOK)
	})
}

func TestSession_RenewTokenKeepsData(t *testing.T) {
	mgr, _ := newTestManager(t)

	_, cookies := serve(mgr, nil, func(c echo.Context) error {
		session.FromContext(c.Request().Context()).SetUserID(7)
		return c.NoContent(http.StatusOK)
	})

	var renewed []*http.Cookie
	_, renewed = serve(mgr, cookies, func(c echo.Context) error {
		sess := session.FromContext(c.Request().Context())
		require.NoError(t, sess.RenewToken(c.Request().Context()))
		return c.NoContent(http.StatusOK)
	})
	require.NotEmpty(t, renewed)
	assert.NotEqual(t, cookies[0].Value, renewed[0].Value, "token rotation must change the cookie")

	// Data survives under the new token
	serve(mgr, renewed, func(c echo.Context) error {
		assert.Equal(t, int64(7), session.FromContext(c.Request().Context()).UserID())
		return c.NoContent(http.StatusOK)
	})

	// The old token no longer resolves to the session
	serve(mgr, cookies, func(c echo.Context) error {
		assert.Zero(t, session.FromContext(c.Request().Context()).UserID())
		return c.NoContent(http.StatusOK)
	})
}

func TestSession_Destroy(t *testing.T) {
	mgr, _ := newTestManager(t)

	_, cookies := serve(mgr, nil, func(c echo.Context) error {
		session.FromContext(c.Request().Context()).SetUserID(7)
		return c.NoContent(http.StatusOK)
	})

	_, destroyed := serve(mgr, cookies, func(c echo.Context) error {
		return session.FromContext(c.Request().Context()).Destroy(c.Request().Context())
	})

	// The cookie is expired
	var sessionCookie *http.Cookie
	for _, c := range destroyed {
		if c.Name == "_test_session" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Negative(t, sessionCookie.MaxAge)

	// The old cookie no longer yields the identity
	serve(mgr, cookies, func(c echo.Context) error {
		assert.Zero(t, session.FromContext(c.Request().Context()).UserID())
		return c.NoContent(http.StatusOK)
	})
}

func TestFromContext_OutsideMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, session.FromContext(req.Context()))
}
