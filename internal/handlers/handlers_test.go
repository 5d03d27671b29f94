// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"codeberg.org/avollmer/taskmate/internal/appcontext"
	"codeberg.org/avollmer/taskmate/internal/config"
	"codeberg.org/avollmer/taskmate/internal/handlers"
	"codeberg.org/avollmer/taskmate/internal/i18n"
	"codeberg.org/avollmer/taskmate/internal/models"
	"codeberg.org/avollmer/taskmate/internal/repository"
	"codeberg.org/avollmer/taskmate/internal/services/auth"
	"codeberg.org/avollmer/taskmate/internal/services/recovery"
	"codeberg.org/avollmer/taskmate/internal/services/session"
	"codeberg.org/avollmer/taskmate/internal/services/tasks"
	"codeberg.org/avollmer/taskmate/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func init() {
	// Initialize i18n for template rendering
	_ = i18n.Init()
}

// validHashKey for session manager in tests
const testHashKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// sentCode records one delivered recovery code.
type sentCode struct {
	Email string
	Code  string
}

// captureNotifier records codes instead of mailing them.
type captureNotifier struct {
	sent []sentCode
}

func (n *captureNotifier) SendOTP(_ context.Context, email, code string) error {
	n.sent = append(n.sent, sentCode{Email: email, Code: code})
	return nil
}

func (n *captureNotifier) lastCode() string {
	if len(n.sent) == 0 {
		return ""
	}
	return n.sent[len(n.sent)-1].Code
}

// testApp runs the handlers behind the real session middleware, carrying
// cookies from one request to the next like a browser would.
type testApp struct {
	t        *testing.T
	e        *echo.Echo
	repo     *repository.Repository
	notifier *captureNotifier
	cookies  map[string]*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	_, repo := testutil.NewTestDB(t)

	sessions, err := session.NewManager(repo, &config.SessionConfig{
		CookieName: "_test_session",
		MaxAge:     3600,
		HashKey:    testHashKey,
	}, false)
	require.NoError(t, err)

	notifier := &captureNotifier{}
	h := handlers.New(repo, auth.NewService(repo), tasks.NewService(repo), recovery.NewFlow(repo, notifier))

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := i18n.WithLocale(c.Request().Context(), language.English)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})
	e.Use(sessions.Middleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if sess := session.FromContext(ctx); sess != nil && sess.UserID() != 0 {
				if user, err := repo.GetUserByID(ctx, sess.UserID()); err == nil {
					c.SetRequest(c.Request().WithContext(appcontext.SetUser(ctx, user)))
				}
			}
			return next(c)
		}
	})

	e.GET("/health", h.Health)
	e.GET("/", h.Home)
	e.GET("/signup", h.SignupPage)
	e.POST("/signup", h.Signup)
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)
	e.GET("/forgot-password", h.ForgotPassword)
	e.POST("/verify-email", h.VerifyEmail)
	e.POST("/verify-otp", h.VerifyOTP)
	e.POST("/reset-password", h.ResetPassword)
	e.GET("/contact", h.ContactPage)
	e.POST("/contact", h.SubmitContact)
	e.GET("/dashboard", h.Dashboard)
	e.GET("/tasks", h.TaskList)
	e.GET("/add-task", h.AddTaskPage)
	e.POST("/add-task", h.AddTask)
	e.GET("/task/edit/:id", h.EditTaskPage)
	e.POST("/task/edit/:id", h.EditTask)
	e.GET("/completed-tasks", h.CompletedTasks)
	e.GET("/projects", h.Projects)
	e.POST("/tasks/toggle-completion/:id", h.ToggleCompletion)
	e.POST("/tasks/restore-task/:id", h.RestoreTask)
	e.POST("/tasks/restore-task-ajax/:id", h.RestoreTaskAJAX)
	e.POST("/tasks/delete-task/:id", h.DeleteTask)
	e.GET("/profile", h.ProfilePage)
	e.POST("/profile", h.UpdateProfile)
	e.GET("/password-change", h.PasswordChangePage)
	e.POST("/password-change", h.PasswordChange)

	return &testApp{
		t:        t,
		e:        e,
		repo:     repo,
		notifier: notifier,
		cookies:  make(map[string]*http.Cookie),
	}
}

func (a *testApp) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	a.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, cookie := range a.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(a.cookies, cookie.Name)
		} else {
			a.cookies[cookie.Name] = cookie
		}
	}
	return rec
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(http.MethodGet, path, nil)
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, path, form)
}

// login creates a user and authenticates the cookie jar as them.
func (a *testApp) login(email string) *models.User {
	a.t.Helper()

	user := testutil.NewTestUser(a.t, a.repo, email)
	rec := a.post("/login", url.Values{
		"email":    {email},
		"password": {testutil.Password},
	})
	require.Equal(a.t, http.StatusSeeOther, rec.Code)
	return user
}

func TestNew(t *testing.T) {
	app := newTestApp(t)

	assert.NotNil(t, app.e)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHome(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Taskmate")
}

func TestHome_SetsSessionCookie(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Result().Cookies())
	assert.Equal(t, "_test_session", rec.Result().Cookies()[0].Name)
}
