// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

// Package session provides server-side sessions. The session data lives as a
// JSON bag in the sessions table; the cookie only carries the session token,
// signed (and optionally encrypted) with securecookie.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"codeberg.org/avollmer/taskmate/internal/config"
	"codeberg.org/avollmer/taskmate/internal/models"
	"codeberg.org/avollmer/taskmate/internal/repository"
	"codeberg.org/avollmer/taskmate/internal/services/recovery"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
)

// Flash levels for transient user-visible notices.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Data is the typed content of a session.
type Data struct { //nolint:govet // fieldalignment: readability over optimization
	UserID   int64           `json:"user_id,omitempty"`
	Flashes  []Flash         `json:"flashes,omitempty"`
	Recovery *recovery.State `json:"recovery,omitempty"`
}

type contextKey struct{}

// Manager loads and saves sessions around each request.
type Manager struct { //nolint:govet // fieldalignment not critical
	repo       *repository.Repository
	codec      *securecookie.SecureCookie
	cookieName string
	maxAge     time.Duration
	secure     bool
}

// NewManager creates a session manager from the session config. An empty
// hash key gets replaced by an ephemeral random key, which invalidates all
// cookies on restart; fine for development, logged as a warning.
func NewManager(repo *repository.Repository, cfg *config.SessionConfig, secure bool) (*Manager, error) {
	hashKey, err := keyFromHex(cfg.HashKey, 32)
	if err != nil {
		return nil, fmt.Errorf("session hash key: %w", err)
	}
	if hashKey == nil {
		hashKey = make([]byte, 32)
		if _, err := rand.Read(hashKey); err != nil {
			return nil, err
		}
		slog.Warn("session hash key not configured, using ephemeral key")
	}

	var blockKey []byte
	if cfg.BlockKey != "" {
		blockKey, err = keyFromHex(cfg.BlockKey, 32)
		if err != nil {
			return nil, fmt.Errorf("session block key: %w", err)
		}
	}

	maxAge := time.Duration(cfg.MaxAge) * time.Second
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(int(maxAge.Seconds()))

	return &Manager{
		repo:       repo,
		codec:      codec,
		cookieName: cfg.CookieName,
		maxAge:     maxAge,
		secure:     secure,
	}, nil
}

func keyFromHex(s string, minLen int) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(key) < minLen {
		return nil, fmt.Errorf("key too short: need %d bytes, got %d", minLen, len(key))
	}
	return key, nil
}

// Session is the per-request view of one session. Mutations mark it dirty;
// the middleware persists it after the handler ran.
type Session struct { //nolint:govet // fieldalignment not critical
	mgr       *Manager
	token     string
	data      Data
	modified  bool
	destroyed bool
	setCookie func(*http.Cookie)
}

// Middleware loads the session before the handler and saves it afterwards.
// The cookie is written eagerly so handlers may commit the response at any
// time; only the database write happens after the handler.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			sess := m.load(ctx, c.Request())
			sess.setCookie = c.SetCookie

			if sess.token == "" {
				sess.token = uuid.New().String()
				m.writeCookie(sess)
			}

			c.SetRequest(c.Request().WithContext(WithContext(ctx, sess)))

			err := next(c)

			if saveErr := m.save(c.Request().Context(), sess); saveErr != nil {
				slog.Error("session save failed", "error", saveErr)
			}
			return err
		}
	}
}

// load resolves the request cookie to a session, falling back to a fresh one
// on any decode or lookup failure.
func (m *Manager) load(ctx context.Context, r *http.Request) *Session {
	sess := &Session{mgr: m}

	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return sess
	}

	var token string
	if err := m.codec.Decode(m.cookieName, cookie.Value, &token); err != nil {
		return sess
	}

	rec, err := m.repo.GetSession(ctx, token)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Error("session load failed", "error", err)
		}
		sess.token = token
		return sess
	}

	sess.token = token
	if err := json.Unmarshal(rec.Data, &sess.data); err != nil {
		sess.data = Data{}
	}
	return sess
}

func (m *Manager) save(ctx context.Context, sess *Session) error {
	if sess.destroyed || !sess.modified {
		return nil
	}

	payload, err := json.Marshal(sess.data)
	if err != nil {
		return err
	}

	return m.repo.UpsertSession(ctx, &models.SessionRecord{
		Token:     sess.token,
		Data:      payload,
		ExpiresAt: time.Now().UTC().Add(m.maxAge),
	})
}

func (m *Manager) writeCookie(sess *Session) {
	encoded, err := m.codec.Encode(m.cookieName, sess.token)
	if err != nil {
		slog.Error("session cookie encode failed", "error", err)
		return
	}
	if sess.setCookie == nil {
		return
	}
	sess.setCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// CleanupLoop deletes expired sessions periodically until ctx is canceled.
func (m *Manager) CleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.repo.DeleteExpiredSessions(ctx); err != nil {
				slog.Error("session cleanup failed", "error", err)
			}
		}
	}
}

// WithContext stores the session in the context.
func WithContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session for this request, or nil outside the
// session middleware.
func FromContext(ctx context.Context) *Session {
	if sess, ok := ctx.Value(contextKey{}).(*Session); ok {
		return sess
	}
	return nil
}

// UserID returns the authenticated user's ID, or 0 if not logged in.
func (s *Session) UserID() int64 {
	return s.data.UserID
}

// SetUserID marks the session as authenticated for the given user.
func (s *Session) SetUserID(id int64) {
	s.data.UserID = id
	s.modified = true
}

// Flash queues a one-shot notice for the next rendered page.
func (s *Session) Flash(level, message string) {
	s.data.Flashes = append(s.data.Flashes, Flash{Level: level, Message: message})
	s.modified = true
}

// PopFlashes returns queued notices and clears them.
func (s *Session) PopFlashes() []Flash {
	flashes := s.data.Flashes
	if len(flashes) > 0 {
		s.data.Flashes = nil
		s.modified = true
	}
	return flashes
}

// RecoveryState returns the password-recovery state, or nil if the flow has
// not been entered.
func (s *Session) RecoveryState() *recovery.State {
	return s.data.Recovery
}

// SetRecoveryState replaces the password-recovery state; nil clears it.
func (s *Session) SetRecoveryState(st *recovery.State) {
	s.data.Recovery = st
	s.modified = true
}

// RenewToken rotates the session token while keeping the data, preventing
// session fixation across privilege changes.
func (s *Session) RenewToken(ctx context.Context) error {
	if err := s.mgr.repo.DeleteSession(ctx, s.token); err != nil {
		return err
	}
	s.token = uuid.New().String()
	s.modified = true
	s.mgr.writeCookie(s)
	return nil
}

// Destroy removes the session row and expires the cookie. All session state,
// identity included, is gone afterwards.
func (s *Session) Destroy(ctx context.Context) error {
	if err := s.mgr.repo.DeleteSession(ctx, s.token); err != nil {
		return err
	}
	s.data = Data{}
	s.destroyed = true
	if s.setCookie == nil {
		return nil
	}
	s.setCookie(&http.Cookie{
		Name:     s.mgr.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.mgr.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
