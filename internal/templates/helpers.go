// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package templates

import (
	"context"
	"time"

	"codeberg.org/avollmer/taskmate/internal/appcontext"
	"codeberg.org/avollmer/taskmate/internal/i18n"
	"codeberg.org/avollmer/taskmate/internal/models"
	"codeberg.org/avollmer/taskmate/internal/services/session"
)

// CSRFToken returns the CSRF token from the context.
func CSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(appcontext.CSRFToken{}).(string); ok {
		return token
	}
	return ""
}

// T translates a message by ID.
func T(ctx context.Context, messageID string) string {
	return i18n.T(ctx, messageID)
}

// TData translates a message with template data.
func TData(ctx context.Context, messageID string, data map[string]any) string {
	return i18n.TData(ctx, messageID, data)
}

// Locale returns the current locale.
func Locale(ctx context.Context) string {
	return i18n.GetLocale(ctx)
}

// GetUser returns the authenticated user from context, or nil if not logged in.
func GetUser(ctx context.Context) *models.User {
	if user, ok := ctx.Value(appcontext.User{}).(*models.User); ok {
		return user
	}
	return nil
}

// IsAuthenticated returns true if a user is logged in.
func IsAuthenticated(ctx context.Context) bool {
	return GetUser(ctx) != nil
}

// GetFlashes returns the flash messages popped for this render.
func GetFlashes(ctx context.Context) []session.Flash {
	if flashes, ok := ctx.Value(appcontext.Flashes{}).([]session.Flash); ok {
		return flashes
	}
	return nil
}

// CSSPath returns the path of the main stylesheet bundle.
func CSSPath(ctx context.Context) string {
	return appcontext.GetAssets(ctx).CSSPath
}

// JSPath returns the path of the htmx bundle.
func JSPath(ctx context.Context) string {
	return appcontext.GetAssets(ctx).JSPath
}

// FormatDate renders a day-granular date, or an empty string for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// FormatDateInput renders a date for an <input type="date"> value.
func FormatDateInput(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
