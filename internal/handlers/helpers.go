// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package handlers

import (
	"context"

	"codeberg.org/avollmer/taskmate/internal/appcontext"
	"codeberg.org/avollmer/taskmate/internal/i18n"
	"codeberg.org/avollmer/taskmate/internal/models"
	"codeberg.org/avollmer/taskmate/internal/services/session"
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render renders a templ component with the given status code. Queued flash
// messages are popped into the render context so the layout can show them.
func Render(c echo.Context, statusCode int, component templ.Component) error {
	ctx := c.Request().Context()
	if sess := session.FromContext(ctx); sess != nil {
		ctx = context.WithValue(ctx, appcontext.Flashes{}, sess.PopFlashes())
	}

	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := component.Render(ctx, buf); err != nil {
		return err
	}

	return c.HTML(statusCode, buf.String())
}

// sess returns the request's session. The session middleware guarantees one.
func sess(c echo.Context) *session.Session {
	return session.FromContext(c.Request().Context())
}

// currentUser returns the authenticated user, or nil.
func currentUser(c echo.Context) *models.User {
	return appcontext.GetUser(c.Request().Context())
}

// flashT queues a localized flash message.
func flashT(c echo.Context, level, messageID string) {
	sess(c).Flash(level, i18n.T(c.Request().Context(), messageID))
}

// flashTData queues a localized flash message with template data.
func flashTData(c echo.Context, level, messageID string, data map[string]any) {
	sess(c).Flash(level, i18n.TData(c.Request().Context(), messageID, data))
}
