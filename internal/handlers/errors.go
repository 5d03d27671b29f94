// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"codeberg.org/avollmer/taskmate/internal/templates"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders HTML error pages and keeps echo's default behavior for
// everything it cannot improve on.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
	}

	if code >= http.StatusInternalServerError {
		slog.Error("request failed",
			"error", err,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
		)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	if renderErr := Render(c, code, templates.ErrorPage(code)); renderErr != nil {
		_ = c.String(code, http.StatusText(code))
	}
}
