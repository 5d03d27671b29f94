// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package server

import (
	"log/slog"
	"path/filepath"

	"codeberg.org/avollmer/taskmate/internal/appcontext"
	"github.com/labstack/echo/v4"
)

// findAssets locates the content-hashed CSS and JS bundles produced by the
// asset build. Falls back to the unhashed paths when no build ran.
func findAssets() (*appcontext.Assets, error) {
	a := &appcontext.Assets{
		CSSPath: "/static/css/styles.css",
		JSPath:  "/static/js/htmx.js",
	}

	cssMatches, err := filepath.Glob(filepath.Join("static", "css", "styles.*.css"))
	if err != nil {
		return nil, err
	}
	if len(cssMatches) > 0 {
		a.CSSPath = "/" + filepath.ToSlash(cssMatches[0])
	}

	jsMatches, err := filepath.Glob(filepath.Join("static", "js", "htmx.*.js"))
	if err != nil {
		return nil, err
	}
	if len(jsMatches) > 0 {
		a.JSPath = "/" + filepath.ToSlash(jsMatches[0])
	}

	slog.Debug("assets loaded", "css", a.CSSPath, "js", a.JSPath)
	return a, nil
}

// assetsToContext puts the resolved asset paths into the request context for
// templates.
func assetsToContext(assets *appcontext.Assets) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := appcontext.SetAssets(c.Request().Context(), assets)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
