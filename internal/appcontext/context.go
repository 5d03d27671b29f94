// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

// Package appcontext defines typed context keys and helpers shared across
// handlers, middleware and templates.
package appcontext

import (
	"context"

	"codeberg.org/avollmer/taskmate/internal/models"
)

// Context keys for storing values in context.Context.
type (
	// CSRFToken is the context key for the CSRF token.
	CSRFToken struct{}
	// User is the context key for the authenticated user.
	User struct{}
	// Flashes is the context key for the flash messages of this render.
	Flashes struct{}
	// AssetPaths is the context key for the static asset paths.
	AssetPaths struct{}
)

// Assets holds paths to static assets.
type Assets struct {
	CSSPath string
	JSPath  string
}

// SetAssets stores the static asset paths in the context.
func SetAssets(ctx context.Context, assets *Assets) context.Context {
	return context.WithValue(ctx, AssetPaths{}, assets)
}

// GetAssets returns the static asset paths from the context, falling back to
// the unhashed defaults.
func GetAssets(ctx context.Context) *Assets {
	if assets, ok := ctx.Value(AssetPaths{}).(*Assets); ok {
		return assets
	}
	return &Assets{
		CSSPath: "/static/css/styles.css",
		JSPath:  "/static/js/htmx.js",
	}
}

// SetUser stores the authenticated user in the context.
func SetUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, User{}, user)
}

// GetUser returns the authenticated user from the context, or nil if not
// authenticated.
func GetUser(ctx context.Context) *models.User {
	if user, ok := ctx.Value(User{}).(*models.User); ok {
		return user
	}
	return nil
}

// IsAuthenticated returns true if the context has an authenticated user.
func IsAuthenticated(ctx context.Context) bool {
	return GetUser(ctx) != nil
}
