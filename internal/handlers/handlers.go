// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

// Package handlers contains all HTTP handlers.
package handlers

import (
	"net/http"

	"codeberg.org/avollmer/taskmate/internal/repository"
	"codeberg.org/avollmer/taskmate/internal/services/auth"
	"codeberg.org/avollmer/taskmate/internal/services/recovery"
	"codeberg.org/avollmer/taskmate/internal/services/tasks"
	"codeberg.org/avollmer/taskmate/internal/templates"
	"github.com/labstack/echo/v4"
)

// Handlers bundles the services the HTTP layer needs.
type Handlers struct {
	repo  *repository.Repository
	auth  *auth.Service
	tasks *tasks.Service
	flow  *recovery.Flow
}

// New creates a new Handlers instance.
func New(repo *repository.Repository, authSvc *auth.Service, taskSvc *tasks.Service, flow *recovery.Flow) *Handlers {
	return &Handlers{
		repo:  repo,
		auth:  authSvc,
		tasks: taskSvc,
		flow:  flow,
	}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Home renders the landing page.
func (h *Handlers) Home(c echo.Context) error {
	return Render(c, http.StatusOK, templates.Home())
}
