// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package htmx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/avollmer/taskmate/internal/htmx"
	"github.com/stretchr/testify/assert"
)

func TestParseRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(htmx.HeaderRequest, "true")
	req.Header.Set(htmx.HeaderTarget, "task-list")

	parsed := htmx.ParseRequest(req)

	assert.True(t, parsed.IsHtmx)
	assert.False(t, parsed.IsBoosted)
	assert.Equal(t, "task-list", parsed.Target)
}

func TestIsRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, htmx.IsRequest(req))

	req.Header.Set(htmx.HeaderRequest, "true")
	assert.True(t, htmx.IsRequest(req))
}

func TestRedirect_Htmx(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(htmx.HeaderRequest, "true")
	rec := httptest.NewRecorder()

	htmx.Redirect(rec, req, "/login")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(htmx.HeaderRedirect))
}

func TestRedirect_Regular(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	htmx.Redirect(rec, req, "/login")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
