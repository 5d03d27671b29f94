// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"net/mail"
	"strings"

	"codeberg.org/avollmer/taskmate/internal/models"
	"codeberg.org/avollmer/taskmate/internal/services/session"
	"codeberg.org/avollmer/taskmate/internal/templates"
	"github.com/labstack/echo/v4"
)

// ProfilePage renders the user's account data and preferences.
func (h *Handlers) ProfilePage(c echo.Context) error {
	profile, err := h.repo.GetOrCreateProfile(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return Render(c, http.StatusOK, templates.Profile(profile))
}

// UpdateProfile handles the profile form: account fields (name, email) on the
// user record, preferences on the profile record.
func (h *Handlers) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	email := strings.TrimSpace(c.FormValue("email"))
	if _, err := mail.ParseAddress(email); err != nil {
		flashT(c, session.FlashError, "flash_invalid_email")
		return c.Redirect(http.StatusSeeOther, "/profile")
	}

	// Moving to an address that belongs to another account
	if !strings.EqualFold(email, user.Email) {
		exists, err := h.repo.UserExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			flashT(c, session.FlashError, "flash_email_in_use")
			return c.Redirect(http.StatusSeeOther, "/profile")
		}
	}

	user.FirstName, user.LastName = models.SplitFullName(c.FormValue("full_name"))
	user.Email = email
	if err := h.repo.UpdateUser(ctx, user); err != nil {
		return err
	}

	category := c.FormValue("default_category")
	if !models.ValidCategory(category) {
		category = models.CategoryWork
	}

	profile := &models.Profile{
		UserID:             user.ID,
		DefaultCategory:    category,
		EmailNotifications: c.FormValue("email_notifications") != "",
	}
	if err := h.repo.SaveProfile(ctx, profile); err != nil {
		return err
	}

	flashT(c, session.FlashSuccess, "flash_profile_updated")
	return c.Redirect(http.StatusSeeOther, "/profile")
}
