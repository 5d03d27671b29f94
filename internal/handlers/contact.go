// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/avollmer/taskmate/internal/models"
	"codeberg.org/avollmer/taskmate/internal/services/session"
	"codeberg.org/avollmer/taskmate/internal/templates"
	"github.com/labstack/echo/v4"
)

// ContactPage renders the contact form.
func (h *Handlers) ContactPage(c echo.Context) error {
	return Render(c, http.StatusOK, templates.Contact())
}

// SubmitContact stores a contact message.
func (h *Handlers) SubmitContact(c echo.Context) error {
	msg := &models.ContactMessage{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Message: c.FormValue("message"),
	}
	if err := h.repo.CreateContactMessage(c.Request().Context(), msg); err != nil {
		return err
	}

	flashT(c, session.FlashSuccess, "flash_contact_sent")
	return c.Redirect(http.StatusSeeOther, "/contact")
}
