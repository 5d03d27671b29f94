// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"codeberg.org/avollmer/taskmate/internal/services/auth"
	"codeberg.org/avollmer/taskmate/internal/services/session"
	"codeberg.org/avollmer/taskmate/internal/templates"
	"github.com/labstack/echo/v4"
)

// SignupPage renders the registration form.
func (h *Handlers) SignupPage(c echo.Context) error {
	return Render(c, http.StatusOK, templates.Signup())
}

// Signup handles the registration form submission.
func (h *Handlers) Signup(c echo.Context) error {
	params := auth.RegisterParams{
		FullName:        c.FormValue("fullName"),
		Email:           c.FormValue("email"),
		Password:        c.FormValue("password"),
		ConfirmPassword: c.FormValue("confirmPassword"),
	}

	ctx := c.Request().Context()
	user, err := h.auth.Register(ctx, params)
	if err != nil {
		var validationErr *auth.PasswordValidationError
		switch {
		case errors.Is(err, auth.ErrPasswordMismatch):
			flashT(c, session.FlashError, "flash_passwords_mismatch")
		case errors.Is(err, auth.ErrInvalidEmail):
			flashT(c, session.FlashError, "flash_invalid_email")
		case errors.Is(err, auth.ErrUserExists):
			flashT(c, session.FlashError, "flash_email_in_use")
		case errors.As(err, &validationErr):
			for _, msg := range validationErr.Messages() {
				sess(c).Flash(session.FlashError, msg)
			}
		default:
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/signup")
	}

	// New accounts are signed in right away.
	s := sess(c)
	if err := s.RenewToken(ctx); err != nil {
		return err
	}
	s.SetUserID(user.ID)

	flashT(c, session.FlashSuccess, "flash_account_created")
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// LoginPage renders the login form.
func (h *Handlers) LoginPage(c echo.Context) error {
	reset := c.QueryParam("reset") == "1"
	return Render(c, http.StatusOK, templates.Login(reset))
}

// Login handles the login form submission.
func (h *Handlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.auth.Login(ctx, c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			flashT(c, session.FlashError, "flash_invalid_credentials")
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return err
	}

	s := sess(c)
	if err := s.RenewToken(ctx); err != nil {
		return err
	}
	s.SetUserID(user.ID)

	flashT(c, session.FlashSuccess, "flash_logged_in")
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout destroys the session and returns to the login page.
func (h *Handlers) Logout(c echo.Context) error {
	if err := sess(c).Destroy(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// PasswordChangePage renders the password change form.
func (h *Handlers) PasswordChangePage(c echo.Context) error {
	return Render(c, http.StatusOK, templates.PasswordChange(h.auth.PasswordValidator().GetHelpTexts()))
}

// PasswordChange handles the password change form submission.
func (h *Handlers) PasswordChange(c echo.Context) error {
	newPassword := c.FormValue("new_password")
	if newPassword != c.FormValue("confirm_password") {
		flashT(c, session.FlashError, "flash_passwords_mismatch")
		return c.Redirect(http.StatusSeeOther, "/password-change")
	}

	user := currentUser(c)
	err := h.auth.ChangePassword(c.Request().Context(), user.ID, c.FormValue("current_password"), newPassword)
	if err != nil {
		var validationErr *auth.PasswordValidationError
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			flashT(c, session.FlashError, "flash_invalid_credentials")
		case errors.As(err, &validationErr):
			for _, msg := range validationErr.Messages() {
				sess(c).Flash(session.FlashError, msg)
			}
		default:
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/password-change")
	}

	flashT(c, session.FlashSuccess, "flash_password_changed")
	return c.Redirect(http.StatusSeeOther, "/profile")
}
