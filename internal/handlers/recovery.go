// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"codeberg.org/avollmer/taskmate/internal/services/recovery"
	"codeberg.org/avollmer/taskmate/internal/services/session"
	"codeberg.org/avollmer/taskmate/internal/templates"
	"github.com/labstack/echo/v4"
)

// ForgotPassword renders the recovery form for whatever step the session is
// at. A fresh session starts at email entry.
func (h *Handlers) ForgotPassword(c echo.Context) error {
	step := h.flow.CurrentStep(sess(c))
	return Render(c, http.StatusOK, templates.ForgotPassword(string(step)))
}

// VerifyEmail takes the account email, issues a code and mails it out. A
// failing mail transport is fatal to the request; the recovery state is left
// untouched so the user can simply retry.
func (h *Handlers) VerifyEmail(c echo.Context) error {
	err := h.flow.SubmitEmail(c.Request().Context(), sess(c), c.FormValue("email"))
	switch {
	case err == nil:
		flashT(c, session.FlashSuccess, "flash_otp_sent")
	case errors.Is(err, recovery.ErrUnknownEmail):
		flashT(c, session.FlashError, "flash_otp_unknown_email")
	default:
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/forgot-password")
}

// VerifyOTP checks the submitted code against the pending one.
func (h *Handlers) VerifyOTP(c echo.Context) error {
	err := h.flow.SubmitCode(sess(c), c.FormValue("otp"))
	switch {
	case err == nil:
		// advance to the password form
	case errors.Is(err, recovery.ErrCodeExpired):
		flashT(c, session.FlashError, "flash_otp_expired")
	case errors.Is(err, recovery.ErrIncorrectCode):
		flashT(c, session.FlashError, "flash_otp_incorrect")
	default:
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/forgot-password")
}

// ResetPassword sets the new password and ends the recovery session. On
// success the whole session is gone, so the confirmation is carried as a
// query parameter instead of a flash.
func (h *Handlers) ResetPassword(c echo.Context) error {
	err := h.flow.SubmitNewPassword(c.Request().Context(), sess(c),
		c.FormValue("new_password"), c.FormValue("confirm_password"))
	switch {
	case err == nil:
		return c.Redirect(http.StatusSeeOther, "/login?reset=1")
	case errors.Is(err, recovery.ErrPasswordMismatch):
		flashT(c, session.FlashError, "flash_passwords_mismatch")
	case errors.Is(err, recovery.ErrWrongStep):
		flashT(c, session.FlashError, "flash_reset_wrong_step")
	case errors.Is(err, recovery.ErrUserNotFound):
		flashT(c, session.FlashError, "flash_reset_user_missing")
	default:
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/forgot-password")
}
