// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

// Package recovery implements the password recovery flow: a small state
// machine that walks a session from email entry over OTP verification to the
// final password reset.
package recovery

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"codeberg.org/avollmer/taskmate/internal/models"
	"codeberg.org/avollmer/taskmate/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Step identifies the stage of the recovery flow a session is in.
type Step string

const (
	// StepEmailEntry asks for the account email. Initial step.
	StepEmailEntry Step = "email_entry"
	// StepOTPEntry asks for the code that was mailed out.
	StepOTPEntry Step = "otp_entry"
	// StepPasswordEntry asks for the new password.
	StepPasswordEntry Step = "password_entry"
)

// CodeTTL is how long an issued code stays valid. Submitting the email again
// rotates the code and restarts the window.
const CodeTTL = 10 * time.Minute

var (
	ErrUnknownEmail     = errors.New("no account for this email")
	ErrIncorrectCode    = errors.New("incorrect code")
	ErrCodeExpired      = errors.New("code expired")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongStep        = errors.New("recovery flow is not at the password step")
)

// State is the per-session recovery record. Code is present exactly when
// Email is present and the step has advanced past email entry.
type State struct { //nolint:govet // fieldalignment: readability over optimization
	Step     Step      `json:"step"`
	Email    string    `json:"email,omitempty"`
	Code     string    `json:"code,omitempty"`
	IssuedAt time.Time `json:"issued_at,omitempty"`
}

// Store is the session-held home of the recovery state. Destroy tears down
// the whole surrounding session, identity included.
type Store interface {
	RecoveryState() *State
	SetRecoveryState(*State)
	Destroy(ctx context.Context) error
}

// Directory is the user directory the flow resets passwords against.
// GetUserByEmail reports a missing account with repository.ErrNotFound.
type Directory interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
}

// Notifier delivers a one-time code to an email address.
type Notifier interface {
	SendOTP(ctx context.Context, to, code string) error
}

// Flow drives the recovery state machine. All operations are synchronous and
// mutate only the injected store.
type Flow struct {
	users    Directory
	notifier Notifier
	now      func() time.Time
}

// NewFlow creates a recovery flow over the given user directory and notifier.
func NewFlow(users Directory, notifier Notifier) *Flow {
	return &Flow{
		users:    users,
		notifier: notifier,
		now:      time.Now,
	}
}

// CurrentStep returns the step the session is at, defaulting a missing state
// to email entry and persisting that default.
func (f *Flow) CurrentStep(store Store) Step {
	st := store.RecoveryState()
	if st == nil || st.Step == "" {
		st = &State{Step: StepEmailEntry}
		store.SetRecoveryState(st)
	}
	return st.Step
}

// SubmitEmail looks up the account, issues a fresh code and mails it out.
// The session is only advanced after the notifier has accepted the message,
// so a transport failure leaves the state untouched. Repeated calls rotate
// the code; the previous one becomes invalid immediately.
func (f *Flow) SubmitEmail(ctx context.Context, store Store, email string) error {
	email = strings.TrimSpace(email)

	if _, err := f.users.GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownEmail
		}
		return fmt.Errorf("looking up user: %w", err)
	}

	code, err := GenerateCode()
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	if err := f.notifier.SendOTP(ctx, email, code); err != nil {
		return fmt.Errorf("sending code: %w", err)
	}

	store.SetRecoveryState(&State{
		Step:     StepOTPEntry,
		Email:    email,
		Code:     code,
		IssuedAt: f.now(),
	})
	return nil
}

// SubmitCode compares the submitted code with the pending one, requiring an
// exact string match. A match advances the session to the password step;
// anything else leaves the step unchanged so the user can retry.
func (f *Flow) SubmitCode(store Store, code string) error {
	st := store.RecoveryState()
	if st == nil || st.Code == "" {
		return ErrIncorrectCode
	}
	if f.now().After(st.IssuedAt.Add(CodeTTL)) {
		return ErrCodeExpired
	}
	if code != st.Code {
		return ErrIncorrectCode
	}

	st.Step = StepPasswordEntry
	store.SetRecoveryState(st)
	return nil
}

// SubmitNewPassword overwrites the account credential with a bcrypt hash of
// the new password and destroys the entire session. The session must have
// passed the OTP step; the code stays pending until this succeeds.
func (f *Flow) SubmitNewPassword(ctx context.Context, store Store, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	st := store.RecoveryState()
	if st == nil || st.Step != StepPasswordEntry {
		return ErrWrongStep
	}

	user, err := f.users.GetUserByEmail(ctx, st.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("looking up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := f.users.UpdateUserPassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	if err := store.Destroy(ctx); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	return nil
}

// GenerateCode draws a 6-digit code uniformly from [100000, 999999], so
// codes never carry a leading zero.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
