// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package recovery

import (
	"context"
	"testing"
	"time"

	"codeberg.org/avollmer/taskmate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClockStore is a minimal in-memory Store for clock tests.
type fakeClockStore struct {
	state *State
}

func (s *fakeClockStore) RecoveryState() *State         { return s.state }
func (s *fakeClockStore) SetRecoveryState(st *State)    { s.state = st }
func (s *fakeClockStore) Destroy(context.Context) error { return nil }

// staticDirectory resolves every email to the same user.
type staticDirectory struct{}

func (staticDirectory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return &models.User{ID: 1, Email: email}, nil
}

func (staticDirectory) UpdateUserPassword(context.Context, int64, string) error {
	return nil
}

type noopNotifier struct{}

func (noopNotifier) SendOTP(context.Context, string, string) error { return nil }

func TestSubmitCode_ExpiredCode(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	flow := &Flow{
		now: func() time.Time { return issued.Add(CodeTTL + time.Second) },
	}
	store := &fakeClockStore{state: &State{
		Step:     StepOTPEntry,
		Email:    "anna@example.com",
		Code:     "123456",
		IssuedAt: issued,
	}}

	err := flow.SubmitCode(store, "123456")

	require.ErrorIs(t, err, ErrCodeExpired)
	assert.Equal(t, StepOTPEntry, store.state.Step, "an expired code does not advance the flow")
}

func TestSubmitCode_JustWithinTTL(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	flow := &Flow{
		now: func() time.Time { return issued.Add(CodeTTL) },
	}
	store := &fakeClockStore{state: &State{
		Step:     StepOTPEntry,
		Email:    "anna@example.com",
		Code:     "123456",
		IssuedAt: issued,
	}}

	err := flow.SubmitCode(store, "123456")

	require.NoError(t, err)
	assert.Equal(t, StepPasswordEntry, store.state.Step)
}

func TestSubmitEmail_RestartsExpiryWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	flow := &Flow{
		users:    staticDirectory{},
		notifier: noopNotifier{},
		now:      func() time.Time { return now },
	}
	store := &fakeClockStore{}

	require.NoError(t, flow.SubmitEmail(context.Background(), store, "anna@example.com"))
	assert.Equal(t, now, store.state.IssuedAt)

	// Resubmitting later restarts the window
	now = now.Add(9 * time.Minute)
	require.NoError(t, flow.SubmitEmail(context.Background(), store, "anna@example.com"))
	assert.Equal(t, now, store.state.IssuedAt)
}
