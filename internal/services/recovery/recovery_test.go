// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package recovery_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"codeberg.org/avollmer/taskmate/internal/services/recovery"
	"codeberg.org/avollmer/taskmate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeStore holds the recovery state in memory, like a session would.
type fakeStore struct {
	state     *recovery.State
	destroyed bool
}

func (s *fakeStore) RecoveryState() *recovery.State      { return s.state }
func (s *fakeStore) SetRecoveryState(st *recovery.State) { s.state = st }

func (s *fakeStore) Destroy(_ context.Context) error {
	s.destroyed = true
	s.state = nil
	return nil
}

// fakeNotifier records sent codes and can be told to fail.
type fakeNotifier struct {
	sent []sentCode
	err  error
}

type sentCode struct {
	to   string
	code string
}

func (n *fakeNotifier) SendOTP(_ context.Context, to, code string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentCode{to: to, code: code})
	return nil
}

func TestCurrentStep_DefaultsToEmailEntry(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	flow := recovery.NewFlow(repo, &fakeNotifier{})
	store := &fakeStore{}

	step := flow.CurrentStep(store)

	assert.Equal(t, recovery.StepEmailEntry, step)
	// The default is persisted so the next render sees the same step
	require.NotNil(t, store.state)
	assert.Equal(t, recovery.StepEmailEntry, store.state.Step)
}

func TestSubmitEmail_UnknownEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	notifier := &fakeNotifier{}
	flow := recovery.NewFlow(repo, notifier)
	store := &fakeStore{}

	err := flow.SubmitEmail(context.Background(), store, "nobody@example.com")

	require.ErrorIs(t, err, recovery.ErrUnknownEmail)
	assert.Nil(t, store.state, "state must not change on unknown email")
	assert.Empty(t, notifier.sent, "no code may be sent for unknown email")
}

func TestSubmitEmail_AdvancesAndSendsCode(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	notifier := &fakeNotifier{}
	flow := recovery.NewFlow(repo, notifier)
	store := &fakeStore{}

	err := flow.SubmitEmail(context.Background(), store, "anna@example.com")

	require.NoError(t, err)
	require.NotNil(t, store.state)
	assert.Equal(t, recovery.StepOTPEntry, store.state.Step)
	assert.Equal(t, user.Email, store.state.Email)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), store.state.Code)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "anna@example.com", notifier.sent[0].to)
	assert.Equal(t, store.state.Code, notifier.sent[0].code)
}

func TestSubmitEmail_TrimsWhitespace(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestUser(t, repo, "anna@example.com")
	flow := recovery.NewFlow(repo, &fakeNotifier{})
	store := &fakeStore{}

	err := flow.SubmitEmail(context.Background(), store, "  anna@example.com  ")

	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", store.state.Email)
}

func TestSubmitEmail_TransportFailureLeavesStateUntouched(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestUser(t, repo, "anna@example.com")
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	flow := recovery.NewFlow(repo, notifier)
	store := &fakeStore{}

	err := flow.SubmitEmail(context.Background(), store, "anna@example.com")

	require.Error(t, err)
	assert.NotErrorIs(t, err, recovery.ErrUnknownEmail)
	assert.Nil(t, store.state, "state must only advance after the notifier accepted")
}

func TestSubmitEmail_RepeatedSubmitRotatesCode(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestUser(t, repo, "anna@example.com")
	notifier := &fakeNotifier{}
	flow := recovery.NewFlow(repo, notifier)
	store := &fakeStore{}
	ctx := context.Background()

	require.NoError(t, flow.SubmitEmail(ctx, store, "anna@example.com"))
	firstCode := store.state.Code

	require.NoError(t, flow.SubmitEmail(ctx, store, "anna@example.com"))
	secondCode := store.state.Code

	require.Len(t, notifier.sent, 2)
	if firstCode == secondCode {
		// A collision is possible but astronomically unlikely; treat as failure
		t.Fatalf("code was not rotated: %s", firstCode)
	}

	// The first code is invalid now
	err := flow.SubmitCode(store, firstCode)
	require.ErrorIs(t, err, recovery.ErrIncorrectCode)
	assert.Equal(t, recovery.StepOTPEntry, store.state.Step)

	// The fresh code still works
	require.NoError(t, flow.SubmitCode(store, secondCode))
	assert.Equal(t, recovery.StepPasswordEntry, store.state.Step)
}

func TestSubmitCode_WithoutPendingCode(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	flow := recovery.NewFlow(repo, &fakeNotifier{})
	store := &fakeStore{}

	err := flow.SubmitCode(store, "123456")

	require.ErrorIs(t, err, recovery.ErrIncorrectCode)
}

func TestSubmitCode_WrongCodeKeepsStep(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestUser(t, repo, "anna@example.com")
	flow := recovery.NewFlow(repo, &fakeNotifier{})
	store := &fakeStore{}
	ctx := context.Background()

	require.NoError(t, flow.SubmitEmail(ctx, store, "anna@example.com"))
	wrong := "000000"
	if store.state.Code == wrong {
		wrong = "000001"
	}

	err := flow.SubmitCode(store, wrong)

	require.ErrorIs(t, err, recovery.ErrIncorrectCode)
	assert.Equal(t, recovery.StepOTPEntry, store.state.Step)
}

func TestSubmitCode_RequiresExactMatch(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestUser(t, repo, "anna@example.com")
	flow := recovery.NewFlow(repo, &fakeNotifier{})
	store := &fakeStore{}
	ctx := context.Background()

	require.NoError(t, flow.SubmitEmail(ctx, store, "anna@example.com"))

	// Padded input does not match
	err := flow.SubmitCode(store, "  "+store.state.Code+"  ")
	require.ErrorIs(t, err, recovery.ErrIncorrectCode)
	assert.Equal(t, recovery.StepOTPEntry, store.state.Step)

	require.NoError(t, flow.SubmitCode(store, store.state.Code))
	assert.Equal(t, recovery.StepPasswordEntry, store.state.Step)
}

func TestSubmitNewPassword_MismatchCheckedFirst(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	flow := recovery.NewFlow(repo, &fakeNotifier{})
	store := &fakeStore{}

	// Even with no recovery state at all, mismatch wins
	err := flow.SubmitNewPassword(context.Background(), store, "one", "two")

	require.ErrorIs(t, err, recovery.ErrPasswordMismatch)
}

func TestSubmitNewPassword_RequiresPasswordStep(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestUser(t, repo, "anna@example.com")
	flow := recovery.NewFlow(repo, &fakeNotifier{})
	store := &fakeStore{}
	ctx := context.Background()

	// Straight from email entry, skipping the OTP step
	require.NoError(t, flow.SubmitEmail(ctx, store, "anna@example.com"))

	err := flow.SubmitNewPassword(ctx, store, "new-password-1", "new-password-1")

	require.ErrorIs(t, err, recovery.ErrWrongStep)
	assert.False(t, store.destroyed)
}

func TestRecoveryFlow_EndToEnd(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	notifier := &fakeNotifier{}
	flow := recovery.NewFlow(repo, notifier)
	store := &fakeStore{}
	ctx := context.Background()

	require.NoError(t, flow.SubmitEmail(ctx, store, "anna@example.com"))
	require.NoError(t, flow.SubmitCode(store, notifier.sent[0].code))
	require.NoError(t, flow.SubmitNewPassword(ctx, store, "brand-new-password", "brand-new-password"))

	// The credential is replaced
	updated, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("brand-new-password")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(testutil.Password)))

	// The whole session is gone
	assert.True(t, store.destroyed)
	assert.Nil(t, store.state)
}

func TestGenerateCode_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^[1-9]\d{5}$`)
	for range 200 {
		code, err := recovery.GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code, "codes are 6 digits with no leading zero")
	}
}
