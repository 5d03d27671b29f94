// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package auth_test

import (
	"context"
	"testing"

	"codeberg.org/avollmer/taskmate/internal/services/auth"
	"codeberg.org/avollmer/taskmate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const strongPassword = "tr0ub4dor-and-three"

func registerParams(email string) auth.RegisterParams {
	return auth.RegisterParams{
		FullName:        "Anna Vollmer",
		Email:           email,
		Password:        strongPassword,
		ConfirmPassword: strongPassword,
	}
}

func TestRegister(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := auth.NewService(repo)

	user, err := svc.Register(context.Background(), registerParams("anna@example.com"))

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Anna", user.FirstName)
	assert.Equal(t, "Vollmer", user.LastName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strongPassword)))
}

func TestRegister_PasswordMismatch(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := auth.NewService(repo)

	params := registerParams("anna@example.com")
	params.ConfirmPassword = "something else"

	_, err := svc.Register(context.Background(), params)

	require.ErrorIs(t, err, auth.ErrPasswordMismatch)
}

func TestRegister_InvalidEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := auth.NewService(repo)

	_, err := svc.Register(context.Background(), registerParams("not-an-email"))

	require.ErrorIs(t, err, auth.ErrInvalidEmail)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := auth.NewService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerParams("anna@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerParams("anna@example.com"))
	require.ErrorIs(t, err, auth.ErrUserExists)
}

func TestRegister_DuplicateEmailDifferentCase(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := auth.NewService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerParams("anna@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerParams("Anna@Example.com"))
	require.ErrorIs(t, err, auth.ErrUserExists)
}

func TestRegister_WeakPassword(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := auth.NewService(repo)

	params := registerParams("anna@example.com")
	params.Password = "password"
	params.ConfirmPassword = "password"

	_, err := svc.Register(context.Background(), params)

	var validationErr *auth.PasswordValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Messages())
}

func TestLogin(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := auth.NewService(repo)
	created := testutil.NewTestUser(t, repo, "anna@example.com")

	user, err := svc.Login(context.Background(), "anna@example.com", testutil.Password)

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := auth.NewService(repo)
	testutil.NewTestUser(t, repo, "anna@example.com")

	_, err := svc.Login(context.Background(), "anna@example.com", "wrong")

	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := auth.NewService(repo)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")

	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := auth.NewService(repo)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.ID, testutil.Password, strongPassword)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "anna@example.com", strongPassword)
	assert.NoError(t, err)
	_, err = svc.Login(ctx, "anna@example.com", testutil.Password)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := auth.NewService(repo)
	user := testutil.NewTestUser(t, repo, "anna@example.com")

	err := svc.ChangePassword(context.Background(), user.ID, "wrong", strongPassword)

	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
