// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/avollmer/taskmate/internal/models"
	"codeberg.org/avollmer/taskmate/internal/repository"
	"codeberg.org/avollmer/taskmate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	user := &models.User{
		Email:        "anna@example.com",
		FirstName:    "Anna",
		LastName:     "Vollmer",
		PasswordHash: "hash",
	}
	err := repo.CreateUser(context.Background(), user)

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestUser(t, repo, "anna@example.com")

	err := repo.CreateUser(context.Background(), &models.User{
		Email:        "anna@example.com",
		PasswordHash: "hash",
	})

	require.Error(t, err)
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	created := testutil.NewTestUser(t, repo, "anna@example.com")

	user, err := repo.GetUserByEmail(context.Background(), "ANNA@Example.COM")

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")

	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetUserByID_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetUserByID(context.Background(), 12345)

	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserExistsByEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	exists, err := repo.UserExistsByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.UserExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateUserPassword(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	err := repo.UpdateUserPassword(ctx, user.ID, "new-hash")
	require.NoError(t, err)

	updated, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", updated.PasswordHash)
}

func TestDeleteUser_CascadesTasks(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	task := testutil.NewTestTask(t, repo, user.ID, "orphan me")
	ctx := context.Background()

	require.NoError(t, repo.DeleteUser(ctx, user.ID))

	_, err := repo.GetTask(ctx, task.ID, user.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
