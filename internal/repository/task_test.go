// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"
	"time"

	"codeberg.org/avollmer/taskmate/internal/models"
	"codeberg.org/avollmer/taskmate/internal/repository"
	"codeberg.org/avollmer/taskmate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeTask(t *testing.T, repo *repository.Repository, task *models.Task, at time.Time) {
	t.Helper()
	task.IsCompleted = true
	task.CompletedAt = &at
	require.NoError(t, repo.UpdateTask(context.Background(), task))
}

func TestGetTask_ScopedToOwner(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	owner := testutil.NewTestUser(t, repo, "anna@example.com")
	other := testutil.NewTestUser(t, repo, "eve@example.com")
	task := testutil.NewTestTask(t, repo, owner.ID, "mine")
	ctx := context.Background()

	got, err := repo.GetTask(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)

	_, err = repo.GetTask(ctx, task.ID, other.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteTask_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	user := testutil.NewTestUser(t, repo, "anna@example.com")

	err := repo.DeleteTask(context.Background(), 999, user.ID)

	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListPendingTasks_OrderedByDueDate(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	later := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	sooner := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, tc := range []struct {
		title string
		due   time.Time
	}{
		{"later", later},
		{"sooner", sooner},
	} {
		task := &models.Task{UserID: user.ID, Title: tc.title, Category: models.CategoryWork, DueDate: &tc.due}
		require.NoError(t, repo.CreateTask(ctx, task))
	}

	list, err := repo.ListPendingTasks(ctx, user.ID)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "sooner", list[0].Title)
	assert.Equal(t, "later", list[1].Title)
}

func TestListCompletedTasks_NewestFirst(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	older := testutil.NewTestTask(t, repo, user.ID, "older")
	newer := testutil.NewTestTask(t, repo, user.ID, "newer")
	completeTask(t, repo, older, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	completeTask(t, repo, newer, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))

	list, err := repo.ListCompletedTasks(ctx, user.ID)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Title)

	pending, err := repo.ListPendingTasks(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCountTasksCompletedSince(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	old := testutil.NewTestTask(t, repo, user.ID, "old")
	recent := testutil.NewTestTask(t, repo, user.ID, "recent")
	completeTask(t, repo, old, time.Now().UTC().Add(-48*time.Hour))
	completeTask(t, repo, recent, time.Now().UTC())

	count, err := repo.CountTasksCompletedSince(ctx, user.ID, time.Now().UTC().Add(-24*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListPendingTasksByCategory(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	work := testutil.NewTestTask(t, repo, user.ID, "work thing")
	_ = work
	study := &models.Task{UserID: user.ID, Title: "study thing", Category: models.CategoryStudy}
	require.NoError(t, repo.CreateTask(ctx, study))

	list, err := repo.ListPendingTasksByCategory(ctx, user.ID, models.CategoryStudy)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "study thing", list[0].Title)
}
