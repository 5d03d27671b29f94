// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package tasks_test

import (
	"context"
	"testing"
	"time"

	"codeberg.org/avollmer/taskmate/internal/models"
	"codeberg.org/avollmer/taskmate/internal/repository"
	"codeberg.org/avollmer/taskmate/internal/services/tasks"
	"codeberg.org/avollmer/taskmate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func addParams(title string) tasks.AddParams {
	return tasks.AddParams{
		Title:     title,
		Category:  models.CategoryWork,
		StartDate: date(2025, 6, 1),
		DueDate:   date(2025, 6, 15),
	}
}

func TestAdd(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := tasks.NewService(repo)
	user := testutil.NewTestUser(t, repo, "anna@example.com")

	task, err := svc.Add(context.Background(), user.ID, addParams("Write report"))

	require.NoError(t, err)
	assert.NotZero(t, task.ID)
	assert.Equal(t, "Write report", task.Title)
	assert.False(t, task.IsCompleted)
}

func TestAdd_MissingFields(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := tasks.NewService(repo)
	user := testutil.NewTestUser(t, repo, "anna@example.com")

	params := addParams("Write report")
	params.DueDate = nil

	_, err := svc.Add(context.Background(), user.ID, params)

	require.ErrorIs(t, err, tasks.ErrFieldsRequired)
}

func TestAdd_InvalidCategory(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := tasks.NewService(repo)
	user := testutil.NewTestUser(t, repo, "anna@example.com")

	params := addParams("Write report")
	params.Category = "Gardening"

	_, err := svc.Add(context.Background(), user.ID, params)

	require.ErrorIs(t, err, tasks.ErrInvalidCategory)
}

func TestUpdate(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := tasks.NewService(repo)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	task, err := svc.Add(ctx, user.ID, addParams("Old title"))
	require.NoError(t, err)

	params := addParams("New title")
	params.Category = models.CategoryStudy

	updated, err := svc.Update(ctx, user.ID, task.ID, params)

	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, models.CategoryStudy, updated.Category)
}

func TestUpdate_OtherUsersTask(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := tasks.NewService(repo)
	owner := testutil.NewTestUser(t, repo, "anna@example.com")
	intruder := testutil.NewTestUser(t, repo, "eve@example.com")
	ctx := context.Background()

	task, err := svc.Add(ctx, owner.ID, addParams("Private"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, intruder.ID, task.ID, addParams("Hijacked"))

	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSetCompleted_StampsCompletionTime(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := tasks.NewService(repo)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	task, err := svc.Add(ctx, user.ID, addParams("Finish me"))
	require.NoError(t, err)

	completed, err := svc.SetCompleted(ctx, user.ID, task.ID, true)
	require.NoError(t, err)
	assert.True(t, completed.IsCompleted)
	require.NotNil(t, completed.CompletedAt)

	reopened, err := svc.SetCompleted(ctx, user.ID, task.ID, false)
	require.NoError(t, err)
	assert.False(t, reopened.IsCompleted)
	assert.Nil(t, reopened.CompletedAt)
}

func TestRestore(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := tasks.NewService(repo)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	task, err := svc.Add(ctx, user.ID, addParams("Done deal"))
	require.NoError(t, err)
	_, err = svc.SetCompleted(ctx, user.ID, task.ID, true)
	require.NoError(t, err)

	restored, err := svc.Restore(ctx, user.ID, task.ID)

	require.NoError(t, err)
	assert.False(t, restored.IsCompleted)
	assert.Nil(t, restored.CompletedAt)
}

func TestRestore_PendingTask(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := tasks.NewService(repo)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	task, err := svc.Add(ctx, user.ID, addParams("Still open"))
	require.NoError(t, err)

	_, err = svc.Restore(ctx, user.ID, task.ID)

	require.ErrorIs(t, err, tasks.ErrNotCompleted)
}

func TestDelete_ReturnsTask(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := tasks.NewService(repo)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	task, err := svc.Add(ctx, user.ID, addParams("Throwaway"))
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, user.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Throwaway", deleted.Title)

	_, err = repo.GetTask(ctx, task.ID, user.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDashboard(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := tasks.NewService(repo)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c", "d"} {
		_, err := svc.Add(ctx, user.ID, addParams(title))
		require.NoError(t, err)
	}
	list, err := repo.ListPendingTasks(ctx, user.ID)
	require.NoError(t, err)
	_, err = svc.SetCompleted(ctx, user.ID, list[0].ID, true)
	require.NoError(t, err)

	stats, err := svc.Dashboard(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, 25, stats.Progress)
	assert.NotEmpty(t, stats.Quote)
}

func TestDashboard_EmptyHasZeroProgress(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := tasks.NewService(repo)
	user := testutil.NewTestUser(t, repo, "anna@example.com")

	stats, err := svc.Dashboard(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.Progress)
}

func TestCompletionStats(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := tasks.NewService(repo)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	task, err := svc.Add(ctx, user.ID, addParams("Just now"))
	require.NoError(t, err)
	_, err = svc.SetCompleted(ctx, user.ID, task.ID, true)
	require.NoError(t, err)

	stats, err := svc.CompletionStats(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Today)
	assert.Equal(t, int64(1), stats.Week)
}

func TestProjectGroups(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := tasks.NewService(repo)
	user := testutil.NewTestUser(t, repo, "anna@example.com")
	ctx := context.Background()

	work := addParams("Work thing")
	study := addParams("Study thing")
	study.Category = models.CategoryStudy
	_, err := svc.Add(ctx, user.ID, work)
	require.NoError(t, err)
	_, err = svc.Add(ctx, user.ID, study)
	require.NoError(t, err)

	groups, err := svc.ProjectGroups(ctx, user.ID)

	require.NoError(t, err)
	require.Len(t, groups, len(models.Categories()))
	assert.Equal(t, models.Categories(), groupNames(groups))
	assert.Len(t, groups[0].Tasks, 1)  // Work
	assert.Empty(t, groups[1].Tasks)   // Personal
	assert.Empty(t, groups[2].Tasks)   // Health
	assert.Len(t, groups[3].Tasks, 1)  // Study
}

func groupNames(groups []tasks.CategoryGroup) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}
