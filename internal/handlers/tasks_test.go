// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"codeberg.org/avollmer/taskmate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskForm(title string) url.Values {
	return url.Values{
		"title":       {title},
		"description": {"A task description"},
		"category":    {"Work"},
		"start_date":  {"2026-03-01"},
		"due_date":    {"2026-03-10"},
	}
}

func TestDashboard(t *testing.T) {
	app := newTestApp(t)
	app.login("anna@example.com")

	rec := app.get("/dashboard")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello, Test!")
}

func TestAddTask(t *testing.T) {
	app := newTestApp(t)
	user := app.login("anna@example.com")

	rec := app.post("/add-task", taskForm("Write report"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tasks", rec.Header().Get("Location"))

	list, err := app.repo.ListPendingTasks(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Write report", list[0].Title)
}

func TestAddTask_MissingFields(t *testing.T) {
	app := newTestApp(t)
	app.login("anna@example.com")

	rec := app.post("/add-task", url.Values{"title": {"Only a title"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/add-task", rec.Header().Get("Location"))

	rec = app.get("/add-task")
	assert.Contains(t, rec.Body.String(), "All fields are required.")
}

func TestAddTask_InvalidDate(t *testing.T) {
	app := newTestApp(t)
	app.login("anna@example.com")

	form := taskForm("Write report")
	form.Set("due_date", "10.03.2026")
	rec := app.post("/add-task", form)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/add-task", rec.Header().Get("Location"))

	rec = app.get("/add-task")
	assert.Contains(t, rec.Body.String(), "Invalid date format.")
}

func TestTaskList(t *testing.T) {
	app := newTestApp(t)
	user := app.login("anna@example.com")
	testutil.NewTestTask(t, app.repo, user.ID, "Write report")

	rec := app.get("/tasks")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Write report")
}

func TestEditTask(t *testing.T) {
	app := newTestApp(t)
	user := app.login("anna@example.com")
	task := testutil.NewTestTask(t, app.repo, user.ID, "Write report")

	rec := app.post(fmt.Sprintf("/task/edit/%d", task.ID), taskForm("Write final report"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tasks", rec.Header().Get("Location"))

	updated, err := app.repo.GetTask(context.Background(), task.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write final report", updated.Title)
}

func TestEditTask_NotFound(t *testing.T) {
	app := newTestApp(t)
	app.login("anna@example.com")

	rec := app.get("/task/edit/99999")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tasks", rec.Header().Get("Location"))

	rec = app.get("/tasks")
	assert.Contains(t, rec.Body.String(), "Task not found or already deleted.")
}

func TestEditTask_OtherUsersTask(t *testing.T) {
	app := newTestApp(t)
	other := testutil.NewTestUser(t, app.repo, "other@example.com")
	task := testutil.NewTestTask(t, app.repo, other.ID, "Not yours")
	app.login("anna@example.com")

	rec := app.get(fmt.Sprintf("/task/edit/%d", task.ID))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tasks", rec.Header().Get("Location"))
}

func TestToggleCompletion(t *testing.T) {
	app := newTestApp(t)
	user := app.login("anna@example.com")
	task := testutil.NewTestTask(t, app.repo, user.ID, "Write report")

	rec := app.post(fmt.Sprintf("/tasks/toggle-completion/%d", task.ID),
		url.Values{"is_completed": {"on"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)

	updated, err := app.repo.GetTask(context.Background(), task.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	assert.NotNil(t, updated.CompletedAt)
}

func TestRestoreTask(t *testing.T) {
	app := newTestApp(t)
	user := app.login("anna@example.com")
	task := testutil.NewTestTask(t, app.repo, user.ID, "Write report")
	app.post(fmt.Sprintf("/tasks/toggle-completion/%d", task.ID),
		url.Values{"is_completed": {"on"}})

	rec := app.post(fmt.Sprintf("/tasks/restore-task/%d", task.ID), nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/completed-tasks", rec.Header().Get("Location"))

	rec = app.get("/completed-tasks")
	assert.Contains(t, rec.Body.String(), "has been restored")

	updated, err := app.repo.GetTask(context.Background(), task.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsCompleted)
}

func TestRestoreTaskAJAX(t *testing.T) {
	app := newTestApp(t)
	user := app.login("anna@example.com")
	task := testutil.NewTestTask(t, app.repo, user.ID, "Write report")
	app.post(fmt.Sprintf("/tasks/toggle-completion/%d", task.ID),
		url.Values{"is_completed": {"on"}})

	rec := app.post(fmt.Sprintf("/tasks/restore-task-ajax/%d", task.ID), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestRestoreTaskAJAX_PendingTask(t *testing.T) {
	app := newTestApp(t)
	user := app.login("anna@example.com")
	task := testutil.NewTestTask(t, app.repo, user.ID, "Write report")

	rec := app.post(fmt.Sprintf("/tasks/restore-task-ajax/%d", task.ID), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false}`, rec.Body.String())
}

func TestDeleteTask(t *testing.T) {
	app := newTestApp(t)
	user := app.login("anna@example.com")
	task := testutil.NewTestTask(t, app.repo, user.ID, "Write report")

	rec := app.post(fmt.Sprintf("/tasks/delete-task/%d", task.ID), nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)

	_, err := app.repo.GetTask(context.Background(), task.ID, user.ID)
	assert.Error(t, err)

	rec = app.get("/tasks")
	assert.Contains(t, rec.Body.String(), "deleted successfully")
}

func TestCompletedTasks(t *testing.T) {
	app := newTestApp(t)
	user := app.login("anna@example.com")
	task := testutil.NewTestTask(t, app.repo, user.ID, "Write report")
	app.post(fmt.Sprintf("/tasks/toggle-completion/%d", task.ID),
		url.Values{"is_completed": {"on"}})

	rec := app.get("/completed-tasks")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Write report")
}

func TestProjects(t *testing.T) {
	app := newTestApp(t)
	user := app.login("anna@example.com")
	testutil.NewTestTask(t, app.repo, user.ID, "Write report")

	rec := app.get("/projects")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Write report")
}

func TestProfile_Update(t *testing.T) {
	app := newTestApp(t)
	user := app.login("anna@example.com")

	rec := app.post("/profile", url.Values{
		"full_name":           {"Anna Vollmer"},
		"email":               {"anna.vollmer@example.com"},
		"default_category":    {"Personal"},
		"email_notifications": {"on"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile", rec.Header().Get("Location"))

	updated, err := app.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.FirstName)
	assert.Equal(t, "Vollmer", updated.LastName)
	assert.Equal(t, "anna.vollmer@example.com", updated.Email)

	profile, err := app.repo.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Personal", profile.DefaultCategory)
	assert.True(t, profile.EmailNotifications)
}

func TestProfile_UpdateInvalidEmail(t *testing.T) {
	app := newTestApp(t)
	user := app.login("anna@example.com")

	rec := app.post("/profile", url.Values{
		"full_name":        {"Anna Vollmer"},
		"email":            {"not-an-email"},
		"default_category": {"Work"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile", rec.Header().Get("Location"))

	updated, err := app.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", updated.Email)
	assert.Equal(t, "Test", updated.FirstName)
}

func TestProfile_UpdateEmailInUse(t *testing.T) {
	app := newTestApp(t)
	testutil.NewTestUser(t, app.repo, "taken@example.com")
	user := app.login("anna@example.com")

	rec := app.post("/profile", url.Values{
		"full_name":        {"Anna Vollmer"},
		"email":            {"taken@example.com"},
		"default_category": {"Work"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile", rec.Header().Get("Location"))

	updated, err := app.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", updated.Email)

	rec = app.get("/profile")
	assert.Contains(t, rec.Body.String(), "Email is already in use.")
}

func TestContact_Submit(t *testing.T) {
	app := newTestApp(t)

	rec := app.post("/contact", url.Values{
		"name":    {"Anna"},
		"email":   {"anna@example.com"},
		"message": {"Hello there"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contact", rec.Header().Get("Location"))

	rec = app.get("/contact")
	assert.Contains(t, rec.Body.String(), "Thanks for your message!")
}
