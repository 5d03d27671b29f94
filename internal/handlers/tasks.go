// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"codeberg.org/avollmer/taskmate/internal/models"
	"codeberg.org/avollmer/taskmate/internal/repository"
	"codeberg.org/avollmer/taskmate/internal/services/session"
	"codeberg.org/avollmer/taskmate/internal/services/tasks"
	"codeberg.org/avollmer/taskmate/internal/templates"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// Dashboard renders the user's task totals and a motivational quote.
func (h *Handlers) Dashboard(c echo.Context) error {
	stats, err := h.tasks.Dashboard(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return Render(c, http.StatusOK, templates.Dashboard(stats))
}

// TaskList renders the user's pending tasks ordered by due date.
func (h *Handlers) TaskList(c echo.Context) error {
	list, err := h.repo.ListPendingTasks(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return Render(c, http.StatusOK, templates.TaskList(list))
}

// AddTaskPage renders the add-task form, preselecting the user's default
// category.
func (h *Handlers) AddTaskPage(c echo.Context) error {
	profile, err := h.repo.GetOrCreateProfile(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return Render(c, http.StatusOK, templates.TaskForm(nil, profile.DefaultCategory))
}

// AddTask handles the add-task form submission.
func (h *Handlers) AddTask(c echo.Context) error {
	params, err := taskParams(c)
	if err != nil {
		flashT(c, session.FlashError, "flash_invalid_date")
		return c.Redirect(http.StatusSeeOther, "/add-task")
	}

	if _, err := h.tasks.Add(c.Request().Context(), currentUser(c).ID, params); err != nil {
		if errors.Is(err, tasks.ErrFieldsRequired) || errors.Is(err, tasks.ErrInvalidCategory) {
			flashT(c, session.FlashError, "flash_task_fields_required")
			return c.Redirect(http.StatusSeeOther, "/add-task")
		}
		return err
	}

	flashT(c, session.FlashSuccess, "flash_task_added")
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

// EditTaskPage renders the edit form for one of the user's tasks.
func (h *Handlers) EditTaskPage(c echo.Context) error {
	task, err := h.loadTask(c)
	if err != nil {
		return h.taskNotFound(c, err)
	}
	return Render(c, http.StatusOK, templates.TaskForm(task, task.Category))
}

// EditTask handles the edit form submission.
func (h *Handlers) EditTask(c echo.Context) error {
	taskID, err := taskID(c)
	if err != nil {
		return h.taskNotFound(c, repository.ErrNotFound)
	}

	params, err := taskParams(c)
	if err != nil {
		flashT(c, session.FlashError, "flash_invalid_date")
		return c.Redirect(http.StatusSeeOther, "/task/edit/"+c.Param("id"))
	}

	if _, err := h.tasks.Update(c.Request().Context(), currentUser(c).ID, taskID, params); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return h.taskNotFound(c, err)
		case errors.Is(err, tasks.ErrFieldsRequired), errors.Is(err, tasks.ErrInvalidCategory):
			flashT(c, session.FlashError, "flash_task_fields_required")
			return c.Redirect(http.StatusSeeOther, "/task/edit/"+c.Param("id"))
		default:
			return err
		}
	}

	flashT(c, session.FlashSuccess, "flash_task_updated")
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

// CompletedTasks renders completed tasks with today/week counters.
func (h *Handlers) CompletedTasks(c echo.Context) error {
	ctx := c.Request().Context()
	userID := currentUser(c).ID

	list, err := h.repo.ListCompletedTasks(ctx, userID)
	if err != nil {
		return err
	}
	stats, err := h.tasks.CompletionStats(ctx, userID)
	if err != nil {
		return err
	}
	return Render(c, http.StatusOK, templates.CompletedTasks(list, stats))
}

// Projects renders pending tasks grouped by category.
func (h *Handlers) Projects(c echo.Context) error {
	groups, err := h.tasks.ProjectGroups(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return Render(c, http.StatusOK, templates.Projects(groups))
}

// ToggleCompletion flips a task between pending and completed based on the
// checkbox state of the submitting form.
func (h *Handlers) ToggleCompletion(c echo.Context) error {
	taskID, err := taskID(c)
	if err != nil {
		return h.taskNotFound(c, repository.ErrNotFound)
	}

	completed := c.FormValue("is_completed") != ""
	if _, err := h.tasks.SetCompleted(c.Request().Context(), currentUser(c).ID, taskID, completed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return h.taskNotFound(c, err)
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, backTo(c, "/tasks"))
}

// RestoreTask moves a completed task back to pending.
func (h *Handlers) RestoreTask(c echo.Context) error {
	taskID, err := taskID(c)
	if err != nil {
		return h.taskNotFound(c, repository.ErrNotFound)
	}

	task, err := h.tasks.Restore(c.Request().Context(), currentUser(c).ID, taskID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, tasks.ErrNotCompleted):
			return h.taskNotFound(c, repository.ErrNotFound)
		default:
			return err
		}
	}

	flashTData(c, session.FlashSuccess, "flash_task_restored", map[string]any{"Title": task.Title})
	return c.Redirect(http.StatusSeeOther, "/completed-tasks")
}

// RestoreTaskAJAX restores a task and answers with JSON for the htmx caller.
func (h *Handlers) RestoreTaskAJAX(c echo.Context) error {
	taskID, err := taskID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"success": false})
	}

	if _, err := h.tasks.Restore(c.Request().Context(), currentUser(c).ID, taskID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, tasks.ErrNotCompleted):
			return c.JSON(http.StatusNotFound, map[string]any{"success": false})
		default:
			return err
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// DeleteTask removes a task permanently.
func (h *Handlers) DeleteTask(c echo.Context) error {
	taskID, err := taskID(c)
	if err != nil {
		return h.taskNotFound(c, repository.ErrNotFound)
	}

	task, err := h.tasks.Delete(c.Request().Context(), currentUser(c).ID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return h.taskNotFound(c, err)
		}
		return err
	}

	flashTData(c, session.FlashSuccess, "flash_task_deleted", map[string]any{"Title": task.Title})
	return c.Redirect(http.StatusSeeOther, backTo(c, "/tasks"))
}

func (h *Handlers) loadTask(c echo.Context) (*models.Task, error) {
	taskID, err := taskID(c)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return h.repo.GetTask(c.Request().Context(), taskID, currentUser(c).ID)
}

func (h *Handlers) taskNotFound(c echo.Context, err error) error {
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	flashT(c, session.FlashError, "flash_task_not_found")
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

func taskID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// taskParams reads the add/edit form. Date parse failures on non-empty input
// are reported; empty dates stay nil and fail field validation later.
func taskParams(c echo.Context) (tasks.AddParams, error) {
	params := tasks.AddParams{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
	}

	var err error
	if params.StartDate, err = parseDate(c.FormValue("start_date")); err != nil {
		return params, err
	}
	if params.DueDate, err = parseDate(c.FormValue("due_date")); err != nil {
		return params, err
	}
	return params, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// backTo returns the referring page, or the fallback when there is none.
func backTo(c echo.Context, fallback string) string {
	if ref := c.Request().Referer(); ref != "" {
		return ref
	}
	return fallback
}
