// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package templates

import (
	"context"
	"encoding/json"
	"fmt"

	"codeberg.org/avollmer/taskmate/internal/models"
)

func taskFormTitle(ctx context.Context, task *models.Task) string {
	if task == nil {
		return T(ctx, "task_form_add_title")
	}
	return T(ctx, "task_form_edit_title")
}

func taskFormSubmit(ctx context.Context, task *models.Task) string {
	if task == nil {
		return T(ctx, "task_form_add_submit")
	}
	return T(ctx, "task_form_edit_submit")
}

func taskFormAction(task *models.Task) string {
	if task == nil {
		return "/add-task"
	}
	return fmt.Sprintf("/task/edit/%d", task.ID)
}

func taskTitle(task *models.Task) string {
	if task == nil {
		return ""
	}
	return task.Title
}

func taskDescription(task *models.Task) string {
	if task == nil {
		return ""
	}
	return task.Description
}

func taskDate(task *models.Task, start bool) string {
	if task == nil {
		return ""
	}
	if start {
		return FormatDateInput(task.StartDate)
	}
	return FormatDateInput(task.DueDate)
}

// csrfHeader builds the hx-headers JSON carrying the CSRF token.
func csrfHeader(ctx context.Context) string {
	payload, _ := json.Marshal(map[string]string{"X-CSRF-Token": CSRFToken(ctx)})
	return string(payload)
}
