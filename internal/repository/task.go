// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/avollmer/taskmate/internal/models"
)

// CreateTask inserts a new task and fills in the generated ID.
func (r *Repository) CreateTask(ctx context.Context, task *models.Task) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (user_id, title, description, category, start_date, due_date, is_completed, completed_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.UserID, task.Title, task.Description, task.Category,
		task.StartDate, task.DueDate, task.IsCompleted, task.CompletedAt, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	task.ID = id
	task.CreatedAt = now
	return nil
}

// GetTask retrieves a task by ID, scoped to its owner.
func (r *Repository) GetTask(ctx context.Context, id, userID int64) (*models.Task, error) {
	var task models.Task
	err := r.db.GetContext(ctx, &task,
		`SELECT * FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &task, nil
}

// UpdateTask updates the editable fields of a task, scoped to its owner.
func (r *Repository) UpdateTask(ctx context.Context, task *models.Task) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, category = ?, start_date = ?, due_date = ?,
		        is_completed = ?, completed_at = ?
		 WHERE id = ? AND user_id = ?`,
		task.Title, task.Description, task.Category, task.StartDate, task.DueDate,
		task.IsCompleted, task.CompletedAt, task.ID, task.UserID)
	return err
}

// DeleteTask deletes a task by ID, scoped to its owner. Returns ErrNotFound
// if no row was deleted.
func (r *Repository) DeleteTask(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPendingTasks returns a user's pending tasks ordered by due date.
func (r *Repository) ListPendingTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.SelectContext(ctx, &tasks,
		`SELECT * FROM tasks WHERE user_id = ? AND is_completed = 0 ORDER BY due_date`, userID)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListCompletedTasks returns a user's completed tasks, most recently
// completed first.
func (r *Repository) ListCompletedTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.SelectContext(ctx, &tasks,
		`SELECT * FROM tasks WHERE user_id = ? AND is_completed = 1 ORDER BY completed_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListPendingTasksByCategory returns a user's pending tasks in one category.
func (r *Repository) ListPendingTasksByCategory(ctx context.Context, userID int64, category string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.SelectContext(ctx, &tasks,
		`SELECT * FROM tasks WHERE user_id = ? AND category = ? AND is_completed = 0 ORDER BY due_date`,
		userID, category)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountTasks returns the total number of tasks for a user.
func (r *Repository) CountTasks(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM tasks WHERE user_id = ?`, userID)
	return count, err
}

// CountCompletedTasks returns the number of completed tasks for a user.
func (r *Repository) CountCompletedTasks(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM tasks WHERE user_id = ? AND is_completed = 1`, userID)
	return count, err
}

// CountTasksCompletedSince returns the number of tasks the user completed at
// or after the given instant.
func (r *Repository) CountTasksCompletedSince(ctx context.Context, userID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM tasks WHERE user_id = ? AND is_completed = 1 AND completed_at >= ?`,
		userID, since)
	return count, err
}
