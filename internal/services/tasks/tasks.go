// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

// Package tasks implements task management on top of the repository:
// validation, completion toggling and the dashboard aggregations.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"codeberg.org/avollmer/taskmate/internal/models"
	"codeberg.org/avollmer/taskmate/internal/repository"
)

var (
	ErrFieldsRequired  = errors.New("all fields are required")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNotCompleted    = errors.New("task is not completed")
)

var quotes = []string{
	"Keep going, you're doing great!",
	"Every task completed is a step forward.",
	"Stay focused and keep pushing!",
	"Success is the sum of small efforts repeated daily.",
}

type Service struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// AddParams holds the fields of the add/edit task form.
type AddParams struct {
	Title       string
	Description string
	Category    string
	StartDate   *time.Time
	DueDate     *time.Time
}

func (p *AddParams) validate() error {
	if p.Title == "" || p.Category == "" || p.StartDate == nil || p.DueDate == nil {
		return ErrFieldsRequired
	}
	if !models.ValidCategory(p.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// Add creates a new pending task for the user.
func (s *Service) Add(ctx context.Context, userID int64, params AddParams) (*models.Task, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:      userID,
		Title:       params.Title,
		Description: params.Description,
		Category:    params.Category,
		StartDate:   params.StartDate,
		DueDate:     params.DueDate,
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return task, nil
}

// Update edits an existing task of the user.
func (s *Service) Update(ctx context.Context, userID, taskID int64, params AddParams) (*models.Task, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	task, err := s.repo.GetTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	task.Title = params.Title
	task.Description = params.Description
	task.Category = params.Category
	task.StartDate = params.StartDate
	task.DueDate = params.DueDate

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return task, nil
}

// SetCompleted toggles a task's completion, stamping or clearing the
// completion time.
func (s *Service) SetCompleted(ctx context.Context, userID, taskID int64, completed bool) (*models.Task, error) {
	task, err := s.repo.GetTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	task.IsCompleted = completed
	if completed {
		now := s.now().UTC()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return task, nil
}

// Restore moves a completed task back to pending. Restoring a pending task
// is an error.
func (s *Service) Restore(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	task, err := s.repo.GetTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if !task.IsCompleted {
		return nil, ErrNotCompleted
	}
	return s.SetCompleted(ctx, userID, taskID, false)
}

// Delete removes a task and returns it, for the confirmation message.
func (s *Service) Delete(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	task, err := s.repo.GetTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteTask(ctx, taskID, userID); err != nil {
		return nil, err
	}
	return task, nil
}

// DashboardStats is the aggregate shown on the dashboard.
type DashboardStats struct { //nolint:govet // fieldalignment not critical
	Total     int64
	Completed int64
	Progress  int // percent, 0-100
	Quote     string
}

// Dashboard computes the user's task totals and picks a motivational quote.
func (s *Service) Dashboard(ctx context.Context, userID int64) (*DashboardStats, error) {
	total, err := s.repo.CountTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.repo.CountCompletedTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress := 0
	if total > 0 {
		progress = int(completed * 100 / total)
	}

	return &DashboardStats{
		Total:     total,
		Completed: completed,
		Progress:  progress,
		Quote:     quotes[rand.IntN(len(quotes))],
	}, nil
}

// CompletionStats counts tasks completed today and within the last week.
type CompletionStats struct {
	Today int64
	Week  int64
}

// CompletionStats aggregates recent completions for the completed-tasks view.
func (s *Service) CompletionStats(ctx context.Context, userID int64) (*CompletionStats, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := midnight.AddDate(0, 0, -7)

	today, err := s.repo.CountTasksCompletedSince(ctx, userID, midnight.UTC())
	if err != nil {
		return nil, err
	}
	week, err := s.repo.CountTasksCompletedSince(ctx, userID, weekAgo.UTC())
	if err != nil {
		return nil, err
	}

	return &CompletionStats{Today: today, Week: week}, nil
}

// CategoryGroup is the pending-task list of one category.
type CategoryGroup struct {
	Name  string
	Tasks []models.Task
}

// ProjectGroups returns the user's pending tasks grouped by category, in
// fixed category order.
func (s *Service) ProjectGroups(ctx context.Context, userID int64) ([]CategoryGroup, error) {
	groups := make([]CategoryGroup, 0, len(models.Categories()))
	for _, category := range models.Categories() {
		list, err := s.repo.ListPendingTasksByCategory(ctx, userID, category)
		if err != nil {
			return nil, err
		}
		groups = append(groups, CategoryGroup{Name: category, Tasks: list})
	}
	return groups, nil
}
