// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package models

import "time"

// Task categories. Category is a fixed choice, not free text.
const (
	CategoryWork     = "Work"
	CategoryPersonal = "Personal"
	CategoryHealth   = "Health"
	CategoryStudy    = "Study"
)

// Categories lists all valid task categories in display order.
func Categories() []string {
	return []string{CategoryWork, CategoryPersonal, CategoryHealth, CategoryStudy}
}

// ValidCategory reports whether name is one of the known categories.
func ValidCategory(name string) bool {
	switch name {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategoryStudy:
		return true
	}
	return false
}

// Task is a single to-do item owned by one user. Dates are day-granular
// except CompletedAt, which records the completion instant.
type Task struct { //nolint:govet // fieldalignment: readability over optimization
	ID          int64      `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Category    string     `db:"category" json:"category"`
	StartDate   *time.Time `db:"start_date" json:"start_date,omitempty"`
	DueDate     *time.Time `db:"due_date" json:"due_date,omitempty"`
	IsCompleted bool       `db:"is_completed" json:"is_completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
