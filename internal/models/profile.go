// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package models

// Profile holds per-user preferences beyond the account record itself.
// Created lazily on first access with defaults.
type Profile struct { //nolint:govet // fieldalignment: readability over optimization
	UserID             int64  `db:"user_id" json:"user_id"`
	DefaultCategory    string `db:"default_category" json:"default_category"`
	EmailNotifications bool   `db:"email_notifications" json:"email_notifications"`
}

// DefaultProfile returns a fresh profile with default preferences.
func DefaultProfile(userID int64) *Profile {
	return &Profile{
		UserID:             userID,
		DefaultCategory:    CategoryWork,
		EmailNotifications: true,
	}
}
