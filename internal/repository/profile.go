// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"errors"

	"codeberg.org/avollmer/taskmate/internal/models"
)

// GetProfile retrieves a user's profile.
func (r *Repository) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT * FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &profile, nil
}

// GetOrCreateProfile retrieves a user's profile, creating it with defaults
// on first access.
func (r *Repository) GetOrCreateProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	profile, err := r.GetProfile(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	profile = models.DefaultProfile(userID)
	if err := r.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SaveProfile inserts or updates a user's profile.
func (r *Repository) SaveProfile(ctx context.Context, profile *models.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, default_category, email_notifications)
		 VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		     default_category = excluded.default_category,
		     email_notifications = excluded.email_notifications`,
		profile.UserID, profile.DefaultCategory, profile.EmailNotifications)
	return err
}
