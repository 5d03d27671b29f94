// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/avollmer/taskmate/internal/models"
)

// GetSession retrieves a non-expired session by token.
func (r *Repository) GetSession(ctx context.Context, token string) (*models.SessionRecord, error) {
	var rec models.SessionRecord
	err := r.db.GetContext(ctx, &rec,
		`SELECT * FROM sessions WHERE token = ? AND expires_at > ?`, token, time.Now().UTC())
	if err != nil {
		return nil, wrapError(err)
	}
	return &rec, nil
}

// UpsertSession inserts or updates a session row.
func (r *Repository) UpsertSession(ctx context.Context, rec *models.SessionRecord) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token, data, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (token) DO UPDATE SET
		     data = excluded.data,
		     expires_at = excluded.expires_at,
		     updated_at = excluded.updated_at`,
		rec.Token, rec.Data, rec.ExpiresAt, now, now)
	return err
}

// DeleteSession removes a session row.
func (r *Repository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}

// DeleteExpiredSessions removes all sessions past their expiry.
func (r *Repository) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
