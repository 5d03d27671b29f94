// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/avollmer/taskmate/internal/models"
)

// CreateContactMessage stores a message from the contact form.
func (r *Repository) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, message, created_at) VALUES (?, ?, ?, ?)`,
		msg.Name, msg.Email, msg.Message, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	msg.ID = id
	msg.CreatedAt = now
	return nil
}

// ListContactMessages returns all contact messages, newest first.
func (r *Repository) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT * FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
