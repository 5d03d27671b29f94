// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package models

import "time"

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct { //nolint:govet // fieldalignment: readability over optimization
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
