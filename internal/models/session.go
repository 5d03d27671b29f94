// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package models

import "time"

// SessionRecord is a server-side session row. The cookie only carries the
// token; Data is an opaque JSON bag owned by the session service.
type SessionRecord struct { //nolint:govet // fieldalignment: readability over optimization
	Token     string    `db:"token" json:"token"`
	Data      []byte    `db:"data" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
