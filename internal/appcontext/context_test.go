// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package appcontext_test

import (
	"context"
	"testing"

	"codeberg.org/avollmer/taskmate/internal/appcontext"
	"codeberg.org/avollmer/taskmate/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSetGetUser(t *testing.T) {
	user := &models.User{ID: 1, Email: "anna@example.com"}
	ctx := appcontext.SetUser(context.Background(), user)

	assert.Equal(t, user, appcontext.GetUser(ctx))
	assert.True(t, appcontext.IsAuthenticated(ctx))
}

func TestGetUser_Empty(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, appcontext.GetUser(ctx))
	assert.False(t, appcontext.IsAuthenticated(ctx))
}
