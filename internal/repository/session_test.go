// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"
	"time"

	"codeberg.org/avollmer/taskmate/internal/models"
	"codeberg.org/avollmer/taskmate/internal/repository"
	"codeberg.org/avollmer/taskmate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	rec := &models.SessionRecord{
		Token:     "token-1",
		Data:      []byte(`{"user_id":1}`),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, repo.UpsertSession(ctx, rec))

	got, err := repo.GetSession(ctx, "token-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":1}`, string(got.Data))
}

func TestUpsertSession_OverwritesData(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	expires := time.Now().UTC().Add(time.Hour)
	require.NoError(t, repo.UpsertSession(ctx, &models.SessionRecord{
		Token: "token-1", Data: []byte(`{"user_id":1}`), ExpiresAt: expires,
	}))
	require.NoError(t, repo.UpsertSession(ctx, &models.SessionRecord{
		Token: "token-1", Data: []byte(`{"user_id":2}`), ExpiresAt: expires,
	}))

	got, err := repo.GetSession(ctx, "token-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":2}`, string(got.Data))
}

func TestGetSession_Expired(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertSession(ctx, &models.SessionRecord{
		Token:     "stale",
		Data:      []byte(`{}`),
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}))

	_, err := repo.GetSession(ctx, "stale")

	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteExpiredSessions(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertSession(ctx, &models.SessionRecord{
		Token: "stale", Data: []byte(`{}`), ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}))
	require.NoError(t, repo.UpsertSession(ctx, &models.SessionRecord{
		Token: "fresh", Data: []byte(`{}`), ExpiresAt: time.Now().UTC().Add(time.Hour),
	}))

	require.NoError(t, repo.DeleteExpiredSessions(ctx))

	_, err := repo.GetSession(ctx, "fresh")
	assert.NoError(t, err)
}
