// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package email_test

import (
	"context"
	"testing"

	"codeberg.org/avollmer/taskmate/internal/config"
	"codeberg.org/avollmer/taskmate/internal/services/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService_RequiresHost(t *testing.T) {
	_, err := email.NewService(&config.SMTPConfig{From: "taskmate@example.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "host")
}

func TestNewService_RequiresFrom(t *testing.T) {
	_, err := email.NewService(&config.SMTPConfig{Host: "mail.example.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "from")
}

func TestNewService(t *testing.T) {
	svc, err := email.NewService(&config.SMTPConfig{
		Host: "mail.example.com",
		Port: 587,
		From: "taskmate@example.com",
	})

	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestLogNotifier(t *testing.T) {
	err := email.LogNotifier{}.SendOTP(context.Background(), "anna@example.com", "123456")

	assert.NoError(t, err)
}
