// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package i18n_test

import (
	"context"
	"testing"

	"codeberg.org/avollmer/taskmate/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestT(t *testing.T) {
	require.NoError(t, i18n.Init())

	en := i18n.WithLocale(context.Background(), language.English)
	de := i18n.WithLocale(context.Background(), language.German)

	assert.Equal(t, "Incorrect code.", i18n.T(en, "flash_otp_incorrect"))
	assert.Equal(t, "Falscher Code.", i18n.T(de, "flash_otp_incorrect"))
}

func TestT_UnknownMessageReturnsID(t *testing.T) {
	require.NoError(t, i18n.Init())

	ctx := i18n.WithLocale(context.Background(), language.English)

	assert.Equal(t, "no_such_message", i18n.T(ctx, "no_such_message"))
}

func TestTData(t *testing.T) {
	require.NoError(t, i18n.Init())

	ctx := i18n.WithLocale(context.Background(), language.English)

	msg := i18n.TData(ctx, "email_otp_body", map[string]any{
		"Code":    "123456",
		"Minutes": 10,
	})
	assert.Contains(t, msg, "123456")
	assert.Contains(t, msg, "10 minutes")
}

func TestMatchLanguage(t *testing.T) {
	assert.Equal(t, language.German, i18n.MatchLanguage("de-DE,de;q=0.9"))
	assert.Equal(t, language.English, i18n.MatchLanguage("en-US,en;q=0.9"))
	assert.Equal(t, language.English, i18n.MatchLanguage("fr-FR"))
	assert.Equal(t, language.English, i18n.MatchLanguage(""))
}

func TestGetLocale_Default(t *testing.T) {
	assert.Equal(t, "en", i18n.GetLocale(context.Background()))
}
