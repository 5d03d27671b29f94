// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package auth_test

import (
	"testing"

	"codeberg.org/avollmer/taskmate/internal/services/auth"
	"github.com/stretchr/testify/assert"
)

func TestPasswordValidator_MinLength(t *testing.T) {
	v := auth.DefaultPasswordValidator()

	result := v.Validate("short", "")

	assert.False(t, result.Valid)
}

func TestPasswordValidator_EntirelyNumeric(t *testing.T) {
	v := auth.DefaultPasswordValidator()

	result := v.Validate("1234567890", "")

	assert.False(t, result.Valid)
}

func TestPasswordValidator_CommonPassword(t *testing.T) {
	v := auth.DefaultPasswordValidator()

	result := v.Validate("password", "")

	assert.False(t, result.Valid)
}

func TestPasswordValidator_SimilarToEmail(t *testing.T) {
	v := auth.DefaultPasswordValidator()

	result := v.Validate("anna@example.com", "anna@example.com")

	assert.False(t, result.Valid)
}

func TestPasswordValidator_GoodPassword(t *testing.T) {
	v := auth.DefaultPasswordValidator()

	result := v.Validate("tr0ub4dor-and-three", "anna@example.com")

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestPasswordValidator_HelpTexts(t *testing.T) {
	v := auth.DefaultPasswordValidator()

	assert.NotEmpty(t, v.GetHelpTexts())
}
