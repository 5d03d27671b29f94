// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package models_test

import (
	"testing"

	"codeberg.org/avollmer/taskmate/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		input string
		first string
		last  string
	}{
		{"Anna Vollmer", "Anna", "Vollmer"},
		{"Anna", "Anna", ""},
		{"Anna Maria Vollmer", "Anna", "Maria Vollmer"},
		{"  Anna Vollmer  ", "Anna", "Vollmer"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			first, last := models.SplitFullName(tt.input)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}

func TestFullName(t *testing.T) {
	user := &models.User{FirstName: "Anna", LastName: "Vollmer"}
	assert.Equal(t, "Anna Vollmer", user.FullName())
}

func TestFullName_FallsBackToEmail(t *testing.T) {
	user := &models.User{Email: "anna@example.com"}
	assert.Equal(t, "anna@example.com", user.FullName())
}

func TestValidCategory(t *testing.T) {
	for _, category := range models.Categories() {
		assert.True(t, models.ValidCategory(category))
	}
	assert.False(t, models.ValidCategory("Gardening"))
	assert.False(t, models.ValidCategory(""))
	assert.False(t, models.ValidCategory("work"))
}
