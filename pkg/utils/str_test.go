package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", FirstNonEmpty("a", "b"))
	assert.Equal(t, "b", FirstNonEmpty("", "b"))
	assert.Equal(t, "", FirstNonEmpty("", ""))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Falafel House", "falafel-house"},
		{"punctuation", "Abu Ali's Grill!", "abu-ali-s-grill"},
		{"collapsed separators", "  Cafe -- Beirut  ", "cafe-beirut"},
		{"arabic preserved", "مطعم الفلافل", "مطعم-الفلافل"},
		{"digits", "Pizza 24/7", "pizza-24-7"},
		{"only symbols", "!!!", "menu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}
