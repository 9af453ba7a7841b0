package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim spaces", "  Ada Lovelace  ", "Ada Lovelace"},
		{"multiple spaces between words", "Ada    Lovelace", "Ada Lovelace"},
		{"tabs and newlines", "Ada\t\nLovelace", "Ada Lovelace"},
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"preserve special characters", " Café & Spa™ ", "Café & Spa™"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeName(got), "must be idempotent")
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "guest@example.com", NormalizeEmail("  Guest@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestNormalizeComment(t *testing.T) {
	got := NormalizeComment("  Lovely   room,\n\n great    view  ")
	assert.Equal(t, "Lovely room,\n\ngreat view", got)
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases host", "https://Photos.Example.com/Me.png", "https://photos.example.com/Me.png"},
		{"drops tracking params", "https://example.com/a.png?utm_source=x&size=2", "https://example.com/a.png?size=2"},
		{"empty", "  ", ""},
		{"not a url is kept for the validator", "not a url", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.input))
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain date", "2024-01-01", "2024-01-01"},
		{"iso timestamp", "2024-01-03T00:00:00.000Z", "2024-01-03"},
		{"offset timestamp", "2024-01-03T23:30:00-02:00", "2024-01-04"},
		{"garbage kept", "next tuesday", "next tuesday"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.input))
		})
	}
}
