package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateEnd(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "short", 5, "short"},
		{"truncated", "a longer title", 8, "a longe…"},
		{"unicode", "títúlõ", 4, "tít…"},
		{"limit one", "abc", 1, "…"},
		{"limit zero", "abc", 0, ""},
		{"negative", "abc", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateEnd(tt.input, tt.limit))
		})
	}
}

func TestClampIndex(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		length int
		want   int
	}{
		{"in range", 2, 5, 2},
		{"negative", -1, 5, 0},
		{"past end", 7, 5, 4},
		{"empty list", 3, 0, 0},
		{"single item", 3, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampIndex(tt.index, tt.length))
		})
	}
}
