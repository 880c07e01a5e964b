package model

import "testing"

func TestNote_DisplayTitle(t *testing.T) {
	tests := []struct {
		name     string
		note     Note
		expected string
	}{
		{
			name:     "explicit title wins",
			note:     Note{Title: "Shopping", Body: "milk\neggs"},
			expected: "Shopping",
		},
		{
			name:     "whitespace title falls back to body",
			note:     Note{Title: "   ", Body: "first line\nsecond line"},
			expected: "first line",
		},
		{
			name:     "empty note",
			note:     Note{},
			expected: "Untitled",
		},
		{
			name:     "long body is truncated",
			note:     Note{Body: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"},
			expected: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.note.DisplayTitle(); got != tt.expected {
				t.Errorf("DisplayTitle() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
