package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClass(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"numeric becomes Class N", "5", "Class 5"},
		{"numeric with whitespace", "  10 ", "Class 10"},
		{"leading zero collapses", "05", "Class 5"},
		{"nursery keyword", "nursery", "Nursery"},
		{"nursery uppercase", "NURSERY", "Nursery"},
		{"nursery embedded", "Pre-Nur", "Nursery"},
		{"already canonical", "Class 8", "Class 8"},
		{"free-form label kept", "Senior KG", "Senior KG"},
		{"trimmed but verbatim", "  Senior KG  ", "Senior KG"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeClass(tt.input))
		})
	}
}
