package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"visa", "Visa"},
		{"VISA gold", "Visa Gold"},
		{"  cash ", "Cash"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Capitalize(tt.in), "Capitalize(%q)", tt.in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Gro", Truncate("Groceries", 3))
	assert.Equal(t, "Groceries", Truncate("Groceries", 30))
	assert.Equal(t, "早餐", Truncate("早餐店", 2))
	assert.Equal(t, "", Truncate("abc", 0))
}
