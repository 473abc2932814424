package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		cents    int64
		expected string
	}{
		{name: "zero", cents: 0, expected: "0.00"},
		{name: "sub dollar", cents: 5, expected: "0.05"},
		{name: "round amount", cents: 2500, expected: "25.00"},
		{name: "uneven amount", cents: 199999, expected: "1999.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.cents))
		})
	}
}
