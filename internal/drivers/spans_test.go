package drivers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonZeroSpans(t *testing.T) {
	tests := []struct {
		name   string
		frame  []byte
		expect []span
	}{
		{"empty", nil, nil},
		{"all zero", make([]byte, 8), nil},
		{"single run", []byte{0, 1, 2, 0}, []span{{1, 2}}},
		{"leading and trailing", []byte{5, 0, 0, 5}, []span{{0, 0}, {3, 3}}},
		{"adjacent runs split by one zero", []byte{1, 0, 1}, []span{{0, 0}, {2, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, nonZeroSpans(tt.frame))
		})
	}
}
