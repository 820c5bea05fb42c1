package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentOf(t *testing.T) {
	tests := []struct {
		part, whole, want int
	}{
		{1, 8, 13}, // 12.5
		{3, 8, 38}, // 37.5
		{1, 3, 33},
		{2, 3, 67},
		{5, 5, 100},
		{0, 7, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, percentOf(tt.part, tt.whole), "%d/%d", tt.part, tt.whole)
	}
}
