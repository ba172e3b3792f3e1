package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateInstructorAmount(t *testing.T) {
	tests := []struct {
		name              string
		coursePrice       float64
		commissionPercent float64
		want              float64
	}{
		{"standard commission", 100, 20, 80},
		{"free course", 0, 20, 0},
		{"no commission", 49.99, 0, 49.99},
		{"full commission", 100, 100, 0},
		{"fractional price", 49.99, 20, 39.992},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateInstructorAmount(tt.coursePrice, tt.commissionPercent)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculateInstructorAmountIsPure(t *testing.T) {
	first := CalculateInstructorAmount(100, 20)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CalculateInstructorAmount(100, 20))
	}
}
