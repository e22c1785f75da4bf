package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotPrice(t *testing.T) {
	cases := []struct {
		name        string
		ratePerHour int64
		duration    int
		want        int64
	}{
		{"full hour", 10000, 60, 10000},
		{"half hour", 10000, 30, 5000},
		{"ninety minutes", 10000, 90, 15000},
		{"rounds repeating fraction", 10000, 40, 6667},
		{"two hours", 15000, 120, 30000},
		{"zero rate", 0, 60, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SlotPrice(tc.ratePerHour, tc.duration)

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSlotPrice_InvalidDuration(t *testing.T) {
	for _, duration := range []int{0, -30} {
		_, err := SlotPrice(10000, duration)
		assert.Error(t, err)
	}
}
