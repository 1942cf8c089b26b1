package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKM(t *testing.T) {
	// Gangnam to Yeoksam, roughly 0.8 km apart
	d := HaversineKM(37.4979, 127.0276, 37.5006, 127.0364)
	assert.InDelta(t, 0.83, d, 0.05)
	assert.Zero(t, HaversineKM(10, 10, 10, 10))
}

func TestCumulativeKM(t *testing.T) {
	assert.Empty(t, CumulativeKM(nil))

	pts := [][2]float64{{0, 0}, {0, 1}, {0, 2}}
	cum := CumulativeKM(pts)
	assert.Len(t, cum, 3)
	assert.Zero(t, cum[0])
	assert.InDelta(t, 111.19, cum[1], 0.01)
	assert.InDelta(t, 2*cum[1], cum[2], 1e-6)
}

func TestMetres(t *testing.T) {
	tests := []struct {
		km   float64
		want int
	}{
		{0, 1},
		{-1, 1},
		{math.NaN(), 1},
		{0.0001, 1},
		{0.25, 250},
		{0.2501, 251},
		{1.5, 1500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Metres(tt.km), "km=%v", tt.km)
	}
}

func TestIso8601FromUnixSeconds(t *testing.T) {
	assert.Equal(t, "2024-01-01T00:00:00Z", Iso8601FromUnixSeconds(1704067200))
	assert.Equal(t, "", Iso8601FromUnixSeconds(0))
}

func TestMillis(t *testing.T) {
	assert.Equal(t, 2*time.Second, Millis(2000, time.Second))
	assert.Equal(t, time.Second, Millis(0, time.Second))
}
