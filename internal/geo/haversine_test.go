package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		expected               float64
		tolerance              float64
	}{
		{
			name: "same point",
			lat1: 12.9716, lng1: 77.5946,
			lat2: 12.9716, lng2: 77.5946,
			expected:  0,
			tolerance: 0.001,
		},
		{
			name: "Bangalore to Mysore",
			lat1: 12.9716, lng1: 77.5946,
			lat2: 12.2958, lng2: 76.6394,
			expected:  128.5,
			tolerance: 2,
		},
		{
			name: "Delhi to Mumbai",
			lat1: 28.6139, lng1: 77.2090,
			lat2: 19.0760, lng2: 72.8777,
			expected:  1153,
			tolerance: 10,
		},
		{
			name: "across the prime meridian",
			lat1: 51.5074, lng1: -0.1278,
			lat2: 48.8566, lng2: 2.3522,
			expected:  343.5,
			tolerance: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			assert.InDelta(t, tt.expected, got, tt.tolerance)
		})
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	forward := DistanceKm(12.9716, 77.5946, 13.0827, 80.2707)
	backward := DistanceKm(13.0827, 80.2707, 12.9716, 77.5946)
	assert.InDelta(t, forward, backward, 1e-9)
}
