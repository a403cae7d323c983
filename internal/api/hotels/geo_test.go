package hotels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm_ZeroForIdenticalPoints(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKm(48.8566, 2.3522, 48.8566, 2.3522))
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := HaversineKm(48.8566, 2.3522, 41.9028, 12.4964)
	b := HaversineKm(41.9028, 12.4964, 48.8566, 2.3522)
	assert.InDelta(t, a, b, 1e-9)
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Paris to Rome, roughly 1105 km great-circle.
	d := HaversineKm(48.8566, 2.3522, 41.9028, 12.4964)
	assert.InDelta(t, 1105.0, d, 5.0)
}

func TestHaversineKm_ShortDistance(t *testing.T) {
	// Two points about 1.1 km apart in central Lisbon.
	d := HaversineKm(38.7223, -9.1393, 38.7323, -9.1393)
	assert.InDelta(t, 1.11, d, 0.02)
}
