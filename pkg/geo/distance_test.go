package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/railplan/railplan/pkg/railway"
)

func TestDistanceKM(t *testing.T) {
	waterloo := &railway.Coordinates{Latitude: 51.5031, Longitude: -0.1132}
	claphamJunction := &railway.Coordinates{Latitude: 51.4645, Longitude: -0.1705}

	distance := DistanceKM(waterloo, claphamJunction)

	// Roughly 5.9km between London Waterloo and Clapham Junction.
	assert.InDelta(t, 5.9, distance, 0.3)
}

func TestDistanceKMSymmetric(t *testing.T) {
	a := &railway.Coordinates{Latitude: 51.2769, Longitude: -0.7786}
	b := &railway.Coordinates{Latitude: 51.3190, Longitude: -0.5557}

	assert.Equal(t, DistanceKM(a, b), DistanceKM(b, a))
}

func TestDistanceKMZeroForSamePoint(t *testing.T) {
	a := &railway.Coordinates{Latitude: 51.5031, Longitude: -0.1132}

	assert.InDelta(t, 0, DistanceKM(a, a), 1e-9)
}

func TestDistanceKMUnroutableCoordinates(t *testing.T) {
	valid := &railway.Coordinates{Latitude: 51.5031, Longitude: -0.1132}

	assert.True(t, math.IsInf(DistanceKM(nil, valid), 1))
	assert.True(t, math.IsInf(DistanceKM(valid, nil), 1))
	assert.True(t, math.IsInf(DistanceKM(valid, &railway.Coordinates{}), 1))
}
