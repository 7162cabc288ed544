package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureSelection_Toggle(t *testing.T) {
	gps := Feature{Label: "GPS Navigation", Price: 5}
	seat := Feature{Label: "Child Seat", Price: 4}

	t.Run("toggle adds then removes", func(t *testing.T) {
		s := NewFeatureSelection()
		s = s.Toggle(gps)
		assert.True(t, s.Contains(gps.Label))
		s = s.Toggle(gps)
		assert.False(t, s.Contains(gps.Label))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("double toggle restores original selection", func(t *testing.T) {
		original := NewFeatureSelection(seat)
		got := original.Toggle(gps).Toggle(gps)
		assert.Equal(t, original.Labels(), got.Labels())

		got = original.Toggle(seat).Toggle(seat)
		assert.Equal(t, original.Labels(), got.Labels())
	})

	t.Run("insertion order kept", func(t *testing.T) {
		s := NewFeatureSelection().Toggle(seat).Toggle(gps)
		assert.Equal(t, []string{"Child Seat", "GPS Navigation"}, s.Labels())
	})

	t.Run("toggle does not mutate receiver", func(t *testing.T) {
		s := NewFeatureSelection(seat)
		_ = s.Toggle(gps)
		assert.Equal(t, []string{"Child Seat"}, s.Labels())
	})
}

func TestSeedFromBooking(t *testing.T) {
	s := SeedFromBooking([]BookedFeature{
		{Name: "GPS Navigation", Price: 5},
		{Name: "GPS Navigation", Price: 5},
		{Name: "Child Seat", Price: 4},
	})
	assert.Equal(t, []string{"GPS Navigation", "Child Seat"}, s.Labels())
}

func TestFeatureCatalog(t *testing.T) {
	c := NewFeatureCatalog(
		Feature{Label: "GPS Navigation", Price: 5},
		Feature{Label: "GPS Navigation", Price: 9},
	)
	price, ok := c.Price("GPS Navigation")
	assert.True(t, ok)
	assert.Equal(t, 5.0, price)
	assert.Len(t, c.Items(), 1)

	_, ok = c.Price("Jetpack")
	assert.False(t, ok)

	booked := NewFeatureSelection(
		Feature{Label: "GPS Navigation"},
		Feature{Label: "Jetpack", Price: 100},
	).ToBooked(c)
	assert.Equal(t, []BookedFeature{{Name: "GPS Navigation", Price: 5}, {Name: "Jetpack", Price: 0}}, booked)
}
