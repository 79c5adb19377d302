package promotion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsRelated(t *testing.T) {
	event := time.Date(2025, 9, 10, 18, 0, 0, 0, time.UTC)

	t.Run("same calendar day any time", func(t *testing.T) {
		assert.True(t, IsRelated(time.Date(2025, 9, 10, 8, 0, 0, 0, time.UTC), event))
		assert.True(t, IsRelated(time.Date(2025, 9, 10, 23, 30, 0, 0, time.UTC), event))
	})

	t.Run("within 48 hours before", func(t *testing.T) {
		assert.True(t, IsRelated(event.Add(-46*time.Hour), event))
		assert.True(t, IsRelated(event.Add(-48*time.Hour), event))
	})

	t.Run("more than 48 hours before", func(t *testing.T) {
		assert.False(t, IsRelated(event.Add(-49*time.Hour), event))
		assert.False(t, IsRelated(time.Date(2025, 9, 5, 18, 0, 0, 0, time.UTC), event))
	})

	t.Run("after the event on a later day", func(t *testing.T) {
		assert.False(t, IsRelated(event.Add(30*time.Hour), event))
	})

	t.Run("after the event same day still matches", func(t *testing.T) {
		assert.True(t, IsRelated(event.Add(2*time.Hour), event))
	})

	t.Run("calendar day is judged in the event's timezone", func(t *testing.T) {
		zurich, err := time.LoadLocation("Europe/Zurich")
		assert.NoError(t, err)
		eventLocal := time.Date(2025, 9, 10, 19, 0, 0, 0, zurich)
		// 2025-09-09 23:00 UTC is already 2025-09-10 in Zurich
		workshop := time.Date(2025, 9, 9, 23, 0, 0, 0, time.UTC)
		assert.True(t, sameDay(workshop.In(zurich), eventLocal))
		assert.True(t, IsRelated(workshop, eventLocal))
	})
}

func TestRelatedWorkshops(t *testing.T) {
	event := time.Date(2025, 9, 10, 18, 0, 0, 0, time.UTC)
	candidates := []Workshop{
		{ID: "w1", Title: "Astro Deep Dive", StartsAt: event.Add(-46 * time.Hour)},
		{ID: "w2", Title: "Testing Workshop", StartsAt: event.Add(-5 * 24 * time.Hour)},
		{ID: "w3", Title: "TypeScript Morning", StartsAt: time.Date(2025, 9, 10, 9, 0, 0, 0, time.UTC)},
	}

	related := RelatedWorkshops(event, candidates)
	assert.Len(t, related, 2)
	assert.Equal(t, "w1", related[0].ID)
	assert.Equal(t, "w3", related[1].ID)
}
