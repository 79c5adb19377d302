package promotion

import (
	"time"
)

// RelatedWindow is how long before an event a workshop still counts as
// related to it.
const RelatedWindow = 48 * time.Hour

// Workshop is the slice of workshop data the matcher needs
type Workshop struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
}

// IsRelated reports whether a workshop should be cross-promoted with an
// event: either both fall on the same calendar day (in the event's
// location), or the workshop starts up to 48 hours before the event.
// Workshops after the event never match.
func IsRelated(workshopAt, eventAt time.Time) bool {
	w := workshopAt.In(eventAt.Location())
	if sameDay(w, eventAt) {
		return true
	}

	lead := eventAt.Sub(workshopAt)
	return lead >= 0 && lead <= RelatedWindow
}

// RelatedWorkshops filters candidates down to those related to the event,
// preserving input order.
func RelatedWorkshops(eventAt time.Time, candidates []Workshop) []Workshop {
	var related []Workshop
	for _, w := range candidates {
		if IsRelated(w.StartsAt, eventAt) {
			related = append(related, w)
		}
	}
	return related
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
