// Package poller is the client side of the event sync protocol: a client keeps
// the last version it saw, polls the event log on an interval and treats a
// higher version as "something changed".
package poller

import (
	"sync"

	"github.com/blogem/boardhook/models"
)

// Update is the outcome of one observation
type Update struct {
	Version int64
	// Changed is set when the version moved past a known baseline
	Changed bool
	// Fresh holds the events to surface as new. The count comes from the
	// version delta and is only a hint: evicted or concurrent appends make it approximate.
	Fresh []models.Event
	// Refresh asks the caller to re-read dependent state such as the open board
	Refresh bool
}

// Tracker holds the last known version. The zero value is ready to use and
// treats the first observation as a baseline.
type Tracker struct {
	mu   sync.Mutex
	last int64
}

// Observe compares a page against the last known version and records the page's version
func (t *Tracker) Observe(page models.EventPage) Update {
	t.mu.Lock()
	defer t.mu.Unlock()

	update := Update{Version: page.Version}
	if page.Version > t.last && t.last != 0 {
		n := page.Version - t.last
		if n > int64(len(page.Events)) {
			n = int64(len(page.Events))
		}
		update.Changed = true
		update.Refresh = true
		update.Fresh = page.Events[:n]
	}
	t.last = page.Version
	return update
}

// LastKnown returns the version recorded by the latest observation
func (t *Tracker) LastKnown() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// Reset forgets the baseline, as after a reconnect
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = 0
}
