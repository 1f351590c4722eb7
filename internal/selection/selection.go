// Package selection tracks the single "currently active record" shared by the
// table and map views. There is exactly one selection value system-wide; both
// views funnel through it, so a row highlight and a marker highlight can never
// disagree.
package selection

import "sync"

// Source identifies which view initiated a selection change, so the other
// view knows how to react (scroll a row into view vs. recenter the map).
type Source string

const (
	SourceTable Source = "table"
	SourceMap   Source = "map"
)

// Event describes one selection transition.
type Event struct {
	ID       string `json:"id,omitempty"`
	Source   Source `json:"source"`
	Selected bool   `json:"selected"`
}

// Tracker is the selection state machine: Unselected, or Selected(id).
// The zero value is unselected. Selecting a new id always replaces the
// previous one; nothing ever auto-selects.
type Tracker struct {
	mu        sync.Mutex
	id        string
	selected  bool
	listeners []func(Event)
}

// New returns an unselected Tracker.
func New() *Tracker {
	return &Tracker{}
}

// Subscribe registers a listener invoked on every transition. Listeners run
// synchronously under the tracker lock; keep them cheap (hand off to a
// channel for anything slow).
func (t *Tracker) Subscribe(fn func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// Select makes id the sole selected record and notifies listeners.
func (t *Tracker) Select(id string, src Source) {
	if id == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.id = id
	t.selected = true
	t.notify(Event{ID: id, Source: src, Selected: true})
}

// Clear drops the selection, if any, and notifies listeners.
func (t *Tracker) Clear(src Source) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.selected {
		return
	}
	t.id = ""
	t.selected = false
	t.notify(Event{Source: src, Selected: false})
}

// Current returns the selected id, or ok=false when nothing is selected.
func (t *Tracker) Current() (id string, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.id, t.selected
}

func (t *Tracker) notify(ev Event) {
	for _, fn := range t.listeners {
		fn(ev)
	}
}
