// Package input normalizes heterogeneous input sources into the three
// logical events the game understands, and fans them out to subscribers.
// It knows nothing about terminals or game phases.
package input

import (
	"time"

	"github.com/charmbracelet/log"
)

// Event is a logical input event name.
type Event string

const (
	EventPrimary Event = "primary" // flap
	EventStart   Event = "start"   // begin a run from the menu
	EventRestart Event = "restart" // begin a new run after game over
)

// Handler consumes a routed event.
type Handler func()

// Router delivers events to subscribers in subscription order.
// Primary events fired within the cooldown of the last accepted one are
// dropped, not queued. A panicking subscriber is isolated and reported;
// the remaining subscribers for that event still run.
type Router struct {
	subscribers map[Event][]Handler
	cooldown    time.Duration
	lastPrimary time.Time

	now         func() time.Time
	reportPanic func(ev Event, recovered any)
}

// NewRouter creates a router with the given primary-event cooldown.
// A non-positive cooldown disables rate limiting.
func NewRouter(cooldown time.Duration) *Router {
	return &Router{
		subscribers: make(map[Event][]Handler),
		cooldown:    cooldown,
		now:         time.Now,
		reportPanic: func(ev Event, recovered any) {
			log.Error("input subscriber panicked", "event", ev, "panic", recovered)
		},
	}
}

// On appends a subscriber for the event. Subscribers run in the order
// they were added.
func (r *Router) On(ev Event, h Handler) {
	r.subscribers[ev] = append(r.subscribers[ev], h)
}

// Trigger delivers the event to every subscriber.
// A primary event inside the cooldown window is silently dropped.
func (r *Router) Trigger(ev Event) {
	if ev == EventPrimary && r.cooldown > 0 {
		now := r.now()
		if !r.lastPrimary.IsZero() && now.Sub(r.lastPrimary) < r.cooldown {
			return
		}
		r.lastPrimary = now
	}
	for _, h := range r.subscribers[ev] {
		r.invoke(ev, h)
	}
}

func (r *Router) invoke(ev Event, h Handler) {
	defer func() {
		if recovered := recover(); recovered != nil {
			r.reportPanic(ev, recovered)
		}
	}()
	h()
}

// Reset clears the cooldown timing. Subscriber lists are untouched;
// the game calls this on restart.
func (r *Router) Reset() {
	r.lastPrimary = time.Time{}
}

// RemoveAll clears every subscriber list. Used on teardown.
func (r *Router) RemoveAll() {
	r.subscribers = make(map[Event][]Handler)
}

// SetClock overrides the time source used for cooldown measurement.
// Useful for deterministic tests.
func (r *Router) SetClock(now func() time.Time) {
	r.now = now
}

// SetPanicReporter overrides where subscriber panics are reported.
func (r *Router) SetPanicReporter(report func(ev Event, recovered any)) {
	r.reportPanic = report
}
