package input

import (
	"testing"
	"time"
)

// fakeClock advances only when told to, making cooldown checks exact.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1000, 0)}
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestPrimaryCooldownDropsRapidEvents(t *testing.T) {
	clock := newFakeClock()
	r := NewRouter(150 * time.Millisecond)
	r.SetClock(clock.now)

	calls := 0
	r.On(EventPrimary, func() { calls++ })

	r.Trigger(EventPrimary) // accepted
	clock.advance(50 * time.Millisecond)
	r.Trigger(EventPrimary) // inside cooldown, dropped
	if calls != 1 {
		t.Fatalf("calls after rapid pair = %d, want 1", calls)
	}

	clock.advance(150 * time.Millisecond)
	r.Trigger(EventPrimary) // cooldown elapsed, accepted
	if calls != 2 {
		t.Fatalf("calls after cooldown elapsed = %d, want 2", calls)
	}
}

func TestDroppedEventsAreNotQueued(t *testing.T) {
	clock := newFakeClock()
	r := NewRouter(100 * time.Millisecond)
	r.SetClock(clock.now)

	calls := 0
	r.On(EventPrimary, func() { calls++ })

	r.Trigger(EventPrimary)
	for i := 0; i < 5; i++ {
		clock.advance(10 * time.Millisecond)
		r.Trigger(EventPrimary)
	}
	// None of the suppressed events fire later, no matter how long we wait.
	clock.advance(time.Hour)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (suppressed events must be dropped)", calls)
	}
	r.Trigger(EventPrimary)
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestOnlyPrimaryIsRateLimited(t *testing.T) {
	clock := newFakeClock()
	r := NewRouter(time.Second)
	r.SetClock(clock.now)

	starts, restarts := 0, 0
	r.On(EventStart, func() { starts++ })
	r.On(EventRestart, func() { restarts++ })

	r.Trigger(EventStart)
	r.Trigger(EventStart)
	r.Trigger(EventRestart)
	r.Trigger(EventRestart)

	if starts != 2 || restarts != 2 {
		t.Errorf("starts = %d, restarts = %d, want 2 and 2", starts, restarts)
	}
}

func TestSubscribersRunInOrder(t *testing.T) {
	r := NewRouter(0)

	var order []string
	r.On(EventStart, func() { order = append(order, "first") })
	r.On(EventStart, func() { order = append(order, "second") })
	r.On(EventStart, func() { order = append(order, "third") })

	r.Trigger(EventStart)

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("got %d calls, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestPanickingSubscriberIsIsolated(t *testing.T) {
	r := NewRouter(0)

	var reportedEvent Event
	var reportedValue any
	r.SetPanicReporter(func(ev Event, recovered any) {
		reportedEvent = ev
		reportedValue = recovered
	})

	secondRan := false
	r.On(EventRestart, func() { panic("boom") })
	r.On(EventRestart, func() { secondRan = true })

	r.Trigger(EventRestart)

	if !secondRan {
		t.Error("subscriber after the panicking one did not run")
	}
	if reportedEvent != EventRestart {
		t.Errorf("reported event = %q, want %q", reportedEvent, EventRestart)
	}
	if reportedValue != "boom" {
		t.Errorf("reported value = %v, want \"boom\"", reportedValue)
	}
}

func TestResetClearsTimingNotSubscribers(t *testing.T) {
	clock := newFakeClock()
	r := NewRouter(time.Minute)
	r.SetClock(clock.now)

	calls := 0
	r.On(EventPrimary, func() { calls++ })

	r.Trigger(EventPrimary)
	clock.advance(time.Millisecond)
	r.Trigger(EventPrimary) // dropped
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	r.Reset()
	clock.advance(time.Millisecond)
	r.Trigger(EventPrimary) // cooldown state cleared, accepted
	if calls != 2 {
		t.Fatalf("calls after Reset = %d, want 2 (subscribers must survive Reset)", calls)
	}
}

func TestRemoveAllClearsSubscribers(t *testing.T) {
	r := NewRouter(0)

	calls := 0
	r.On(EventPrimary, func() { calls++ })
	r.On(EventStart, func() { calls++ })

	r.RemoveAll()
	r.Trigger(EventPrimary)
	r.Trigger(EventStart)

	if calls != 0 {
		t.Errorf("calls after RemoveAll = %d, want 0", calls)
	}
}

func TestZeroCooldownDisablesRateLimit(t *testing.T) {
	r := NewRouter(0)

	calls := 0
	r.On(EventPrimary, func() { calls++ })
	for i := 0; i < 4; i++ {
		r.Trigger(EventPrimary)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
}
