package progress

import "time"

// Tracker debounces playback-time persistence. Continuous playback
// produces a sample every few hundred milliseconds; only samples that
// moved far enough from the last saved one (or changed the known
// duration) are worth a write.
type Tracker struct {
	lastSaved map[string]Playback
	pending   map[string]Playback
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		lastSaved: make(map[string]Playback),
		pending:   make(map[string]Playback),
	}
}

// Observe records a playback sample and reports whether it moved at
// least minDelta seconds from the last saved sample and should be
// persisted now. The first sample for a lesson and any sample with a
// changed duration always persist. minDelta varies by call site: seek
// updates save on smaller movements than continuous playback ticks.
func (t *Tracker) Observe(lessonID string, current, duration float64, now time.Time, minDelta float64) (Playback, bool) {
	p := Playback{CurrentTime: current, Duration: duration, LastWatched: now}

	last, seen := t.lastSaved[lessonID]
	if seen && last.Duration == duration && abs(current-last.CurrentTime) < minDelta {
		t.pending[lessonID] = p
		return p, false
	}
	t.lastSaved[lessonID] = p
	delete(t.pending, lessonID)
	return p, true
}

// Flush returns every sample held back by the debounce and marks them
// saved. Called on tab-hidden, unload, and unmount so the last known
// position is never lost to the threshold.
func (t *Tracker) Flush() map[string]Playback {
	if len(t.pending) == 0 {
		return nil
	}
	out := t.pending
	for id, p := range out {
		t.lastSaved[id] = p
	}
	t.pending = make(map[string]Playback)
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
