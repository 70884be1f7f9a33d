package progress

import (
	"testing"
	"time"
)

func TestTrackerDebounce(t *testing.T) {
	tr := NewTracker()
	now := time.Now()

	// First sample always saves.
	if _, save := tr.Observe("l1", 0.0, 100, now, 1.0); !save {
		t.Error("first sample should save")
	}

	// Sub-threshold movement is held back.
	if _, save := tr.Observe("l1", 0.5, 100, now, 1.0); save {
		t.Error("0.5s delta should not save at a 1s threshold")
	}

	// Crossing the threshold saves.
	if _, save := tr.Observe("l1", 1.2, 100, now, 1.0); !save {
		t.Error("1.2s delta should save at a 1s threshold")
	}

	// Delta measured against last saved sample, not last observed.
	if _, save := tr.Observe("l1", 1.9, 100, now, 1.0); save {
		t.Error("0.7s from last save should not save")
	}
}

func TestTrackerDurationChangeAlwaysSaves(t *testing.T) {
	tr := NewTracker()
	now := time.Now()

	tr.Observe("l1", 10, 100, now, 2.0)
	if _, save := tr.Observe("l1", 10.1, 120, now, 2.0); !save {
		t.Error("duration change should save regardless of delta")
	}
}

func TestTrackerFlush(t *testing.T) {
	tr := NewTracker()
	now := time.Now()

	tr.Observe("l1", 0, 100, now, 1.0)
	tr.Observe("l1", 0.5, 100, now, 1.0) // held back
	tr.Observe("l2", 0, 60, now, 1.0)

	flushed := tr.Flush()
	if len(flushed) != 1 {
		t.Fatalf("Flush() returned %d samples, want 1", len(flushed))
	}
	if p, ok := flushed["l1"]; !ok || p.CurrentTime != 0.5 {
		t.Errorf("Flush() l1 = %+v, want CurrentTime 0.5", p)
	}

	// Flushed samples become the new baseline and are not re-flushed.
	if again := tr.Flush(); again != nil {
		t.Errorf("second Flush() = %v, want nil", again)
	}
	if _, save := tr.Observe("l1", 0.9, 100, now, 1.0); save {
		t.Error("0.4s from flushed baseline should not save")
	}
}
