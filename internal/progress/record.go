// Package progress holds the learner's mutable per-course state (the
// completed-lesson set, playback positions, and current position) and
// the pure calculators that derive percentages from it.
package progress

import (
	"time"

	"github.com/abhisek/courseflow/internal/course"
)

// Playback captures where the learner left a lesson's media.
type Playback struct {
	CurrentTime float64   `json:"currentTime"`
	Duration    float64   `json:"duration"`
	LastWatched time.Time `json:"lastWatched"`
}

// Record is the persisted per-course progress state. Completed is a
// true set: adding an id twice is observationally a no-op.
type Record struct {
	PerLesson map[string]Playback `json:"perLesson"`
	Completed map[string]bool     `json:"completed"`
}

// NewRecord returns an empty progress record ready for mutation.
func NewRecord() *Record {
	return &Record{
		PerLesson: make(map[string]Playback),
		Completed: make(map[string]bool),
	}
}

// Complete adds a lesson id to the completed set. It reports whether
// the id was newly added, so callers can skip side effects on the
// idempotent path.
func (r *Record) Complete(lessonID string) bool {
	if r.Completed == nil {
		r.Completed = make(map[string]bool)
	}
	if r.Completed[lessonID] {
		return false
	}
	r.Completed[lessonID] = true
	return true
}

// IsCompleted reports membership in the completed set.
func (r *Record) IsCompleted(lessonID string) bool {
	return r.Completed[lessonID]
}

// SetPlayback stores the latest playback sample for a lesson.
func (r *Record) SetPlayback(lessonID string, p Playback) {
	if r.PerLesson == nil {
		r.PerLesson = make(map[string]Playback)
	}
	r.PerLesson[lessonID] = p
}

// Position is the persisted current location in the course. Indices
// point into the module's storage-order lesson array, not the
// order-sorted view.
type Position struct {
	ModuleIndex int `json:"moduleIndex"`
	LessonIndex int `json:"lessonIndex"`
}

// completedInModule counts completed lessons among the module's active
// lessons. Stale ids in the completed set (lessons removed or
// deactivated since they were recorded) are tolerated and never
// counted.
func completedInModule(m *course.Module, r *Record) int {
	n := 0
	for i := range m.Lessons {
		l := &m.Lessons[i]
		if l.Active && r.Completed[l.ID] {
			n++
		}
	}
	return n
}
