// Package unlock computes which modules, lessons, and assignments are
// currently accessible. Everything here is a pure function of the
// outline and the completed-lesson set, safe to call on every render.
package unlock

import (
	"github.com/abhisek/courseflow/internal/course"
	"github.com/abhisek/courseflow/internal/progress"
)

// Resolver answers unlock queries for one course and one progress
// record. It holds no state of its own.
type Resolver struct {
	Course *course.Course
	Record *progress.Record
}

// New returns a Resolver over the given outline and record.
func New(c *course.Course, r *progress.Record) *Resolver {
	return &Resolver{Course: c, Record: r}
}

// Module reports whether the module at the given display index is
// unlocked. The first module is always open; each later module opens
// when its predecessor reaches 100 percent. Completion only grows, so
// an unlocked module never re-locks.
func (r *Resolver) Module(moduleIndex int) bool {
	if moduleIndex < 0 || moduleIndex >= len(r.Course.Modules) {
		return false
	}
	if moduleIndex == 0 {
		return true
	}
	prev := &r.Course.Modules[moduleIndex-1]
	return progress.ModuleProgress(prev, r.Record) == 100
}

// Lesson reports whether the lesson at (moduleIndex, storage index) is
// unlocked. The lesson is addressed by its storage index; unlock order
// follows the order-sorted active sequence, where the first lesson is
// always open and each later one opens when its sorted predecessor is
// completed.
func (r *Resolver) Lesson(moduleIndex, lessonIndex int) bool {
	if !r.Module(moduleIndex) {
		return false
	}
	m := &r.Course.Modules[moduleIndex]
	sorted := m.ActiveSorted()
	for rank, ref := range sorted {
		if ref.StorageIndex != lessonIndex {
			continue
		}
		if rank == 0 {
			return true
		}
		return r.Record.IsCompleted(sorted[rank-1].Lesson.ID)
	}
	// Inactive or out-of-range lessons are never unlocked.
	return false
}

// Assignment reports whether the module's assignments are open.
// Assignments gate on full lesson completion of their own module,
// independent of the module-to-module unlock chain.
func (r *Resolver) Assignment(moduleIndex int) bool {
	if moduleIndex < 0 || moduleIndex >= len(r.Course.Modules) {
		return false
	}
	m := &r.Course.Modules[moduleIndex]
	sorted := m.ActiveSorted()
	if len(sorted) == 0 {
		return false
	}
	for _, ref := range sorted {
		if !r.Record.IsCompleted(ref.Lesson.ID) {
			return false
		}
	}
	return true
}

// FirstUnlocked scans modules and their sorted lessons in order and
// returns the position of the first unlocked active lesson, expressed
// in storage indices. Used to repair a persisted position that no
// longer points at an unlocked lesson. The boolean is false when the
// outline has no active lessons at all.
func (r *Resolver) FirstUnlocked() (progress.Position, bool) {
	for mi := range r.Course.Modules {
		if !r.Module(mi) {
			continue
		}
		sorted := r.Course.Modules[mi].ActiveSorted()
		if len(sorted) == 0 {
			continue
		}
		return progress.Position{ModuleIndex: mi, LessonIndex: sorted[0].StorageIndex}, true
	}
	return progress.Position{}, false
}

// ValidPosition reports whether a persisted position still denotes an
// unlocked, active lesson in the current outline.
func (r *Resolver) ValidPosition(p progress.Position) bool {
	if p.ModuleIndex < 0 || p.ModuleIndex >= len(r.Course.Modules) {
		return false
	}
	m := &r.Course.Modules[p.ModuleIndex]
	if p.LessonIndex < 0 || p.LessonIndex >= len(m.Lessons) {
		return false
	}
	if !m.Lessons[p.LessonIndex].Active {
		return false
	}
	return r.Lesson(p.ModuleIndex, p.LessonIndex)
}
