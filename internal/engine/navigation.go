package engine

import (
	"context"

	"github.com/abhisek/courseflow/internal/course"
	"github.com/abhisek/courseflow/internal/progress"
)

// Next advances to the following lesson in the order-sorted sequence,
// crossing into the next module's first sorted lesson at a boundary.
// The current lesson is marked completed first if it isn't already:
// advancing implies completion even when the media never reached its
// natural end. Navigation deliberately skips the render-time unlock
// check so the module just completed by this advance is reachable
// immediately. The new position is persisted. Returns false when
// already at the last lesson of the last module.
func (e *Engine) Next(ctx context.Context) bool {
	e.mu.Lock()
	rank, sorted, ok := e.currentRank()
	if !ok {
		e.mu.Unlock()
		return false
	}
	curID := sorted[rank].Lesson.ID
	e.mu.Unlock()

	// Completion-on-advance is mandatory, for every content type.
	e.CompleteLesson(ctx, curID)

	e.mu.Lock()
	defer e.mu.Unlock()

	if rank+1 < len(sorted) {
		e.pos.LessonIndex = sorted[rank+1].StorageIndex
		e.cs.SavePosition(ctx, e.pos)
		return true
	}

	// Boundary: move to the next module's first sorted lesson, when
	// one exists and has active lessons.
	for mi := e.pos.ModuleIndex + 1; mi < len(e.outline.Modules); mi++ {
		next := e.outline.Modules[mi].ActiveSorted()
		if len(next) == 0 {
			continue
		}
		e.pos = progress.Position{ModuleIndex: mi, LessonIndex: next[0].StorageIndex}
		e.cs.SavePosition(ctx, e.pos)
		return true
	}
	return false
}

// Previous moves to the preceding lesson in the order-sorted sequence,
// falling back to the previous module's last sorted lesson at a
// boundary. It never triggers completion. The new position is
// persisted. Returns false when already at the first lesson.
func (e *Engine) Previous(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	rank, sorted, ok := e.currentRank()
	if !ok {
		return false
	}

	if rank > 0 {
		e.pos.LessonIndex = sorted[rank-1].StorageIndex
		e.cs.SavePosition(ctx, e.pos)
		return true
	}

	for mi := e.pos.ModuleIndex - 1; mi >= 0; mi-- {
		prev := e.outline.Modules[mi].ActiveSorted()
		if len(prev) == 0 {
			continue
		}
		e.pos = progress.Position{ModuleIndex: mi, LessonIndex: prev[len(prev)-1].StorageIndex}
		e.cs.SavePosition(ctx, e.pos)
		return true
	}
	return false
}

// currentRank resolves the position into the sorted view of the
// current module. Callers must hold e.mu.
func (e *Engine) currentRank() (int, []course.LessonRef, bool) {
	if e.pos.ModuleIndex < 0 || e.pos.ModuleIndex >= len(e.outline.Modules) {
		return 0, nil, false
	}
	m := &e.outline.Modules[e.pos.ModuleIndex]
	sorted := m.ActiveSorted()
	for rank, ref := range sorted {
		if ref.StorageIndex == e.pos.LessonIndex {
			return rank, sorted, true
		}
	}
	return 0, nil, false
}
