package engine

import (
	"context"

	"github.com/abhisek/courseflow/internal/course"
)

// UpdatePlayback records a playback position from an explicit user
// action (seek, pause). The write is debounced against the standard
// save threshold.
func (e *Engine) UpdatePlayback(ctx context.Context, lessonID string, current, duration float64) {
	e.observe(ctx, lessonID, current, duration, e.cfg.PlaybackSaveDelta)
}

// PlaybackTick records a sample from continuous playback. Ticks use
// the coarser debounce threshold, and once the watched fraction
// crosses the completion ratio the lesson auto-completes.
func (e *Engine) PlaybackTick(ctx context.Context, lessonID string, current, duration float64) {
	e.observe(ctx, lessonID, current, duration, e.cfg.PlaybackTickDelta)

	if duration > 0 && current/duration >= e.cfg.VideoCompleteRatio {
		if l, ok := e.outline.Lookup(lessonID); ok && l.Content.Kind == course.ContentVideo {
			e.CompleteLesson(ctx, lessonID)
		}
	}
}

// OnMediaEnded completes a video lesson at its natural end and flushes
// the final position.
func (e *Engine) OnMediaEnded(ctx context.Context, lessonID string, duration float64) {
	e.observe(ctx, lessonID, duration, duration, 0)
	e.CompleteLesson(ctx, lessonID)
}

// FlushPlayback persists every sample held back by the debounce.
// Called on tab-hidden, unload, and unmount.
func (e *Engine) FlushPlayback(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	flushed := e.tracker.Flush()
	if len(flushed) == 0 {
		return
	}
	for id, p := range flushed {
		e.rec.SetPlayback(id, p)
	}
	e.cs.SaveProgress(ctx, e.rec)
}

func (e *Engine) observe(ctx context.Context, lessonID string, current, duration, minDelta float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	p, save := e.tracker.Observe(lessonID, current, duration, e.clock(), minDelta)
	if !save {
		return
	}
	e.rec.SetPlayback(lessonID, p)
	e.cs.SaveProgress(ctx, e.rec)
}
