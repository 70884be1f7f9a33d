package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/courseflow/internal/progress"
)

// CompleteLesson adds a lesson to the completed set, persists the
// merged progress record, emits a success notification naming the
// lesson, and schedules a best-effort overall-progress push once local
// state has settled. Completing an already-completed lesson is a
// no-op: no write, no notification, no duplicate push.
func (e *Engine) CompleteLesson(ctx context.Context, lessonID string) {
	lesson, ok := e.outline.Lookup(lessonID)
	if !ok {
		return
	}

	e.mu.Lock()
	if e.closed || !e.rec.Complete(lessonID) {
		e.mu.Unlock()
		return
	}
	e.cs.SaveProgress(ctx, e.rec)
	e.mu.Unlock()

	e.emit(Event{
		Kind:     EventLessonCompleted,
		Message:  fmt.Sprintf("Lesson %q completed", lesson.Title),
		LessonID: lessonID,
		Window:   e.cfg.BannerWindow,
	})

	e.schedulePush(false)
}

// MarkFileOpened completes a file lesson the moment the learner opens
// or downloads it.
func (e *Engine) MarkFileOpened(ctx context.Context, lessonID string) {
	e.CompleteLesson(ctx, lessonID)
}

// MarkTextRead completes a text lesson after the configured dwell
// delay following an explicit mark-as-read action.
func (e *Engine) MarkTextRead(lessonID string) {
	time.AfterFunc(e.cfg.TextDwell, func() {
		if !e.alive() {
			return
		}
		e.CompleteLesson(context.Background(), lessonID)
	})
}

// schedulePush waits for the settle delay, recomputes overall
// progress, and pushes it to the backend. withAssignments selects the
// assignment-aware completion predicate used after a submission. The
// push never mutates local state; failures are classified and logged.
func (e *Engine) schedulePush(withAssignments bool) {
	time.AfterFunc(e.cfg.SettleDelay, func() {
		if !e.alive() {
			return
		}
		e.pushProgress(context.Background(), withAssignments)
	})
}

// PushProgress recomputes overall progress and pushes it immediately,
// bypassing the settle delay. Used by explicit refresh actions.
func (e *Engine) PushProgress(ctx context.Context) {
	e.pushProgress(ctx, false)
}

func (e *Engine) pushProgress(ctx context.Context, withAssignments bool) {
	e.mu.Lock()
	var pct int
	if withAssignments {
		pct = progress.OverallWithAssignments(e.outline, e.rec, e.wf.Submitted())
	} else {
		pct = progress.OverallProgress(e.outline, e.rec)
	}
	e.mu.Unlock()

	if err := e.api.UpdateEnrollmentProgress(ctx, e.enrollID, pct); err != nil {
		e.log.Warn("push enrollment progress",
			zap.Int("percent", pct), zap.Error(err))
		return
	}

	if pct == 100 {
		e.issueCertificate(ctx)
	}
}

// issueCertificate requests the completion certificate exactly once
// per session.
func (e *Engine) issueCertificate(ctx context.Context) {
	e.mu.Lock()
	if e.certIssued {
		e.mu.Unlock()
		return
	}
	e.certIssued = true
	e.mu.Unlock()

	cert, err := e.api.GenerateCertificate(ctx, e.enrollID)
	if err != nil {
		e.log.Warn("generate certificate", zap.Error(err))
		e.mu.Lock()
		e.certIssued = false
		e.mu.Unlock()
		return
	}
	e.emit(Event{
		Kind:    EventCertificateIssued,
		Message: fmt.Sprintf("Certificate issued: %s", cert.URL),
		Window:  e.cfg.BannerWindow,
	})
}
