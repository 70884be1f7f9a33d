// Package engine is the controller driving a learner's progression
// through one course: hydration of persisted state, unlock and
// progress queries, navigation, lesson completion, playback tracking,
// and the submission workflow. Local state is the source of truth;
// every network push is optimistic and best-effort.
package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/courseflow/internal/config"
	"github.com/abhisek/courseflow/internal/course"
	"github.com/abhisek/courseflow/internal/progress"
	"github.com/abhisek/courseflow/internal/store"
	"github.com/abhisek/courseflow/internal/submission"
	syncx "github.com/abhisek/courseflow/internal/sync"
	"github.com/abhisek/courseflow/internal/unlock"
)

// Options configures a new Engine.
type Options struct {
	Enrollment *course.Enrollment
	UserID     string
	Repo       store.Repository
	API        syncx.API
	Config     config.Config
	Logger     *zap.Logger
}

// Engine owns the mutable session state for one (user, enrollment)
// pair. Methods are safe for the single UI goroutine plus the engine's
// own delayed callbacks.
type Engine struct {
	mu sync.Mutex

	cfg        config.Config
	outline    *course.Course
	enrollID   string
	userID     string
	api        syncx.API
	cs         *store.CourseStore
	wf         *submission.Workflow
	log        *zap.Logger
	events     chan Event
	clock      func() time.Time

	rec     *progress.Record
	pos     progress.Position
	tracker *progress.Tracker

	closed     bool
	certIssued bool
}

// New hydrates an Engine from persisted state. If the stored position
// no longer denotes an unlocked active lesson (the outline changed or
// progress was reset), it falls back to the first unlocked lesson and
// persists the correction immediately.
func New(ctx context.Context, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cs := store.NewCourseStore(opts.Repo, opts.UserID, opts.Enrollment.Course.ID, log)

	e := &Engine{
		cfg:      opts.Config,
		outline:  &opts.Enrollment.Course,
		enrollID: opts.Enrollment.ID,
		userID:   opts.UserID,
		api:      opts.API,
		cs:       cs,
		log:      log,
		events:   make(chan Event, 16),
		clock:    time.Now,
		tracker:  progress.NewTracker(),
	}
	e.rec = cs.LoadProgress(ctx)
	e.pos = cs.LoadPosition(ctx)
	e.wf = submission.NewWorkflow(ctx, cs, opts.API, opts.UserID, log)

	res := e.resolver()
	if !res.ValidPosition(e.pos) {
		if p, ok := res.FirstUnlocked(); ok {
			e.pos = p
		} else {
			e.pos = progress.Position{}
		}
		cs.SavePosition(ctx, e.pos)
	}
	return e
}

// resolver builds an unlock resolver over current state. Callers must
// hold e.mu or be inside New.
func (e *Engine) resolver() *unlock.Resolver {
	return unlock.New(e.outline, e.rec)
}

// Outline returns the immutable course outline.
func (e *Engine) Outline() *course.Course {
	return e.outline
}

// Position returns the current (module, lesson) position in storage
// indices.
func (e *Engine) Position() progress.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos
}

// IsModuleUnlocked reports whether the module at the display index is
// accessible.
func (e *Engine) IsModuleUnlocked(moduleIndex int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolver().Module(moduleIndex)
}

// IsLessonUnlocked reports whether the lesson at (module, storage
// index) is accessible.
func (e *Engine) IsLessonUnlocked(moduleIndex, lessonIndex int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolver().Lesson(moduleIndex, lessonIndex)
}

// IsAssignmentUnlocked reports whether the module's assignments are
// open for submission.
func (e *Engine) IsAssignmentUnlocked(moduleIndex int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolver().Assignment(moduleIndex)
}

// ModuleProgress returns the module's completion percentage.
func (e *Engine) ModuleProgress(moduleIndex int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if moduleIndex < 0 || moduleIndex >= len(e.outline.Modules) {
		return 0
	}
	return progress.ModuleProgress(&e.outline.Modules[moduleIndex], e.rec)
}

// OverallProgress returns the course completion percentage.
func (e *Engine) OverallProgress() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return progress.OverallProgress(e.outline, e.rec)
}

// Workflow exposes the submission workflow for draft editing and
// per-assignment status queries.
func (e *Engine) Workflow() *submission.Workflow {
	return e.wf
}

// ClearProgress wipes every persisted namespace for this course and
// resets the session to module 0, lesson 0. Destructive; only invoked
// by an explicit user action.
func (e *Engine) ClearProgress(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cs.Clear(ctx)
	e.rec = progress.NewRecord()
	e.pos = progress.Position{}
	e.tracker = progress.NewTracker()
	e.cs.SavePosition(ctx, e.pos)
}

// Close flushes pending playback state and detaches the engine from
// its delayed callbacks: anything still in flight resolves against a
// dead engine and is ignored.
func (e *Engine) Close(ctx context.Context) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()
	e.FlushPlayback(ctx)
}

func (e *Engine) alive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.closed
}
