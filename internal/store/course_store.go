package store

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/abhisek/courseflow/internal/progress"
)

// CourseStore scopes a Repository to one (userID, courseID) pair and
// gives it the engine's persistence semantics: saves are silent no-ops
// when identity is missing, and every failure is logged and swallowed.
// Loads return typed defaults on missing keys or parse failures, never
// an error.
type CourseStore struct {
	repo     Repository
	userID   string
	courseID string
	log      *zap.Logger
}

// NewCourseStore returns a CourseStore for the given identity. A nil
// logger is replaced with a no-op one.
func NewCourseStore(repo Repository, userID, courseID string, log *zap.Logger) *CourseStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &CourseStore{repo: repo, userID: userID, courseID: courseID, log: log}
}

// hasIdentity reports whether both scope keys are present. Without
// them every save is a silent no-op so anonymous sessions never bleed
// state into a shared key.
func (s *CourseStore) hasIdentity() bool {
	return s.userID != "" && s.courseID != ""
}

// Save marshals v into the given namespace. Persistence failures are
// logged and never surfaced.
func (s *CourseStore) Save(ctx context.Context, ns Namespace, v any) {
	if !s.hasIdentity() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("marshal record", zap.String("namespace", string(ns)), zap.Error(err))
		return
	}
	if err := s.repo.Set(ctx, s.userID, s.courseID, string(ns), data); err != nil {
		s.log.Warn("persist record", zap.String("namespace", string(ns)), zap.Error(err))
	}
}

// Load unmarshals the namespace document into out. It reports whether
// out was populated; on a missing key, read failure, or parse failure
// out is left untouched and false is returned.
func (s *CourseStore) Load(ctx context.Context, ns Namespace, out any) bool {
	if !s.hasIdentity() {
		return false
	}
	data, err := s.repo.Get(ctx, s.userID, s.courseID, string(ns))
	if err != nil {
		s.log.Warn("load record", zap.String("namespace", string(ns)), zap.Error(err))
		return false
	}
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.log.Warn("parse record", zap.String("namespace", string(ns)), zap.Error(err))
		return false
	}
	return true
}

// SavePosition persists the current position.
func (s *CourseStore) SavePosition(ctx context.Context, p progress.Position) {
	s.Save(ctx, NamespacePosition, p)
}

// LoadPosition returns the persisted position, or the zero position
// (module 0, lesson 0) when none is stored.
func (s *CourseStore) LoadPosition(ctx context.Context) progress.Position {
	var p progress.Position
	if !s.Load(ctx, NamespacePosition, &p) {
		return progress.Position{}
	}
	return p
}

// SaveProgress persists playback times and the completed-lesson set.
func (s *CourseStore) SaveProgress(ctx context.Context, r *progress.Record) {
	s.Save(ctx, NamespaceProgress, r)
}

// LoadProgress returns the persisted progress record, or an empty one.
func (s *CourseStore) LoadProgress(ctx context.Context) *progress.Record {
	r := progress.NewRecord()
	if !s.Load(ctx, NamespaceProgress, r) {
		return progress.NewRecord()
	}
	if r.PerLesson == nil {
		r.PerLesson = make(map[string]progress.Playback)
	}
	if r.Completed == nil {
		r.Completed = make(map[string]bool)
	}
	return r
}

// SaveSubmitted persists the submitted-assignment id set.
func (s *CourseStore) SaveSubmitted(ctx context.Context, ids map[string]bool) {
	s.Save(ctx, NamespaceSubmitted, ids)
}

// LoadSubmitted returns the persisted submitted set, or an empty one.
func (s *CourseStore) LoadSubmitted(ctx context.Context) map[string]bool {
	ids := make(map[string]bool)
	if !s.Load(ctx, NamespaceSubmitted, &ids) {
		return make(map[string]bool)
	}
	return ids
}

// Clear removes every namespace for this (user, course) scope. This is
// the destructive reset behind the explicit clear-progress action.
func (s *CourseStore) Clear(ctx context.Context) {
	if !s.hasIdentity() {
		return
	}
	for _, ns := range []Namespace{NamespacePosition, NamespaceProgress, NamespaceDrafts, NamespaceSubmitted} {
		if err := s.repo.Delete(ctx, s.userID, s.courseID, string(ns)); err != nil {
			s.log.Warn("clear record", zap.String("namespace", string(ns)), zap.Error(err))
		}
	}
}
