package engine

import "time"

// EventKind discriminates engine notifications.
type EventKind int

const (
	// EventLessonCompleted announces a lesson joining the completed set.
	EventLessonCompleted EventKind = iota

	// EventSubmissionAccepted announces a successful submit or resubmit.
	EventSubmissionAccepted

	// EventErrorBanner carries a user-facing failure message.
	EventErrorBanner

	// EventCertificateIssued announces the completion certificate.
	EventCertificateIssued
)

// Event is a notification the UI layer decides how to render. Window
// is how long a banner should stay visible before auto-clearing.
type Event struct {
	Kind         EventKind
	Message      string
	LessonID     string
	AssignmentID string
	Window       time.Duration
}

// Events exposes the engine's notification channel. The channel is
// buffered; when the buffer is full events are dropped rather than
// blocking the engine.
func (e *Engine) Events() <-chan Event {
	return e.events
}

func (e *Engine) emit(ev Event) {
	select {
	case e.events <- ev:
	default:
	}
}
