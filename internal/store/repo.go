package store

import "context"

// Namespace names one of the four independently saved sub-documents.
type Namespace string

const (
	// NamespacePosition holds the current (module, lesson) position.
	NamespacePosition Namespace = "position"

	// NamespaceProgress holds playback times and the completed-lesson set.
	NamespaceProgress Namespace = "progress"

	// NamespaceDrafts holds assignment submission drafts and records.
	NamespaceDrafts Namespace = "drafts"

	// NamespaceSubmitted holds the submitted-assignment id set.
	NamespaceSubmitted Namespace = "submitted"
)

// Repository is durable key-value persistence scoped by user and
// course. Implementations exist for SQLite (production) and memory
// (tests); progress logic never touches a concrete backend directly.
type Repository interface {
	// Get returns the stored document, or (nil, nil) when no record
	// exists for the key.
	Get(ctx context.Context, userID, courseID, namespace string) ([]byte, error)

	// Set stores the document, replacing any previous value.
	Set(ctx context.Context, userID, courseID, namespace string, data []byte) error

	// Delete removes the record if present.
	Delete(ctx context.Context, userID, courseID, namespace string) error
}
