// Package sync is the remote adapter for the enrollment backend. It
// isolates every network concern: the REST client, the retry policy
// for idempotent calls, and the classification of failures into the
// engine's bounded error taxonomy.
package sync

import (
	"context"
	"time"

	"github.com/abhisek/courseflow/internal/course"
)

// SubmitPayload is the body sent for both submit and resubmit.
// RequestID is generated client-side so the backend can reject a
// duplicate of the same submission attempt.
type SubmitPayload struct {
	AssignmentID string `json:"assignmentId"`
	StudentID    string `json:"studentId"`
	Description  string `json:"description"`
	GithubLink   string `json:"githubLink"`
	LiveLink     string `json:"liveLink"`
	RequestID    string `json:"requestId"`
}

// SubmitResult is the backend's acknowledgement of a submission.
type SubmitResult struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
	Status      string    `json:"status"`
}

// RemoteSubmission is the backend's full view of a submission,
// including review results when present.
type RemoteSubmission struct {
	ID           string     `json:"id"`
	AssignmentID string     `json:"assignmentId"`
	Status       string     `json:"status"`
	Marks        *int       `json:"marks"`
	Feedback     string     `json:"feedback"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	ReviewedAt   *time.Time `json:"reviewedAt"`
}

// Certificate is the record returned once a course is fully complete.
type Certificate struct {
	ID       string    `json:"id"`
	URL      string    `json:"url"`
	IssuedAt time.Time `json:"issuedAt"`
}

// API is the engine's view of the backend. Implementations must keep
// the contracts noted per method; the engine treats every call as
// best-effort and never lets a failure roll back local state.
type API interface {
	// FetchEnrollment loads the outline and the backend's progress view.
	FetchEnrollment(ctx context.Context, enrollmentID string) (*course.Enrollment, error)

	// SubmitAssignment creates a new submission.
	SubmitAssignment(ctx context.Context, p SubmitPayload) (*SubmitResult, error)

	// ResubmitAssignment replaces the work of an existing submission
	// and restarts review.
	ResubmitAssignment(ctx context.Context, submissionID string, p SubmitPayload) (*SubmitResult, error)

	// SubmissionByID returns the backend's view of a submission, or
	// nil on any fetch error. It never returns a non-nil error.
	SubmissionByID(ctx context.Context, submissionID string) (*RemoteSubmission, error)

	// UpdateEnrollmentProgress pushes the computed overall percentage.
	UpdateEnrollmentProgress(ctx context.Context, enrollmentID string, percent int) error

	// GenerateCertificate asks the backend to issue the completion
	// certificate. Callers invoke it only at 100 percent progress.
	GenerateCertificate(ctx context.Context, enrollmentID string) (*Certificate, error)
}
