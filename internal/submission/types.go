// Package submission drives the assignment submission workflow: draft
// validation, the submit/resubmit state machine, and per-assignment
// pending and error tracking.
package submission

import "time"

// Status is the review state of a submission. Approved is terminal
// from the student's side; Rejected allows resubmission, and a pending
// submission may be updated in place.
type Status string

const (
	StatusUnsent   Status = "unsent"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus maps a backend status string onto the local enum,
// defaulting to pending for anything unrecognized: an acknowledged
// submission is at least awaiting review.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusUnsent, StatusPending, StatusApproved, StatusRejected:
		return Status(s)
	default:
		return StatusPending
	}
}

// Draft is the learner's work-in-progress for one assignment. The
// validate tags mirror the submission preconditions; field order
// matters, it fixes the order validation failures are reported in.
type Draft struct {
	Description string `json:"description" validate:"required,min=10"`
	GithubLink  string `json:"githubLink" validate:"required"`
	LiveLink    string `json:"liveLink" validate:"required"`
	FileURL     string `json:"fileUrl,omitempty"`
}

// Record is the locally owned submission state for one assignment,
// persisted until the backend's view supersedes it.
type Record struct {
	AssignmentID string     `json:"assignmentId"`
	Description  string     `json:"description"`
	GithubLink   string     `json:"githubLink"`
	LiveLink     string     `json:"liveLink"`
	FileURL      string     `json:"fileUrl,omitempty"`
	SubmissionID string     `json:"submissionId,omitempty"`
	Status       Status     `json:"status"`
	Marks        *int       `json:"marks,omitempty"`
	Feedback     string     `json:"feedback,omitempty"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
}
