package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/courseflow/internal/submission"
	syncx "github.com/abhisek/courseflow/internal/sync"
)

// SubmitAssignment runs the submission workflow for an assignment. On
// success it emits an acceptance banner and schedules the
// assignment-aware progress recompute; on failure the draft is left
// untouched and the failure is surfaced as a banner plus the
// workflow's per-assignment error slot.
func (e *Engine) SubmitAssignment(ctx context.Context, assignmentID string) (*submission.Record, error) {
	rec, err := e.wf.Submit(ctx, assignmentID)
	if err != nil {
		e.emitFailure(assignmentID, err)
		return nil, err
	}

	title := assignmentID
	if a, ok := e.outline.AssignmentByID(assignmentID); ok {
		title = a.Title
	}
	e.emit(Event{
		Kind:         EventSubmissionAccepted,
		Message:      fmt.Sprintf("Assignment %q submitted", title),
		AssignmentID: assignmentID,
		Window:       e.cfg.BannerWindow,
	})

	e.schedulePush(true)
	return rec, nil
}

// ResubmitAssignment resubmits previously rejected or pending work.
// The review result resets to pending on success.
func (e *Engine) ResubmitAssignment(ctx context.Context, submissionID string, newData submission.Draft) (*submission.Record, error) {
	rec, err := e.wf.Resubmit(ctx, submissionID, newData)
	if err != nil {
		e.emitFailure(submissionID, err)
		return nil, err
	}
	e.emit(Event{
		Kind:         EventSubmissionAccepted,
		Message:      "Assignment resubmitted for review",
		AssignmentID: rec.AssignmentID,
		Window:       e.cfg.BannerWindow,
	})
	e.schedulePush(true)
	return rec, nil
}

// RefreshSubmission merges the backend's latest review state into the
// local record. Fetch failures leave local state untouched.
func (e *Engine) RefreshSubmission(ctx context.Context, submissionID string) *submission.Record {
	return e.wf.Refresh(ctx, submissionID)
}

func (e *Engine) emitFailure(id string, err error) {
	msg := "Something went wrong. Please try again."
	var verr *submission.ValidationError
	var serr *syncx.Error
	switch {
	case errors.As(err, &verr):
		msg = verr.Message
	case errors.As(err, &serr):
		msg = serr.Category.UserMessage()
	}
	e.emit(Event{
		Kind:         EventErrorBanner,
		Message:      msg,
		AssignmentID: id,
		Window:       e.cfg.BannerWindow,
	})
}
