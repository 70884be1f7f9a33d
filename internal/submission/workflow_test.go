package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/courseflow/internal/course"
	"github.com/abhisek/courseflow/internal/store"
	syncx "github.com/abhisek/courseflow/internal/sync"
)

// fakeBackend records submit/resubmit traffic.
type fakeBackend struct {
	submitCalls   int
	resubmitCalls int
	submitErr     error
	lastPayload   syncx.SubmitPayload
}

func (f *fakeBackend) FetchEnrollment(context.Context, string) (*course.Enrollment, error) {
	return nil, errors.New("not used")
}

func (f *fakeBackend) SubmitAssignment(_ context.Context, p syncx.SubmitPayload) (*syncx.SubmitResult, error) {
	f.submitCalls++
	f.lastPayload = p
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &syncx.SubmitResult{ID: "sub-" + p.AssignmentID, SubmittedAt: time.Now(), Status: "pending"}, nil
}

func (f *fakeBackend) ResubmitAssignment(_ context.Context, _ string, p syncx.SubmitPayload) (*syncx.SubmitResult, error) {
	f.resubmitCalls++
	f.lastPayload = p
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &syncx.SubmitResult{ID: "sub-" + p.AssignmentID, SubmittedAt: time.Now(), Status: "pending"}, nil
}

func (f *fakeBackend) SubmissionByID(context.Context, string) (*syncx.RemoteSubmission, error) {
	return nil, nil
}

func (f *fakeBackend) UpdateEnrollmentProgress(context.Context, string, int) error { return nil }

func (f *fakeBackend) GenerateCertificate(context.Context, string) (*syncx.Certificate, error) {
	return nil, errors.New("not used")
}

func newWorkflow(t *testing.T, backend *fakeBackend, studentID string) *Workflow {
	t.Helper()
	cs := store.NewCourseStore(store.NewMemory(), "u1", "c1", nil)
	return NewWorkflow(context.Background(), cs, backend, studentID, nil)
}

func validDraft() Draft {
	return Draft{
		Description: "My project implements the brief",
		GithubLink:  "https://github.com/u/p",
		LiveLink:    "https://p.example.com",
	}
}

func TestSubmitValidationOrder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		studentID string
		draft     *Draft
		wantMsg   string
	}{
		{
			name:    "missing auth checked first",
			draft:   &Draft{Description: "short", GithubLink: "", LiveLink: ""},
			wantMsg: "You must be logged in to submit an assignment",
		},
		{
			name:      "missing draft",
			studentID: "u1",
			wantMsg:   "Fill in the submission form before submitting",
		},
		{
			name:      "short description beats missing links",
			studentID: "u1",
			draft:     &Draft{Description: "hello", GithubLink: "", LiveLink: ""},
			wantMsg:   "Description must be at least 10 characters long",
		},
		{
			name:      "whitespace does not satisfy the minimum",
			studentID: "u1",
			draft:     &Draft{Description: "ok      \t\n", GithubLink: "https://g", LiveLink: "https://l"},
			wantMsg:   "Description must be at least 10 characters long",
		},
		{
			name:      "missing github link",
			studentID: "u1",
			draft:     &Draft{Description: "long enough text", GithubLink: "", LiveLink: "https://l"},
			wantMsg:   "GitHub link is required",
		},
		{
			name:      "missing live link",
			studentID: "u1",
			draft:     &Draft{Description: "long enough text", GithubLink: "https://g", LiveLink: ""},
			wantMsg:   "Live link is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			w := newWorkflow(t, backend, tt.studentID)
			if tt.draft != nil {
				w.SetDraft(ctx, "hw1", *tt.draft)
			}

			_, err := w.Submit(ctx, "hw1")
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Submit() error = %v, want ValidationError", err)
			}
			if verr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", verr.Message, tt.wantMsg)
			}
			if backend.submitCalls != 0 {
				t.Error("validation failure must not reach the network")
			}
			if w.Err("hw1") != tt.wantMsg {
				t.Errorf("error slot = %q, want %q", w.Err("hw1"), tt.wantMsg)
			}
		})
	}
}

func TestSubmitSuccess(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	w := newWorkflow(t, backend, "u1")
	w.SetDraft(ctx, "hw1", validDraft())

	rec, err := w.Submit(ctx, "hw1")
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if rec.SubmissionID != "sub-hw1" || rec.Status != StatusPending {
		t.Errorf("record = %+v, want submission sub-hw1 pending", rec)
	}
	if rec.SubmittedAt == nil {
		t.Error("SubmittedAt not merged from the response")
	}
	if !w.Submitted()["hw1"] {
		t.Error("hw1 missing from the submitted set")
	}
	if w.Err("hw1") != "" {
		t.Errorf("error slot = %q, want empty", w.Err("hw1"))
	}
	if backend.lastPayload.StudentID != "u1" || backend.lastPayload.RequestID == "" {
		t.Errorf("payload = %+v, want student id and request id set", backend.lastPayload)
	}
}

func TestSubmitFailureKeepsDraftAndIsolatesError(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{submitErr: &syncx.Error{
		Category: syncx.CategoryConnectivity,
		Err:      errors.New("connection refused"),
	}}
	w := newWorkflow(t, backend, "u1")
	w.SetDraft(ctx, "hw1", validDraft())
	w.SetDraft(ctx, "hw2", validDraft())

	if _, err := w.Submit(ctx, "hw1"); err == nil {
		t.Fatal("expected submit failure")
	}
	if d, ok := w.Draft("hw1"); !ok || d != validDraft() {
		t.Error("failed submit must leave the draft unmodified")
	}
	if w.Submitted()["hw1"] {
		t.Error("failed submit must not join the submitted set")
	}
	if w.Err("hw1") == "" {
		t.Error("failed submit must set the per-assignment error slot")
	}

	// The other assignment still submits.
	backend.submitErr = nil
	if _, err := w.Submit(ctx, "hw2"); err != nil {
		t.Fatalf("hw2 Submit() error: %v", err)
	}
	if w.Err("hw2") != "" {
		t.Error("hw2 inherited hw1's failure")
	}
}

func TestResubmitResetsReview(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	w := newWorkflow(t, backend, "u1")
	w.SetDraft(ctx, "hw1", validDraft())
	if _, err := w.Submit(ctx, "hw1"); err != nil {
		t.Fatal(err)
	}

	// Simulate a completed review.
	rec, _ := w.Record("hw1")
	marks := 42
	now := time.Now()
	rec.Status = StatusRejected
	rec.Marks = &marks
	rec.Feedback = "not quite"
	rec.ReviewedAt = &now

	newDraft := validDraft()
	newDraft.Description = "Second attempt with fixes applied"
	got, err := w.Resubmit(ctx, "sub-hw1", newDraft)
	if err != nil {
		t.Fatalf("Resubmit() error: %v", err)
	}

	if got.Status != StatusPending {
		t.Errorf("status = %v, want pending", got.Status)
	}
	if got.Marks != nil || got.Feedback != "" || got.ReviewedAt != nil {
		t.Errorf("review result not cleared: %+v", got)
	}
	if got.Description != newDraft.Description {
		t.Error("resubmission did not take the new draft")
	}
	if backend.resubmitCalls != 1 {
		t.Errorf("resubmit calls = %d, want 1", backend.resubmitCalls)
	}
}

func TestResubmitRequiresSignInFirst(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	w := newWorkflow(t, backend, "")

	// Even with no matching record, the sign-in check fails first,
	// matching the Submit precondition order.
	_, err := w.Resubmit(ctx, "sub-unknown", validDraft())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Resubmit() error = %v, want ValidationError", err)
	}
	if verr.Message != "You must be logged in to submit an assignment" {
		t.Errorf("message = %q, want the sign-in failure", verr.Message)
	}
	if backend.resubmitCalls != 0 {
		t.Error("unauthenticated resubmission must not reach the network")
	}
}

func TestSubmittedReturnsCopy(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t, &fakeBackend{}, "u1")
	w.SetDraft(ctx, "hw1", validDraft())
	if _, err := w.Submit(ctx, "hw1"); err != nil {
		t.Fatal(err)
	}

	got := w.Submitted()
	got["hw2"] = true
	delete(got, "hw1")

	if again := w.Submitted(); !again["hw1"] || again["hw2"] {
		t.Errorf("Submitted() = %v, want an isolated copy holding only hw1", again)
	}
}

func TestResubmitValidatesNewData(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	w := newWorkflow(t, backend, "u1")
	w.SetDraft(ctx, "hw1", validDraft())
	if _, err := w.Submit(ctx, "hw1"); err != nil {
		t.Fatal(err)
	}

	_, err := w.Resubmit(ctx, "sub-hw1", Draft{Description: "ok", GithubLink: "https://g", LiveLink: "https://l"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Resubmit() error = %v, want ValidationError", err)
	}
	if backend.resubmitCalls != 0 {
		t.Error("invalid resubmission must not reach the network")
	}
}

func TestWorkflowPersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	cs := store.NewCourseStore(mem, "u1", "c1", nil)
	backend := &fakeBackend{}

	w := NewWorkflow(ctx, cs, backend, "u1", nil)
	w.SetDraft(ctx, "hw1", validDraft())
	if _, err := w.Submit(ctx, "hw1"); err != nil {
		t.Fatal(err)
	}

	// A fresh workflow over the same repository sees the same state.
	w2 := NewWorkflow(ctx, store.NewCourseStore(mem, "u1", "c1", nil), backend, "u1", nil)
	if !w2.Submitted()["hw1"] {
		t.Error("submitted set not rehydrated")
	}
	rec, ok := w2.Record("hw1")
	if !ok || rec.SubmissionID != "sub-hw1" {
		t.Errorf("record not rehydrated: %+v", rec)
	}
	if _, ok := w2.Draft("hw1"); !ok {
		t.Error("draft not rehydrated")
	}
}
