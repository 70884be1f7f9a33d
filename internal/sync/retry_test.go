package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/courseflow/internal/course"
)

// fakeAPI counts calls and fails a configurable number of times.
type fakeAPI struct {
	failures  int
	failWith  error
	pushCalls int
	subCalls  int
}

func (f *fakeAPI) FetchEnrollment(context.Context, string) (*course.Enrollment, error) {
	return &course.Enrollment{}, nil
}

func (f *fakeAPI) SubmitAssignment(context.Context, SubmitPayload) (*SubmitResult, error) {
	f.subCalls++
	if f.failures > 0 {
		f.failures--
		return nil, f.failWith
	}
	return &SubmitResult{ID: "s1", Status: "pending"}, nil
}

func (f *fakeAPI) ResubmitAssignment(context.Context, string, SubmitPayload) (*SubmitResult, error) {
	return &SubmitResult{ID: "s1", Status: "pending"}, nil
}

func (f *fakeAPI) SubmissionByID(context.Context, string) (*RemoteSubmission, error) {
	return nil, nil
}

func (f *fakeAPI) UpdateEnrollmentProgress(context.Context, string, int) error {
	f.pushCalls++
	if f.failures > 0 {
		f.failures--
		return f.failWith
	}
	return nil
}

func (f *fakeAPI) GenerateCertificate(context.Context, string) (*Certificate, error) {
	return &Certificate{ID: "cert"}, nil
}

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 2 * time.Millisecond, Multiplier: 1.0}
}

func TestRetryProgressPushOnConnectivity(t *testing.T) {
	fake := &fakeAPI{
		failures: 2,
		failWith: &Error{Category: CategoryConnectivity, Err: errors.New("connection refused")},
	}
	api := WithRetry(fake, fastRetry())

	if err := api.UpdateEnrollmentProgress(context.Background(), "e1", 50); err != nil {
		t.Fatalf("UpdateEnrollmentProgress() error after retries: %v", err)
	}
	if fake.pushCalls != 3 {
		t.Errorf("push attempted %d times, want 3", fake.pushCalls)
	}
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	fake := &fakeAPI{
		failures: 10,
		failWith: &Error{Category: CategoryConnectivity, Err: errors.New("timeout")},
	}
	api := WithRetry(fake, fastRetry())

	err := api.UpdateEnrollmentProgress(context.Background(), "e1", 50)
	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if fake.pushCalls != 3 {
		t.Errorf("push attempted %d times, want 3", fake.pushCalls)
	}
}

func TestNoRetryOnNonConnectivity(t *testing.T) {
	fake := &fakeAPI{
		failures: 10,
		failWith: &Error{Category: CategorySessionExpired, Err: errors.New("401")},
	}
	api := WithRetry(fake, fastRetry())

	if err := api.UpdateEnrollmentProgress(context.Background(), "e1", 50); err == nil {
		t.Fatal("expected the auth error to surface")
	}
	if fake.pushCalls != 1 {
		t.Errorf("push attempted %d times, want 1 (no retry)", fake.pushCalls)
	}
}

func TestSubmitNeverRetried(t *testing.T) {
	fake := &fakeAPI{
		failures: 1,
		failWith: &Error{Category: CategoryConnectivity, Err: errors.New("connection reset")},
	}
	api := WithRetry(fake, fastRetry())

	if _, err := api.SubmitAssignment(context.Background(), SubmitPayload{}); err == nil {
		t.Fatal("expected the submit failure to surface")
	}
	if fake.subCalls != 1 {
		t.Errorf("submit attempted %d times, want 1: retrying risks duplicates", fake.subCalls)
	}
}

func TestRetryRespectsContext(t *testing.T) {
	fake := &fakeAPI{
		failures: 10,
		failWith: &Error{Category: CategoryConnectivity, Err: errors.New("timeout")},
	}
	api := WithRetry(fake, RetryConfig{MaxAttempts: 5, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1.0})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := api.UpdateEnrollmentProgress(ctx, "e1", 50)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
