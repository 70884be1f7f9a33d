package sync

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/abhisek/courseflow/internal/course"
)

// RetryConfig controls the backoff applied to idempotent calls.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns the standard backoff settings.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
	}
}

// RetryAPI is a decorator that retries connectivity failures of
// idempotent calls with exponential backoff and jitter. Submissions
// and certificate generation pass straight through: retrying a
// non-idempotent write risks duplicates, and the user can retry those
// explicitly.
type RetryAPI struct {
	inner  API
	config RetryConfig
}

// WithRetry wraps an API with retry logic.
func WithRetry(api API, cfg RetryConfig) API {
	return &RetryAPI{inner: api, config: cfg}
}

func (r *RetryAPI) FetchEnrollment(ctx context.Context, enrollmentID string) (*course.Enrollment, error) {
	var enr *course.Enrollment
	err := r.retry(ctx, func() error {
		var err error
		enr, err = r.inner.FetchEnrollment(ctx, enrollmentID)
		return err
	})
	return enr, err
}

func (r *RetryAPI) SubmitAssignment(ctx context.Context, p SubmitPayload) (*SubmitResult, error) {
	return r.inner.SubmitAssignment(ctx, p)
}

func (r *RetryAPI) ResubmitAssignment(ctx context.Context, submissionID string, p SubmitPayload) (*SubmitResult, error) {
	return r.inner.ResubmitAssignment(ctx, submissionID, p)
}

func (r *RetryAPI) SubmissionByID(ctx context.Context, submissionID string) (*RemoteSubmission, error) {
	return r.inner.SubmissionByID(ctx, submissionID)
}

func (r *RetryAPI) UpdateEnrollmentProgress(ctx context.Context, enrollmentID string, percent int) error {
	return r.retry(ctx, func() error {
		return r.inner.UpdateEnrollmentProgress(ctx, enrollmentID, percent)
	})
}

func (r *RetryAPI) GenerateCertificate(ctx context.Context, enrollmentID string) (*Certificate, error) {
	return r.inner.GenerateCertificate(ctx, enrollmentID)
}

func (r *RetryAPI) retry(ctx context.Context, call func() error) error {
	var lastErr error
	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		err := call()
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return err
		}
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}
	return lastErr
}

// shouldRetry limits retries to connectivity failures. Auth, not-found
// and duplicate errors will not heal on their own.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Category == CategoryConnectivity
	}
	return false
}

// backoff computes the wait duration for the given attempt.
func (r *RetryAPI) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
