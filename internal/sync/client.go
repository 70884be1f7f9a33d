package sync

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/abhisek/courseflow/internal/course"
)

// Client talks to the enrollment backend over REST.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

// NewClient builds a Client for the given base URL. The bearer token
// identifies the authenticated learner; a nil logger is replaced with
// a no-op one.
func NewClient(baseURL, token string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Client{http: c, log: log}
}

func (c *Client) FetchEnrollment(ctx context.Context, enrollmentID string) (*course.Enrollment, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/enrollments/" + enrollmentID)
	if err := c.check(resp, err, "fetch enrollment"); err != nil {
		return nil, err
	}
	enr, err := course.DecodeEnrollment(resp.Body())
	if err != nil {
		return nil, Classify(err)
	}
	return enr, nil
}

func (c *Client) SubmitAssignment(ctx context.Context, p SubmitPayload) (*SubmitResult, error) {
	var out SubmitResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(p).
		SetResult(&out).
		Post("/submissions")
	if err := c.check(resp, err, "submit assignment"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResubmitAssignment(ctx context.Context, submissionID string, p SubmitPayload) (*SubmitResult, error) {
	var out SubmitResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(p).
		SetResult(&out).
		Put("/submissions/" + submissionID + "/resubmit")
	if err := c.check(resp, err, "resubmit assignment"); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmissionByID swallows every failure and returns nil instead, so a
// background refresh can never surface an error to the caller.
func (c *Client) SubmissionByID(ctx context.Context, submissionID string) (*RemoteSubmission, error) {
	var out RemoteSubmission
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/submissions/" + submissionID)
	if err := c.check(resp, err, "fetch submission"); err != nil {
		c.log.Warn("fetch submission", zap.String("id", submissionID), zap.Error(err))
		return nil, nil
	}
	return &out, nil
}

func (c *Client) UpdateEnrollmentProgress(ctx context.Context, enrollmentID string, percent int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]int{"progress": percent}).
		Patch("/enrollments/" + enrollmentID + "/progress")
	return c.check(resp, err, "update progress")
}

func (c *Client) GenerateCertificate(ctx context.Context, enrollmentID string) (*Certificate, error) {
	var out Certificate
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Post("/enrollments/" + enrollmentID + "/certificate")
	if err := c.check(resp, err, "generate certificate"); err != nil {
		return nil, err
	}
	return &out, nil
}

// check folds the transport error and the HTTP status into a single
// classified error. Status codes with a dedicated category are mapped
// directly; everything else goes through substring classification.
func (c *Client) check(resp *resty.Response, err error, op string) error {
	if err != nil {
		return Classify(fmt.Errorf("%s: %w", op, err))
	}
	if resp.IsSuccess() {
		return nil
	}
	base := fmt.Errorf("%s: status %d: %s", op, resp.StatusCode(), resp.String())
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return &Error{Category: CategorySessionExpired, Err: base}
	case http.StatusNotFound:
		return &Error{Category: CategoryNotFound, Err: base}
	case http.StatusConflict:
		return &Error{Category: CategoryDuplicate, Err: base}
	default:
		return Classify(base)
	}
}
