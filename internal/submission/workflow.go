package submission

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/courseflow/internal/store"
	syncx "github.com/abhisek/courseflow/internal/sync"
)

// persisted is the drafts-namespace document: work in progress plus
// the locally owned submission records.
type persisted struct {
	Drafts  map[string]Draft   `json:"drafts"`
	Records map[string]*Record `json:"records"`
}

// Workflow owns submission state for one learner and course. All
// mutations are applied optimistically and persisted synchronously;
// network failures set a per-assignment error slot and never touch
// the draft, so other assignments remain submittable.
//
// Every exported method serializes on one mutex, so the engine's
// delayed push callbacks can read submission state while the caller
// goroutine is mid-submit. Internal helpers assume the lock is held.
type Workflow struct {
	mu sync.Mutex

	store     *store.CourseStore
	api       syncx.API
	validate  *validator.Validate
	studentID string
	log       *zap.Logger

	drafts    map[string]Draft
	records   map[string]*Record
	submitted map[string]bool

	// pending and errs are per-assignment UI slots, not persisted.
	pending map[string]bool
	errs    map[string]string
}

// NewWorkflow hydrates submission state from the store.
func NewWorkflow(ctx context.Context, cs *store.CourseStore, api syncx.API, studentID string, log *zap.Logger) *Workflow {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Workflow{
		store:     cs,
		api:       api,
		validate:  validator.New(),
		studentID: studentID,
		log:       log,
		drafts:    make(map[string]Draft),
		records:   make(map[string]*Record),
		submitted: cs.LoadSubmitted(ctx),
		pending:   make(map[string]bool),
		errs:      make(map[string]string),
	}
	var p persisted
	if cs.Load(ctx, store.NamespaceDrafts, &p) {
		if p.Drafts != nil {
			w.drafts = p.Drafts
		}
		if p.Records != nil {
			w.records = p.Records
		}
	}
	return w
}

// SetDraft stores and persists the learner's work for an assignment.
func (w *Workflow) SetDraft(ctx context.Context, assignmentID string, d Draft) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.drafts[assignmentID] = d
	w.persist(ctx)
}

// Draft returns the stored draft for an assignment.
func (w *Workflow) Draft(assignmentID string) (Draft, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	d, ok := w.drafts[assignmentID]
	return d, ok
}

// Record returns the submission record for an assignment, if any.
func (w *Workflow) Record(assignmentID string) (*Record, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, ok := w.records[assignmentID]
	return r, ok
}

// Submitted returns a copy of the submitted-assignment id set, safe to
// read from any goroutine.
func (w *Workflow) Submitted() map[string]bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]bool, len(w.submitted))
	for id := range w.submitted {
		out[id] = true
	}
	return out
}

// Pending reports whether a submission for this assignment is in
// flight.
func (w *Workflow) Pending(assignmentID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending[assignmentID]
}

// Err returns the last error message recorded for this assignment, or
// "" when its last operation succeeded.
func (w *Workflow) Err(assignmentID string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errs[assignmentID]
}

// Submit validates the draft for assignmentID and sends it to the
// backend. Precondition failures return a *ValidationError before any
// network call. On success the assignment joins the submitted set and
// the merged record is returned.
func (w *Workflow) Submit(ctx context.Context, assignmentID string) (*Record, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.studentID == "" {
		return nil, w.fail(assignmentID, errNotSignedIn)
	}
	draft, ok := w.drafts[assignmentID]
	if !ok {
		return nil, w.fail(assignmentID, errNoDraft)
	}
	if verr := validateDraft(w.validate, draft); verr != nil {
		return nil, w.fail(assignmentID, verr)
	}

	w.pending[assignmentID] = true
	defer delete(w.pending, assignmentID)

	res, err := w.api.SubmitAssignment(ctx, w.payload(assignmentID, draft))
	if err != nil {
		se := syncx.Classify(err)
		w.errs[assignmentID] = se.Category.UserMessage()
		return nil, se
	}

	rec := &Record{
		AssignmentID: assignmentID,
		Description:  draft.Description,
		GithubLink:   draft.GithubLink,
		LiveLink:     draft.LiveLink,
		FileURL:      draft.FileURL,
		SubmissionID: res.ID,
		Status:       ParseStatus(res.Status),
	}
	if !res.SubmittedAt.IsZero() {
		t := res.SubmittedAt
		rec.SubmittedAt = &t
	}
	w.records[assignmentID] = rec
	w.submitted[assignmentID] = true
	delete(w.errs, assignmentID)

	w.persist(ctx)
	w.store.SaveSubmitted(ctx, w.submitted)

	return rec, nil
}

// Resubmit replaces the work of an existing submission. The new draft
// goes through the same precondition order as a first submission; on
// success the record's status resets to pending and any prior review
// result (marks, feedback, review time) is cleared. Review always
// restarts from zero.
func (w *Workflow) Resubmit(ctx context.Context, submissionID string, newData Draft) (*Record, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.studentID == "" {
		return nil, w.fail(submissionID, errNotSignedIn)
	}
	rec, assignmentID := w.bySubmissionID(submissionID)
	if rec == nil {
		return nil, w.fail(submissionID, errNoDraft)
	}
	if verr := validateDraft(w.validate, newData); verr != nil {
		return nil, w.fail(assignmentID, verr)
	}

	w.pending[assignmentID] = true
	defer delete(w.pending, assignmentID)

	res, err := w.api.ResubmitAssignment(ctx, submissionID, w.payload(assignmentID, newData))
	if err != nil {
		se := syncx.Classify(err)
		w.errs[assignmentID] = se.Category.UserMessage()
		return nil, se
	}

	rec.Description = newData.Description
	rec.GithubLink = newData.GithubLink
	rec.LiveLink = newData.LiveLink
	rec.FileURL = newData.FileURL
	rec.Status = StatusPending
	rec.Marks = nil
	rec.Feedback = ""
	rec.ReviewedAt = nil
	if !res.SubmittedAt.IsZero() {
		t := res.SubmittedAt
		rec.SubmittedAt = &t
	}
	delete(w.errs, assignmentID)

	w.persist(ctx)
	return rec, nil
}

// Refresh pulls the backend's view of a submission and merges any
// review result into the local record. A fetch failure leaves local
// state untouched.
func (w *Workflow) Refresh(ctx context.Context, submissionID string) *Record {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, _ := w.bySubmissionID(submissionID)
	if rec == nil {
		return nil
	}
	remote, _ := w.api.SubmissionByID(ctx, submissionID)
	if remote == nil {
		return rec
	}
	rec.Status = ParseStatus(remote.Status)
	rec.Marks = remote.Marks
	rec.Feedback = remote.Feedback
	rec.ReviewedAt = remote.ReviewedAt
	if !remote.SubmittedAt.IsZero() {
		t := remote.SubmittedAt
		rec.SubmittedAt = &t
	}
	w.persist(ctx)
	return rec
}

func (w *Workflow) payload(assignmentID string, d Draft) syncx.SubmitPayload {
	return syncx.SubmitPayload{
		AssignmentID: assignmentID,
		StudentID:    w.studentID,
		Description:  d.Description,
		GithubLink:   d.GithubLink,
		LiveLink:     d.LiveLink,
		RequestID:    uuid.NewString(),
	}
}

func (w *Workflow) bySubmissionID(submissionID string) (*Record, string) {
	for id, rec := range w.records {
		if rec.SubmissionID == submissionID {
			return rec, id
		}
	}
	return nil, ""
}

func (w *Workflow) fail(assignmentID string, verr *ValidationError) error {
	w.errs[assignmentID] = verr.Message
	return verr
}

func (w *Workflow) persist(ctx context.Context) {
	w.store.Save(ctx, store.NamespaceDrafts, persisted{Drafts: w.drafts, Records: w.records})
}
