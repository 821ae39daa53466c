package bigquery

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"sync"

	"github.com/kris48k/gcloud-node/common"
	"github.com/kris48k/gcloud-node/event"
)

// State is the lifecycle state reported in a job's status.
type State string

const (
	// StatePending means the job is queued but not yet running.
	StatePending State = "PENDING"
	// StateRunning means the job is executing.
	StateRunning State = "RUNNING"
	// StateDone means the job reached a terminal state. A DONE job may
	// still have failed; check Status.Errors.
	StateDone State = "DONE"
)

// ErrorProto is a structured error within a job's status payload.
type ErrorProto struct {
	Reason   string `json:"reason,omitempty"`
	Location string `json:"location,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Status describes where a job is in its lifecycle. Errors is populated
// only when the job has failed.
type Status struct {
	State       State        `json:"state,omitempty"`
	ErrorResult *ErrorProto  `json:"errorResult,omitempty"`
	Errors      []ErrorProto `json:"errors,omitempty"`
}

// JobReference identifies a job within a project.
type JobReference struct {
	ProjectID string `json:"projectId,omitempty"`
	JobID     string `json:"jobId,omitempty"`
}

// Metadata is the server's description of a job. Configuration and
// Statistics are passed through undecoded; the handle only interprets
// Status.
type Metadata struct {
	Kind          string          `json:"kind,omitempty"`
	ID            string          `json:"id,omitempty"`
	SelfLink      string          `json:"selfLink,omitempty"`
	JobReference  *JobReference   `json:"jobReference,omitempty"`
	Status        *Status         `json:"status,omitempty"`
	Configuration json.RawMessage `json:"configuration,omitempty"`
	Statistics    json.RawMessage `json:"statistics,omitempty"`
}

// cancelPathPattern matches a job-cancellation path: the "projects"
// segment must immediately follow the API version segment.
var cancelPathPattern = regexp.MustCompile(`^(/[^/]+/v[^/]+)/projects(/.+/cancel)$`)

// rewriteCancelPath rewrites the "projects" path segment to its singular
// form on jobs.cancel requests. The cancel endpoint accepts only the
// singular segment; every other request passes through untouched.
func rewriteCancelPath(ctx context.Context, req *common.Request, next common.Handler) (*common.APIResponse, error) {
	if m := cancelPathPattern.FindStringSubmatch(req.Path); m != nil {
		req.Path = m[1] + "/project" + m[2]
	}
	return next(ctx, req)
}

// Job is a client-side handle for a server-side asynchronous job.
//
// Subscribing to completion notifications via OnComplete starts a status
// poll loop on the first subscription. The loop re-fetches job metadata
// until a terminal state is observed, then notifies subscribers: complete
// observers receive the full metadata on success, error observers receive
// the transport error or a *JobError constructed from the job's status.
// The loop stops on terminal states, and winds down without a further
// fetch once no completion subscribers remain.
type Job struct {
	// ID is the server-assigned job identifier.
	ID string

	client   *Client
	pipeline *common.Pipeline
	logger   *slog.Logger

	complete *event.Registry[*Metadata]
	errs     *event.Registry[error]

	mu      sync.Mutex
	polling bool
	attempt int
}

// Job returns a handle for the job with the given ID. The handle's
// cancel-path rewrite is registered on its request pipeline once, here.
func (c *Client) Job(jobID string) *Job {
	j := &Job{
		ID:       jobID,
		client:   c,
		pipeline: c.pipeline.With(rewriteCancelPath),
		logger:   c.logger.With(slog.String("job_id", jobID)),
	}
	j.complete = event.New(
		event.WithFirstHook[*Metadata](j.startPolling),
		event.WithLastHook[*Metadata](func() {
			j.logger.Debug("last completion subscriber detached; polling will wind down")
		}),
	)
	j.errs = event.New[error]()
	return j
}

// path returns the job's resource path.
func (j *Job) path() string {
	return j.client.projectPath() + "/jobs/" + j.ID
}

// ──────────────────────────────────────────────────
// Listener accounting
// ──────────────────────────────────────────────────

// OnComplete subscribes fn to the job's terminal success notification.
// The first completion subscriber starts the status poll loop; fn is
// invoked with the full job metadata once the job reports DONE without
// errors. The returned cancel func detaches the subscriber and is
// idempotent.
func (j *Job) OnComplete(fn func(*Metadata)) (cancel func()) {
	return j.complete.Subscribe(fn)
}

// OnError subscribes fn to the job's failure notification. fn receives
// the transport error verbatim, or a *JobError when the job itself
// reported failure. Error subscribers do not start the poll loop.
func (j *Job) OnError(fn func(error)) (cancel func()) {
	return j.errs.Subscribe(fn)
}

// CompleteListenerCount returns the number of completion subscribers.
func (j *Job) CompleteListenerCount() int {
	return j.complete.Len()
}

// HasActiveListeners reports whether any completion subscriber is attached.
func (j *Job) HasActiveListeners() bool {
	return j.complete.Active()
}

// ──────────────────────────────────────────────────
// Poll loop controller
// ──────────────────────────────────────────────────

// startPolling begins the status poll loop. It runs on the 0→1 listener
// transition; a loop already in flight (including one waiting on its
// reschedule timer) is never doubled.
func (j *Job) startPolling() {
	j.mu.Lock()
	if j.polling {
		j.mu.Unlock()
		return
	}
	j.polling = true
	j.attempt = 0
	j.mu.Unlock()

	j.poll()
}

// poll performs one fetch-and-classify step. Terminal outcomes notify
// observers and end the loop; a non-terminal state reschedules poll
// after the configured delay.
func (j *Job) poll() {
	if !j.HasActiveListeners() {
		j.stopPolling()
		return
	}

	md, _, err := j.Metadata(context.Background())
	if err != nil {
		j.stopPolling()
		j.errs.Notify(err)
		return
	}

	if md.Status != nil && len(md.Status.Errors) > 0 {
		j.stopPolling()
		j.errs.Notify(&JobError{JobID: j.ID, Errors: md.Status.Errors})
		return
	}

	if md.Status == nil || md.Status.State != StateDone {
		j.mu.Lock()
		j.attempt++
		delay := j.client.poll.Delay(j.attempt)
		j.mu.Unlock()

		j.client.scheduler.AfterFunc(delay, j.poll)
		return
	}

	j.stopPolling()
	j.complete.Notify(md)
}

func (j *Job) stopPolling() {
	j.mu.Lock()
	j.polling = false
	j.mu.Unlock()
}

// ──────────────────────────────────────────────────
// Operations
// ──────────────────────────────────────────────────

// Metadata fetches the job's current metadata.
func (j *Job) Metadata(ctx context.Context) (*Metadata, *common.APIResponse, error) {
	resp, err := j.pipeline.Do(ctx, &common.Request{
		Method: http.MethodGet,
		Path:   j.path(),
	})
	if err != nil {
		return nil, resp, err
	}

	var md Metadata
	if err := resp.Decode(&md); err != nil {
		return nil, resp, err
	}
	return &md, resp, nil
}

// Cancel requests cancellation of the job. It returns the raw API
// response and the transport error only; the response body carries no
// information callers need, so it is discarded. Callers uninterested in
// the outcome may ignore both returns.
func (j *Job) Cancel(ctx context.Context) (*common.APIResponse, error) {
	return j.pipeline.Do(ctx, &common.Request{
		Method: http.MethodPost,
		Path:   j.path() + "/cancel",
	})
}

// QueryResults reads the job's query results by delegating to the parent
// client's Query operation. A nil opts is normalized to reference this
// job; opts provided by the caller are forwarded as-is.
func (j *Job) QueryResults(ctx context.Context, opts *QueryOptions) (*QueryResults, error) {
	if opts == nil {
		opts = &QueryOptions{Job: j}
	}
	return j.client.Query(ctx, opts)
}
