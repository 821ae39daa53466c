package bigquery

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProjectID is returned by NewClient when no project is
	// configured by argument, option, or environment.
	ErrNoProjectID = errors.New("bigquery: no project ID provided")

	// ErrNoQuery is returned by Query when the options name neither a
	// query string nor a job to read results from.
	ErrNoQuery = errors.New("bigquery: query requires a query string or a job reference")
)

// JobError reports that a job reached a terminal state with failures in
// its status payload. The transport exchange itself succeeded.
type JobError struct {
	// JobID identifies the failed job.
	JobID string

	// Errors holds the structured errors from the job's status.
	Errors []ErrorProto
}

// Error implements the error interface.
func (e *JobError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("bigquery: job %s failed", e.JobID)
	}
	first := e.Errors[0]
	msg := first.Message
	if msg == "" {
		msg = first.Reason
	}
	if len(e.Errors) > 1 {
		return fmt.Sprintf("bigquery: job %s failed: %s (and %d more errors)", e.JobID, msg, len(e.Errors)-1)
	}
	return fmt.Sprintf("bigquery: job %s failed: %s", e.JobID, msg)
}
