package bigquery

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kris48k/gcloud-node/common"
)

// QueryOptions describe a query operation. Either Query (start a new
// query) or Job (read the results of an existing job) must be set.
type QueryOptions struct {
	// Job reads the results of an already-running job instead of
	// starting a new query.
	Job *Job

	// Query is the SQL text to run.
	Query string

	// MaxResults caps the number of rows per page. Zero means the
	// server default.
	MaxResults int

	// PageToken resumes a prior result page.
	PageToken string

	// TimeoutMs is how long the server should wait for the query to
	// complete before returning with jobComplete=false.
	TimeoutMs int
}

// QueryResults is a page of query results. PageToken, when non-empty,
// fetches the next page through another Query call, so calls chain on
// the returned value.
type QueryResults struct {
	Kind        string            `json:"kind,omitempty"`
	JobComplete bool              `json:"jobComplete"`
	Rows        []json.RawMessage `json:"rows,omitempty"`
	PageToken   string            `json:"pageToken,omitempty"`
	TotalRows   uint64            `json:"totalRows,string,omitempty"`
	Errors      []ErrorProto      `json:"errors,omitempty"`
}

// Query runs a query, or reads the next page of results for the job
// referenced by opts.Job.
func (c *Client) Query(ctx context.Context, opts *QueryOptions) (*QueryResults, error) {
	if opts == nil || (opts.Query == "" && opts.Job == nil) {
		return nil, ErrNoQuery
	}

	req := &common.Request{}
	if opts.Job != nil {
		req.Method = http.MethodGet
		req.Path = c.projectPath() + "/queries/" + opts.Job.ID
		if opts.MaxResults > 0 {
			req.SetParam("maxResults", strconv.Itoa(opts.MaxResults))
		}
		if opts.PageToken != "" {
			req.SetParam("pageToken", opts.PageToken)
		}
		if opts.TimeoutMs > 0 {
			req.SetParam("timeoutMs", strconv.Itoa(opts.TimeoutMs))
		}
	} else {
		req.Method = http.MethodPost
		req.Path = c.projectPath() + "/queries"
		body := map[string]any{"query": opts.Query}
		if opts.MaxResults > 0 {
			body["maxResults"] = opts.MaxResults
		}
		if opts.TimeoutMs > 0 {
			body["timeoutMs"] = opts.TimeoutMs
		}
		req.Body = body
	}

	resp, err := c.pipeline.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var results QueryResults
	if err := resp.Decode(&results); err != nil {
		return nil, err
	}
	return &results, nil
}
