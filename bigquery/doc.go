// Package bigquery provides a client for the BigQuery v2 REST API, scoped
// to asynchronous job handles and query execution.
//
// A Job is a client-side handle for a server-side asynchronous operation.
// Callers subscribe to its terminal notifications; the handle lazily starts
// a status poll loop when the first completion subscriber attaches and lets
// it wind down once no subscribers remain or a terminal state is observed.
//
// # Quick Start
//
//	c, err := bigquery.NewClient("my-project")
//	job := c.Job("job_01h2xcejqtf2nbrexx3vqjhp41")
//
//	done := make(chan struct{})
//	job.OnComplete(func(md *bigquery.Metadata) {
//	    fmt.Println("state:", md.Status.State)
//	    close(done)
//	})
//	<-done
package bigquery
