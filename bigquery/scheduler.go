package bigquery

import "time"

// Scheduler defers a func for later execution. The poll loop reschedules
// itself through this abstraction so tests can drive it deterministically.
type Scheduler interface {
	// AfterFunc runs fn after d elapses and returns a cancel func.
	// Cancellation is advisory: a fn already running is not interrupted.
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler is the default Scheduler, backed by time.AfterFunc.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
