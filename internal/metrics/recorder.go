// Package metrics records build observability data behind a small Recorder
// interface. The default NoopRecorder keeps single-shot builds free of any
// metrics machinery; watch mode swaps in the Prometheus implementation when a
// metrics port is configured.
package metrics

import "time"

// Recorder receives build outcomes. Implementations must be safe for use
// from the single rebuild worker goroutine plus the HTTP scrape path.
type Recorder interface {
	// RecordBuild counts a finished build pass by outcome ("success" or
	// "failure") and observes its duration.
	RecordBuild(outcome string, d time.Duration)

	// RecordPublished sets the article count of the latest completed build.
	RecordPublished(n int)

	// RecordWarnings counts warnings emitted by a build pass.
	RecordWarnings(n int)
}

// NoopRecorder is the default Recorder; every method inlines to nothing.
type NoopRecorder struct{}

func (NoopRecorder) RecordBuild(string, time.Duration) {}
func (NoopRecorder) RecordPublished(int)               {}
func (NoopRecorder) RecordWarnings(int)                {}
