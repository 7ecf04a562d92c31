// Package report collects the per-pass build outcome: counters, warnings and
// compliance issues. A report is created at the start of a build pass, handed
// through the pipeline stages and discarded after the summary is printed;
// nothing in here survives across builds.
package report

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Issue is a single compliance finding: a document that still references a
// disallowed external resource.
type Issue struct {
	Document  string `json:"document"`
	Reference string `json:"reference"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Document, i.Reference)
}

// BuildReport accumulates everything a build pass wants to tell the user.
// It replaces a process-global warning list so stages stay testable in
// isolation; the orchestrator owns the single instance per pass.
type BuildReport struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration

	// Commit is the content directory's git HEAD, when available.
	Commit string

	Scanned   int
	Published int
	Drafts    int
	Errors    int

	Warnings []string
	Issues   []Issue
}

// New creates an empty report for one build pass.
func New() *BuildReport {
	return &BuildReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}
}

// Warnf records a formatted warning and logs it immediately.
func (r *BuildReport) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	slog.Warn(msg)
}

// AddWarnings merges warnings produced by an isolated stage.
func (r *BuildReport) AddWarnings(warnings []string) {
	for _, w := range warnings {
		r.Warnings = append(r.Warnings, w)
		slog.Warn(w)
	}
}

// AddIssues merges compliance findings. In a normal build these are warnings
// only; validate mode turns them into a per-document fail.
func (r *BuildReport) AddIssues(issues []Issue) {
	r.Issues = append(r.Issues, issues...)
	for _, i := range issues {
		slog.Warn("External resource issue", "document", i.Document, "reference", i.Reference)
	}
}

// Finish stamps the total duration.
func (r *BuildReport) Finish() {
	r.Duration = time.Since(r.StartedAt)
}

// Log writes the end-of-build summary.
func (r *BuildReport) Log() {
	slog.Info("Build finished",
		"build_id", r.ID,
		"scanned", r.Scanned,
		"published", r.Published,
		"drafts", r.Drafts,
		"errors", r.Errors,
		"warnings", len(r.Warnings),
		"issues", len(r.Issues),
		"duration", r.Duration.Round(time.Millisecond))
	for _, w := range r.Warnings {
		slog.Warn(w)
	}
}
