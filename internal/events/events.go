// Package events publishes build lifecycle notifications. Publishing is
// optional: without a configured broker the NoopPublisher keeps the rest of
// the code free of nil checks.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/MarvStuff/Athlete-Wiki/internal/report"
)

// Publisher emits a notification after each completed build pass.
type Publisher interface {
	PublishBuildCompleted(ctx context.Context, rep *report.BuildReport) error
	Close()
}

// NoopPublisher is the default Publisher.
type NoopPublisher struct{}

func (NoopPublisher) PublishBuildCompleted(context.Context, *report.BuildReport) error { return nil }
func (NoopPublisher) Close()                                                           {}

// buildCompleted is the wire payload, a compact summary of the build report.
type buildCompleted struct {
	BuildID    string    `json:"build_id"`
	Commit     string    `json:"commit,omitempty"`
	Published  int       `json:"published"`
	Drafts     int       `json:"drafts"`
	Errors     int       `json:"errors"`
	Warnings   int       `json:"warnings"`
	Issues     int       `json:"issues"`
	DurationMS int64     `json:"duration_ms"`
	FinishedAt time.Time `json:"finished_at"`
}

// NATSPublisher publishes build summaries to a NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to the broker. Callers treat a connection error
// as a warning, not a build failure.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("athletewiki"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	slog.Info("Build event publishing enabled", "url", url, "subject", subject)
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

// PublishBuildCompleted sends the summary of one finished pass.
func (p *NATSPublisher) PublishBuildCompleted(_ context.Context, rep *report.BuildReport) error {
	payload, err := json.Marshal(buildCompleted{
		BuildID:    rep.ID,
		Commit:     rep.Commit,
		Published:  rep.Published,
		Drafts:     rep.Drafts,
		Errors:     rep.Errors,
		Warnings:   len(rep.Warnings),
		Issues:     len(rep.Issues),
		DurationMS: rep.Duration.Milliseconds(),
		FinishedAt: rep.StartedAt.Add(rep.Duration),
	})
	if err != nil {
		return fmt.Errorf("marshal build event: %w", err)
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish build event: %w", err)
	}
	return nil
}

// Close drains the connection so a final event is not lost on shutdown.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
