// Package watch implements the incremental build loop: a filesystem watcher
// over the source directories drives rebuilds through a single-slot worker —
// at most one build runs at a time and at most one follow-up is pending, any
// further trigger while busy is a no-op. The preview server reads whatever
// the most recent completed build produced.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"github.com/MarvStuff/Athlete-Wiki/internal/build"
	"github.com/MarvStuff/Athlete-Wiki/internal/config"
	"github.com/MarvStuff/Athlete-Wiki/internal/events"
	"github.com/MarvStuff/Athlete-Wiki/internal/metrics"
	"github.com/MarvStuff/Athlete-Wiki/internal/server"
)

// Options carries the watch-mode knobs not covered by the config file.
type Options struct {
	Port         int
	MetricsPort  int
	RebuildEvery time.Duration
}

// Run blocks until ctx is canceled. It performs an initial build, starts the
// preview server and reruns the pipeline on relevant filesystem changes.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	orch := build.New(cfg)

	var metricsSrv interface{ Stop(context.Context) error }
	if opts.MetricsPort > 0 {
		recorder := metrics.NewPrometheusRecorder(nil)
		orch.SetRecorder(recorder)
		srv, err := server.StartMetrics(opts.MetricsPort, recorder.Handler())
		if err != nil {
			return err
		}
		metricsSrv = shutdownAdapter{srv.Shutdown}
	}

	publisher := newPublisher(cfg)
	defer publisher.Close()

	// Initial build; a failure is reported but keeps watch mode alive so the
	// next change can fix it.
	runBuild(ctx, orch, publisher)

	previewSrv := server.New(cfg.Build.OutputDir, opts.Port)
	if err := previewSrv.Start(); err != nil {
		return err
	}

	watcher, err := setupWatcher(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	rebuildReq := make(chan struct{}, 1)
	trigger := newDebouncer(time.Duration(cfg.Watch.DebounceMS)*time.Millisecond, rebuildReq)
	startWorker(ctx, orch, publisher, rebuildReq)

	scheduler, err := startSchedule(opts.RebuildEvery, trigger)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return shutdown(previewSrv, metricsSrv, scheduler)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleEvent(watcher, ev, trigger)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", werr)
		}
	}
}

func newPublisher(cfg *config.Config) events.Publisher {
	if cfg.Events.NATSURL == "" {
		return events.NoopPublisher{}
	}
	p, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.Subject)
	if err != nil {
		slog.Warn("Build event publishing disabled", "error", err)
		return events.NoopPublisher{}
	}
	return p
}

func runBuild(ctx context.Context, orch *build.Orchestrator, publisher events.Publisher) {
	rep, err := orch.Build()
	if err != nil {
		slog.Error("Build failed", "error", err)
		return
	}
	if err := publisher.PublishBuildCompleted(ctx, rep); err != nil {
		slog.Warn("Build event not published", "error", err)
	}
}

// startWorker consumes rebuild requests one at a time. A request arriving
// while a build runs sets the pending flag; when the build finishes the
// worker re-queues exactly one follow-up. A build always runs to completion,
// there is no cancellation mid-pass.
func startWorker(ctx context.Context, orch *build.Orchestrator, publisher events.Publisher, rebuildReq chan struct{}) {
	var mu sync.Mutex
	running := false
	pending := false

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-rebuildReq:
				if !ok {
					return
				}
				mu.Lock()
				if running {
					pending = true
					mu.Unlock()
					continue
				}
				running = true
				mu.Unlock()

				slog.Info("Change detected, rebuilding site")
				runBuild(ctx, orch, publisher)

				mu.Lock()
				running = false
				if pending {
					pending = false
					mu.Unlock()
					select {
					case rebuildReq <- struct{}{}:
					default:
					}
				} else {
					mu.Unlock()
				}
			}
		}
	}()
}

// newDebouncer returns a trigger that forwards a rebuild request once events
// stop arriving for the given window, so editor save bursts cost one build.
func newDebouncer(window time.Duration, rebuildReq chan struct{}) func() {
	var mu sync.Mutex
	var timer *time.Timer

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(window, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
}

func setupWatcher(cfg *config.Config) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	for _, dir := range []string{cfg.Build.PagesDir, cfg.Build.TemplatesDir, cfg.Build.StaticDir} {
		if _, statErr := os.Stat(dir); statErr != nil {
			continue
		}
		if err := addDirsRecursive(watcher, dir); err != nil {
			_ = watcher.Close()
			return nil, err
		}
	}
	return watcher, nil
}

func handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	// New directories need to join the watch set before their files change.
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", "path", ev.Name, "op", ev.Op.String())
	trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", "dir", path, "error", err)
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not
// trigger rebuilds: hidden files, editor temp/swap files, OS metadata.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}

func startSchedule(every time.Duration, trigger func()) (gocron.Scheduler, error) {
	if every <= 0 {
		return nil, nil
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(trigger),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule periodic rebuild: %w", err)
	}
	scheduler.Start()
	slog.Info("Periodic rebuild scheduled", "every", every)
	return scheduler, nil
}

type shutdownAdapter struct {
	fn func(context.Context) error
}

func (s shutdownAdapter) Stop(ctx context.Context) error { return s.fn(ctx) }

func shutdown(previewSrv *server.Server, metricsSrv interface{ Stop(context.Context) error }, scheduler gocron.Scheduler) error {
	slog.Info("Shutting down watch mode")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := previewSrv.Stop(shutdownCtx); err != nil {
		slog.Warn("Preview server shutdown error", "error", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Stop(shutdownCtx); err != nil {
			slog.Warn("Metrics server shutdown error", "error", err)
		}
	}
	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			slog.Warn("Scheduler shutdown error", "error", err)
		}
	}
	return nil
}
