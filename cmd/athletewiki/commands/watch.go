package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MarvStuff/Athlete-Wiki/internal/config"
	"github.com/MarvStuff/Athlete-Wiki/internal/watch"
)

// WatchCmd implements the 'watch' command: continuous rebuilds plus a local
// preview server.
type WatchCmd struct {
	Port         int           `short:"p" help:"Preview server port (overrides config)"`
	MetricsPort  int           `name:"metrics-port" help:"Serve Prometheus metrics on this port (overrides config)"`
	RebuildEvery time.Duration `name:"rebuild-every" help:"Additionally rebuild on a fixed interval (e.g. 30m)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if root.Drafts {
		cfg.Build.Drafts = true
	}

	opts := watch.Options{
		Port:         cfg.Watch.Port,
		MetricsPort:  cfg.Watch.MetricsPort,
		RebuildEvery: w.RebuildEvery,
	}
	if w.Port > 0 {
		opts.Port = w.Port
	}
	if w.MetricsPort > 0 {
		opts.MetricsPort = w.MetricsPort
	}

	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return watch.Run(sigctx, cfg, opts)
}
