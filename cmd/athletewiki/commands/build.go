package commands

import (
	"fmt"

	"github.com/MarvStuff/Athlete-Wiki/internal/build"
	"github.com/MarvStuff/Athlete-Wiki/internal/config"
)

// BuildCmd implements the 'build' command: one full publishing pass.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory for the generated site (overrides config)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.Output != "" {
		cfg.Build.OutputDir = b.Output
	}
	if root.Drafts {
		cfg.Build.Drafts = true
	}

	_, err = build.New(cfg).Build()
	return err
}
