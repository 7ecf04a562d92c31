package commands

import (
	"fmt"

	"github.com/MarvStuff/Athlete-Wiki/internal/build"
	"github.com/MarvStuff/Athlete-Wiki/internal/config"
)

// ValidateCmd implements the 'validate' command: the compliance scan without
// writing any output.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if root.Drafts {
		cfg.Build.Drafts = true
	}

	rep, ok, err := build.New(cfg).Validate()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("validation failed: %d external resource references", len(rep.Issues))
	}
	fmt.Printf("All %d articles passed validation\n", rep.Scanned)
	return nil
}
