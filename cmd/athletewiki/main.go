package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/MarvStuff/Athlete-Wiki/cmd/athletewiki/commands"
	"github.com/MarvStuff/Athlete-Wiki/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("athletewiki"),
		kong.Description("Static site builder for the Athlete Wiki"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli); err != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}
