package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/tallyhq/tally/internal/apperrors"
	"github.com/tallyhq/tally/internal/cli"
	"github.com/tallyhq/tally/internal/constants"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path." type:"path" default:"${config_path}"`
	Timezone string `help:"IANA timezone override (default: stored settings)."`
	Debug    bool   `help:"Enable debug logging to stderr."`

	Init  cli.InitCmd  `cmd:"" help:"Initialize tally storage."`
	Tui   cli.TuiCmd   `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Today cli.TodayCmd `cmd:"" help:"Show what's due today."`
	Mark  cli.MarkCmd  `cmd:"" help:"Toggle a habit's completion for a day."`
	Stats cli.StatsCmd `cmd:"" help:"Show streaks and success rate for a habit."`
	Focus cli.FocusCmd `cmd:"" help:"Show the goal to focus on."`
	Goal  cli.GoalCmd  `cmd:"" help:"Manage goals."`
	Habit cli.HabitCmd `cmd:"" help:"Manage habits."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit and goal tracker with streak accounting"),
		kong.UsageOnError(),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		// Logging is best effort; the CLI still works without it.
		logger.Logger = nil
	}

	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:    store,
		Timezone: CLI.Timezone,
		Debug:    CLI.Debug,
	}

	err := ctx.Run(appCtx)
	if cerr := store.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		apperrors.Fatal(err)
	}
}
