// Command jobboard-admin inspects and maintains job board state from the shell.
package main

import (
	"context"
	"log/slog"
	"os"
	"sort"

	"github.com/jobboard/jobboard-ui/config"
	"github.com/jobboard/jobboard-ui/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"list-view-states": {
			name:        "list-view-states",
			description: "List stored visitor view states (Redis store)",
			run:         runListViewStates,
		},
		"show-view-state": {
			name:        "show-view-state",
			description: "Show one visitor's view state and what it renders",
			run:         runShowViewState,
		},
		"clear-view-states": {
			name:        "clear-view-states",
			description: "Delete visitor view states so visitors start over",
			run:         runClearViewStates,
		},
		"check-catalog": {
			name:        "check-catalog",
			description: "Validate the job catalog and list its jobs",
			run:         runCheckCatalog,
		},
		"resolve-url": {
			name:        "resolve-url",
			description: "Show the page and job a startup URL resolves to",
			run:         runResolveURL,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: jobboard-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	names := make([]string, 0, len(commands()))
	for name := range commands() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := commands()[name]
		if err := writef(os.Stdout, "  %-20s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}
