package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/quicknote/internal"
	pkgconfig "github.com/starford/quicknote/pkg/config"
)

var version = "dev"

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadOrDefault(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if db := cmd.String("db"); db != "" {
		cfg.SQLite.Path = db
	}
	return cfg, nil
}

func options(cmd *cli.Command) ([]internal.Option, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return []internal.Option{
		internal.WithConfig(cfg),
		internal.WithVersion(version),
	}, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx, opts...)
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "quicknote",
		Usage:   "Plain-text notes with multi-select delete and share, served over HTTP, MCP and the command line",
		Version: version,
		Action:  run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "SQLite file, overrides sqlite.path",
				Sources: cli.EnvVars("QUICKNOTE_DB"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools on stdin/stdout",
				Action: runMCP,
			},
			{
				Name:   "list",
				Usage:  "List notes",
				Action: listNotes,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "width",
						Usage: "Preview width in terminal cells",
						Value: 48,
					},
				},
			},
			{
				Name:      "add",
				Usage:     "Save a new note",
				ArgsUsage: "<text>",
				Action:    addNote,
			},
			{
				Name:      "edit",
				Usage:     "Replace the text of a note",
				ArgsUsage: "<id> <text>",
				Action:    editNote,
			},
			{
				Name:      "rm",
				Usage:     "Delete notes",
				ArgsUsage: "<id>...",
				Action:    removeNotes,
			},
			{
				Name:      "share",
				Usage:     "Print the share text of a note",
				ArgsUsage: "<id>",
				Action:    shareNote,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "copy",
						Usage: "Copy to the clipboard instead of printing",
					},
				},
			},
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
