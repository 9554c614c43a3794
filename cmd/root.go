// Package cmd wires the schemakit commands: declaring tabular schemas
// in the type-descriptor mini-language, validating and printing them,
// and registering them with the DuckDB engine.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/schemakit/schemakit/internal/backend"
	"github.com/schemakit/schemakit/internal/config"
	"github.com/schemakit/schemakit/internal/logging"
)

type contextKey string

const configContextKey contextKey = "config"

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:  "schemakit",
		Usage: "Declare, validate, and register tabular schemas for DuckDB",
		Description: `schemakit turns type-descriptor strings like "struct<a:integer,b:string>"
into validated schemas and feeds them to a local DuckDB database. Schemas can be
checked and printed offline, registered as engine tables, and read back from the
engine catalog for display.`,
		Commands: []*cli.Command{
			CheckCommand(),
			PrintCommand(),
			RegisterCommand(),
			DescribeCommand(),
			ConfigCommand(),
		},
	}
}

// Execute loads configuration, initializes logging, and runs the CLI.
func Execute() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logging.InitializeLogger(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	ctx := context.WithValue(context.Background(), configContextKey, cfg)

	return rootCommand().Run(ctx, os.Args)
}

// getConfigFromContext retrieves the active configuration
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configContextKey).(*config.Config); ok {
		return cfg
	}

	return nil
}

// initializeBackend creates the engine adapter from configuration
func initializeBackend(cfg *config.Config) (*backend.DuckDBAdapter, error) {
	dbPath := config.ExpandPath(cfg.Database.Path)

	adapter, err := backend.NewDuckDBAdapter(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine adapter: %w", err)
	}

	return adapter, nil
}
