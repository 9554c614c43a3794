package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v3"

	"github.com/schemakit/schemakit/internal/backend"
	"github.com/schemakit/schemakit/internal/errors"
	"github.com/schemakit/schemakit/internal/logging"
	"github.com/schemakit/schemakit/internal/schema"
)

func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:        "register",
		Usage:       "Register a schema as an engine table",
		ArgsUsage:   "<table>",
		Description: `Validate --field descriptors, register the schema with the DuckDB engine, and create the table. The printed schema is read back from the engine, not echoed from the input.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "field",
				Aliases: []string{"f"},
				Usage:   "field as name:descriptor (repeatable, order preserved)",
			},
			&cli.StringSliceFlag{
				Name:  "not-null",
				Usage: "field name to mark non-nullable (repeatable)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := getConfigFromContext(ctx)
			if cfg == nil {
				return errors.New(errors.ErrTypeConfig, "failed to load configuration")
			}

			adapter, err := initializeBackend(cfg)
			if err != nil {
				return err
			}
			defer adapter.Close()

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.Suffix = " Registering schema..."
			s.Start()

			out, err := runRegister(ctx, adapter, cmd.Args().First(), cmd.StringSlice("field"), cmd.StringSlice("not-null"))

			s.Stop()

			if err != nil {
				return err
			}

			fmt.Println(out)

			return nil
		},
	}
}

func runRegister(ctx context.Context, adapter *backend.DuckDBAdapter, table string, fieldFlags, notNull []string) (string, error) {
	if table == "" {
		return "", errors.New(errors.ErrTypeArgument, "a table name is required")
	}

	specs, err := parseFieldSpecs(fieldFlags, notNull)
	if err != nil {
		return "", err
	}

	handles := make([]schema.Handle, len(specs))

	for i, spec := range specs {
		handle, err := adapter.CreateStructField(spec.name, spec.descriptor, spec.nullable)
		if err != nil {
			return "", err
		}

		handles[i] = handle
	}

	typeHandle, err := adapter.CreateStructType(handles)
	if err != nil {
		return "", err
	}

	if err := adapter.CreateTable(ctx, table, typeHandle); err != nil {
		return "", err
	}

	logging.Infof("registered schema for table %q with %d fields", table, len(specs))

	out, err := schema.PrintStructType(schema.TypeFromHandle(adapter, typeHandle))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Registered table %q\n%s", table, out), nil
}
