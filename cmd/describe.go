package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/schemakit/schemakit/internal/backend"
	"github.com/schemakit/schemakit/internal/errors"
	"github.com/schemakit/schemakit/internal/schema"
)

func DescribeCommand() *cli.Command {
	return &cli.Command{
		Name:        "describe",
		Usage:       "Print the schema of an engine table",
		ArgsUsage:   "<table>",
		Description: `Read a table's schema back from the DuckDB catalog and print it in canonical display form.`,
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

			out, err := runDescribe(ctx, adapter, cmd.Args().First())
			if err != nil {
				return err
			}

			fmt.Println(out)

			return nil
		},
	}
}

func runDescribe(ctx context.Context, adapter *backend.DuckDBAdapter, table string) (string, error) {
	if table == "" {
		return "", errors.New(errors.ErrTypeArgument, "a table name is required")
	}

	typeHandle, err := adapter.DescribeTable(ctx, table)
	if err != nil {
		return "", err
	}

	return schema.PrintStructType(schema.TypeFromHandle(adapter, typeHandle))
}
