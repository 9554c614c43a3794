package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/schemakit/schemakit/internal/errors"
	"github.com/schemakit/schemakit/internal/schema"
)

func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:        "check",
		Usage:       "Validate a type descriptor",
		ArgsUsage:   "<descriptor>",
		Description: `Run the descriptor grammar over a single type, e.g. "map<string,double>" or "struct<a:integer,b:array<string>>". Exits non-zero on the first validation failure.`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			out, err := runCheck(cmd.Args().First())
			if err != nil {
				return err
			}

			fmt.Println(out)

			return nil
		},
	}
}

func runCheck(descriptor string) (string, error) {
	if descriptor == "" {
		return "", errors.New(errors.ErrTypeArgument, "a type descriptor is required")
	}

	node, err := schema.Parse(descriptor)
	if err != nil {
		return "", err
	}

	return "OK: " + node.String(), nil
}
