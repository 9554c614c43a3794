package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/schemakit/schemakit/internal/schema"
)

func PrintCommand() *cli.Command {
	return &cli.Command{
		Name:        "print",
		Usage:       "Build a schema from field descriptors and print it",
		Description: `Assemble a schema locally from --field name:descriptor entries and print its canonical display. Fields named in --not-null are marked non-nullable.`,
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
		Action: func(_ context.Context, cmd *cli.Command) error {
			out, err := runPrint(cmd.StringSlice("field"), cmd.StringSlice("not-null"))
			if err != nil {
				return err
			}

			fmt.Println(out)

			return nil
		},
	}
}

func runPrint(fieldFlags, notNull []string) (string, error) {
	specs, err := parseFieldSpecs(fieldFlags, notNull)
	if err != nil {
		return "", err
	}

	st, err := buildStructType(specs)
	if err != nil {
		return "", err
	}

	return schema.PrintStructType(st)
}
