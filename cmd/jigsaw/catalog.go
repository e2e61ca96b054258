package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/erinpentecost/LivelyJigsaw/internal/imagespec"
	"github.com/erinpentecost/LivelyJigsaw/internal/jigsaw"
	"github.com/spf13/pflag"
	"go.coder.com/cli"
)

type catalogCmd struct {
	common commonFlags
}

func (c *catalogCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "catalog",
		Usage: "[flags] <dir>",
		Desc:  "List the puzzle images in a directory with their grid at the configured difficulty.",
	}
}

func (c *catalogCmd) RegisterFlags(fl *pflag.FlagSet) {
	c.common.register(fl)
}

func (c *catalogCmd) Run(fl *pflag.FlagSet) {
	fatal(c.run(context.Background(), fl, os.Stdout))
}

func (c *catalogCmd) run(ctx context.Context, fl *pflag.FlagSet, stdout io.Writer) error {
	dir, err := imageArg(fl)
	if err != nil {
		return err
	}
	cfg, err := c.common.load(fl)
	if err != nil {
		return err
	}
	entries, err := imagespec.Catalog(ctx, dir, cfg.Threads)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFORMAT\tSIZE\tGRID\tPIECES")
	for _, e := range entries {
		shape, err := jigsaw.ComputeGridShape(e.Spec.PixelWidth, e.Spec.PixelHeight, cfg.Difficulty)
		if err != nil {
			return fmt.Errorf("grid for %q: %w", e.Name, err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", e.Name, e.Format, e.Spec, shape, shape.Count())
	}
	return tw.Flush()
}
