package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/navijation/njheap/workload"
	"github.com/urfave/cli/v3"
)

var errVerificationFailed = errors.New("heap produced keys out of order")

func runDrain(_ context.Context, cmd *cli.Command) error {
	return runWorkload(os.Stdout, "drain", workload.Drain, argsFromCommand(cmd))
}

func runTopK(_ context.Context, cmd *cli.Command) error {
	return runWorkload(os.Stdout, "topk", workload.TopK, argsFromCommand(cmd))
}

func argsFromCommand(cmd *cli.Command) workload.Args {
	return workload.Args{
		Count:    int(cmd.Int("count")),
		Seed:     cmd.Uint("seed"),
		KeyRange: int(cmd.Int("key-range")),
	}
}

func runWorkload(
	out io.Writer, name string, run func(workload.Args) (workload.Report, error), args workload.Args,
) error {
	report, err := run(args)
	if err != nil {
		return fmt.Errorf("%s workload failed: %w", name, err)
	}

	fmt.Fprintf(out,
		"Run\n"+
			"  ID: %s\n"+
			"  Workload: %s\n"+
			"  Count: %d\n"+
			"  Seed: %d\n\n",
		uuid.New().String(),
		name,
		args.Count,
		args.Seed,
	)
	fmt.Fprintf(out,
		"Result\n"+
			"  Extracted: %d\n"+
			"  First: %d (expected %d)\n"+
			"  Last: %d\n"+
			"  Inversions: %d\n",
		report.Extracted,
		report.First,
		report.ExpectedMin,
		report.Last,
		report.Inversions,
	)

	if !report.Ok() {
		return errVerificationFailed
	}
	return nil
}
