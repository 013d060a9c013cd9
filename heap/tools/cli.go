package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	workloadFlags := []cli.Flag{
		&cli.IntFlag{
			Name:  "count",
			Value: 10000,
			Usage: "number of keys generated per phase",
		},
		&cli.UintFlag{
			Name:  "seed",
			Value: 42,
			Usage: "seed for the key generator",
		},
		&cli.IntFlag{
			Name:        "key-range",
			DefaultText: "unbounded",
			Usage:       "draw keys from [0, key-range)",
		},
	}

	app := &cli.Command{
		Name:  "heap_tools",
		Usage: "exercise and verify the bounded min-heap",
		Commands: []*cli.Command{
			{
				Name:   "drain",
				Usage:  "insert random keys one at a time, then drain and verify order",
				Action: runDrain,
				Flags:  workloadFlags,
			},
			{
				Name:   "topk",
				Usage:  "bulk-build a heap, keep the largest keys of a second stream, then drain",
				Action: runTopK,
				Flags:  workloadFlags,
			},
			{
				Name:   "merge",
				Usage:  "merge files of sorted integers, one per line",
				Action: mergeFiles,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
