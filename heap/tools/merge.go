package main

import (
	"bufio"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/navijation/njheap/merge"
	"github.com/urfave/cli/v3"
)

func mergeFiles(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 1 {
		return errors.New("usage: merge src_path1 [src_path_2 ...]")
	}

	return mergeFilesHelper(os.Stdout, cmd.Args().Slice())
}

func mergeFilesHelper(out io.Writer, paths []string) error {
	var srcs []iter.Seq2[int, error]
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %q: %w", path, err)
		}
		defer file.Close()

		srcs = append(srcs, sortedInts(path, file))
	}

	writer := bufio.NewWriter(out)
	for value, err := range merge.SortedErr(cmp.Compare[int], srcs...) {
		if err != nil {
			return err
		}
		fmt.Fprintf(writer, "%d\n", value)
	}

	return writer.Flush()
}

// sortedInts reads one integer per line, skipping blank lines, and fails if the values
// ever decrease.
func sortedInts(name string, reader io.Reader) iter.Seq2[int, error] {
	return func(yield func(int, error) bool) {
		scanner := bufio.NewScanner(reader)
		var (
			lineNumber int
			prev       int
			hasPrev    bool
		)
		for scanner.Scan() {
			lineNumber++
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			value, err := strconv.Atoi(line)
			if err != nil {
				yield(0, fmt.Errorf("%s:%d: %w", name, lineNumber, err))
				return
			}
			if hasPrev && value < prev {
				yield(0, fmt.Errorf("%s:%d: %d follows %d, input must be sorted", name, lineNumber, value, prev))
				return
			}
			prev, hasPrev = value, true

			if !yield(value, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(0, fmt.Errorf("failed to read %s: %w", name, err))
		}
	}
}
