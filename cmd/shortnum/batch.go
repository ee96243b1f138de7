package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shortnum/internal/shortnum"
)

// batchCmd validates many numbers from a file
var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Validate numbers from a file, one per line",
	Long: `Reads lines of the form CALLINGCODE:NATIONAL (e.g. "1:911") or
CALLINGCODE:NATIONAL:REGION to pin the check to one region. Blank lines and
lines starting with '#' are skipped. Lines are validated concurrently;
output preserves input order.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

type batchResult struct {
	line     string
	possible bool
	valid    bool
	err      error
}

func runBatch(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}

	results := make([]batchResult, len(lines))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			results[i] = checkLine(line)
			return nil
		})
	}
	// Workers record per-line errors in results; the group never fails.
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Printf("%-24s error: %v\n", r.line, r.err)
			continue
		}
		fmt.Printf("%-24s possible=%-5v valid=%v\n", r.line, r.possible, r.valid)
	}

	logger.Debug("batch complete",
		zap.Int("lines", len(lines)),
		zap.Int("failed", failed))

	if failed > 0 {
		return fmt.Errorf("%d of %d lines failed to parse", failed, len(lines))
	}
	return nil
}

// checkLine parses and validates one batch line.
func checkLine(line string) batchResult {
	parts := strings.Split(line, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return batchResult{line: line, err: fmt.Errorf("want CODE:NATIONAL or CODE:NATIONAL:REGION")}
	}

	n, err := parseNumber(parts[0], parts[1])
	if err != nil {
		return batchResult{line: line, err: err}
	}

	sel := shortnum.FromCallingCode()
	if len(parts) == 3 {
		sel = shortnum.Explicit(parts[2])
	}

	return batchResult{
		line:     line,
		possible: validator.IsPossible(n, sel),
		valid:    validator.IsValid(n, sel),
	}
}
