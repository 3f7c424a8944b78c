// Command evalctl is the orchestrator CLI (§4.I / §6): it filters
// scenarios, fans out across scale points and trials, drives each through
// the turn loop, and persists traces, a JSON summary and a human report to
// a timestamped output directory.
package main

import (
	"fmt"
	"log/slog"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	var err error
	switch os.Args[1] {
	case "run":
		err = runCommand(os.Args[2:])
	case "list":
		err = listCommand(os.Args[2:])
	case "baselines":
		err = baselinesCommand(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "evalctl: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		if exitErr, ok := err.(*exitError); ok {
			fmt.Fprintln(os.Stderr, "evalctl:", exitErr.err)
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, "evalctl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `evalctl - scenario-driven agent evaluation harness

Usage:
  evalctl run --scenarios <dir> [flags]
  evalctl list --scenarios <dir> [flags]
  evalctl baselines --scenarios <dir> [flags]

Flags (subset varies by subcommand):
  --levels <int,...>      filter by scenario level
  --tags <str,...>        filter by tag-set intersection
  --ids <str,...>         filter by explicit scenario id list
  --scale <label,...>     scale point labels to run (default: all)
  --trials <n>            trials per (scenario, scale point) (default 1)
  --seed <n>              deterministic seed for baselines and the mock model
  --model <name>          config name recorded on every ScenarioResult
  --provider <name>       model handler provider override
  --output <dir>          output directory (default ./eval-results)
  --concurrency <n>       global concurrency cap (default 1)
  --mock                  force the mock model handler
  --fail-on <threshold>   exit non-zero if mean score < threshold`)
}

// exitError carries a specific process exit code through the error return
// path so main can distinguish infrastructure failures (§6: non-zero) from
// evaluation-threshold failures (also non-zero, only with --fail-on).
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func newExitError(code int, format string, args ...any) *exitError {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}
