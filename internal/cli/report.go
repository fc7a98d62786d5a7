package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"quizbot/internal/config"
	"quizbot/internal/report"
	"quizbot/internal/runner"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", config.DefaultConfigFile, "Path to config file")
		runID := flags.String("run", "", "Run ID (default: latest run)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		baseDir, err := config.BaseDir(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve config path: %v\n", err)
			return ExitError
		}
		outputDir := config.ResolvePath(baseDir, cfg.Output.Dir)

		resolvedRunID := *runID
		if resolvedRunID == "" {
			resolvedRunID, err = latestRunID(outputDir)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to find latest run: %v\n", err)
				return ExitError
			}
		}
		paths, err := runner.NewOutputPaths(outputDir, resolvedRunID)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid run: %v\n", err)
			return ExitError
		}

		results, err := runner.ReadResults(paths.ResultsPath())
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load results: %v\n", err)
			return ExitError
		}
		if err := report.Write(context.Background(), results, paths.ReportPath()); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Report: %s\n", paths.ReportPath())
		return ExitOK
	}
}

// latestRunID picks the newest run directory. Run IDs start with a UTC
// timestamp, so the lexicographic maximum is the latest run.
func latestRunID(outputDir string) (string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return "", fmt.Errorf("read output dir: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no runs found in %s", outputDir)
	}
	sort.Strings(ids)
	return ids[len(ids)-1], nil
}
