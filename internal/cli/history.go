package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"quizbot/internal/config"
	"quizbot/internal/history"
)

// runHistory builds the handler for the history command.
func runHistory(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", config.DefaultConfigFile, "Path to config file")
		limit := flags.Int("limit", 20, "Maximum number of runs to list")
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

		db, err := history.Open(config.ResolvePath(baseDir, cfg.Output.HistoryDB))
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open history: %v\n", err)
			return ExitError
		}
		defer db.Close()

		runs, err := history.RecentRuns(context.Background(), db, *limit)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to list runs: %v\n", err)
			return ExitError
		}
		if len(runs) == 0 {
			fmt.Fprintln(stdout, "No runs recorded yet.")
			return ExitOK
		}

		writer := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "RUN\tSTARTED\tQUIZZES\tCLAIMS\tQUESTIONS\tCACHE\tLLM\tGUESS")
		for _, run := range runs {
			fmt.Fprintf(writer, "%s\t%s\t%d/%d\t%d\t%d/%d\t%d\t%d\t%d\n",
				run.RunID,
				run.StartedAt.Format("2006-01-02 15:04"),
				run.QuizzesCompleted, run.QuizzesTotal,
				run.ClaimsConfirmed,
				run.QuestionsAnswered, run.QuestionsTotal,
				run.CacheHits, run.LLMFallbacks, run.Guesses)
		}
		writer.Flush()
		return ExitOK
	}
}
