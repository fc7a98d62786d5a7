package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"quizbot/internal/browser"
	"quizbot/internal/config"
	"quizbot/internal/history"
	"quizbot/internal/report"
	"quizbot/internal/runner"
	"quizbot/internal/ui/live"
)

// runAndWrite allows tests to stub the run pipeline.
var runAndWrite = runner.RunAndWrite

// runRun builds the handler for the run command.
func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", config.DefaultConfigFile, "Path to config file")
		outputDir := flags.String("output-dir", "", "Override output directory")
		uiMode := flags.String("ui", "auto", "UI mode: auto, live, or plain")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		headless := flags.Bool("headless", false, "Force the browser to run headless")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}

		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		if *headless {
			cfg.Browser.Headless = true
		}
		secrets, err := config.SecretsFromEnv()
		if err != nil {
			fmt.Fprintf(stderr, "Missing credentials: %v\n", err)
			return ExitLogin
		}
		baseDir, err := config.BaseDir(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve config path: %v\n", err)
			return ExitError
		}

		resolvedOutputDir := *outputDir
		if resolvedOutputDir == "" {
			resolvedOutputDir = config.ResolvePath(baseDir, cfg.Output.Dir)
		}
		params := runner.RunParams{
			QuizFilePath: config.ResolvePath(baseDir, cfg.Quizzes.File),
			OutputDir:    resolvedOutputDir,
			Quizzes:      flags.Args(),
			Secrets:      secrets,
		}

		decision, err := resolveUIMode(*uiMode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}
		var controller *live.Controller
		if decision.useLive {
			controller = live.Start(stdout, live.Options{NoColor: *noColor})
			params.Observer = controller
		} else {
			params.Observer = runner.NewPlainObserver(stdout, *noColor)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		results, paths, runErr := runAndWrite(ctx, cfg, params)
		if controller != nil {
			controller.Close()
			controller.Wait()
		}
		if results.RunID == "" {
			fmt.Fprintf(stderr, "Run failed: %v\n", runErr)
			return exitCodeFor(runErr)
		}

		if err := report.Write(ctx, results, paths.ReportPath()); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
		}
		if historyPath := config.ResolvePath(baseDir, cfg.Output.HistoryDB); historyPath != "" {
			if err := ingestHistory(ctx, historyPath, results); err != nil {
				fmt.Fprintf(stderr, "Failed to record history: %v\n", err)
			}
		}

		summary := results.Summary
		fmt.Fprintf(stdout, "Run %s finished: %d/%d quizzes completed, %d claims confirmed, %d/%d questions answered\n",
			results.RunID, summary.QuizzesCompleted, summary.QuizzesTotal, summary.ClaimsConfirmed,
			summary.QuestionsAnswered, summary.QuestionsTotal)
		fmt.Fprintf(stdout, "Results: %s\n", paths.ResultsPath())
		fmt.Fprintf(stdout, "Report: %s\n", paths.ReportPath())
		if runErr != nil {
			fmt.Fprintf(stderr, "Run finished with failures: %v\n", runErr)
			return exitCodeFor(runErr)
		}
		return ExitOK
	}
}

// ingestHistory stores the run in the history database.
func ingestHistory(ctx context.Context, path string, results runner.Results) error {
	db, err := history.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return history.Ingest(ctx, db, results)
}

// exitCodeFor maps run failures onto the documented exit codes.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, browser.ErrLoginFailed):
		return ExitLogin
	case errors.Is(err, browser.ErrNavigation):
		return ExitNavigation
	case errors.Is(err, runner.ErrClaimFailed), errors.Is(err, browser.ErrCaptchaNotFound):
		return ExitCaptcha
	default:
		return ExitError
	}
}
