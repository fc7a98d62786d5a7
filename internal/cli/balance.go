package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"quizbot/internal/captcha"
	"quizbot/internal/config"
)

// runBalance builds the handler for the balance command.
func runBalance(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", config.DefaultConfigFile, "Path to config file")
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
		apiKey := strings.TrimSpace(os.Getenv(config.EnvCaptchaAPIKey))
		if apiKey == "" {
			fmt.Fprintf(stderr, "Missing credentials: %s is not set\n", config.EnvCaptchaAPIKey)
			return ExitError
		}

		client, err := captcha.NewClient(apiKey, cfg.Solver.BaseURL, nil)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to build solver client: %v\n", err)
			return ExitError
		}
		balance, err := client.Balance(context.Background())
		if err != nil {
			fmt.Fprintf(stderr, "Failed to fetch balance: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Balance: $%.4f\n", balance)
		return ExitOK
	}
}
