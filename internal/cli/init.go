package cli

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"quizbot/internal/config"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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

		if err := config.Scaffold(*configPath); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", *configPath)
		fmt.Fprintf(stdout, "Wrote %s\n", filepath.Join(filepath.Dir(*configPath), config.DefaultQuizFile))
		fmt.Fprintf(stdout, "Set %s, %s, and %s before running.\n",
			config.EnvSiteUsername, config.EnvSitePassword, config.EnvCaptchaAPIKey)
		return ExitOK
	}
}
