package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
	// ExitNavigation marks a run that failed to reach the site.
	ExitNavigation = 3
	// ExitLogin marks rejected or missing credentials.
	ExitLogin = 4
	// ExitCaptcha marks a run that failed only at the captcha step.
	ExitCaptcha = 5
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  quizbot <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"quizbot <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .quizbot.yml and an empty quiz file", []string{
		"quizbot init [--config <path>]",
	}, runInit),
	command("validate", "Validate the config file", []string{
		"quizbot validate [--config <path>]",
	}, runValidate),
	command("run", "Log in and complete quizzes", []string{
		"quizbot run [--config <path>] [--headless] [--ui auto|live|plain] [quiz-name]...",
	}, runRun),
	command("history", "List past runs from the history database", []string{
		"quizbot history [--config <path>] [--limit <n>]",
	}, runHistory),
	command("report", "Render the HTML report for a stored run", []string{
		"quizbot report [--config <path>] [--run <run-id>]",
	}, runReport),
	command("balance", "Show the captcha solving account balance", []string{
		"quizbot balance [--config <path>]",
	}, runBalance),
}
