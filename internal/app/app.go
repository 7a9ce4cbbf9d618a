package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "health":
		return runHealth(args[1:])
	case "ingest":
		return runIngest(args[1:])
	case "notify":
		return runNotify(args[1:])
	case "run", "run-once":
		return runOnce(args[1:])
	case "watch":
		return runWatch(args[1:])
	case "paper":
		return runPaper(args[1:])
	case "queue":
		return runQueue(args[1:])
	case "serve":
		return runServe(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "relay CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  relay <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  health   Verify database connectivity")
	fmt.Fprintln(os.Stderr, "  ingest   Fetch configured searches and store new papers")
	fmt.Fprintln(os.Stderr, "  notify   Deliver pending notifications to their destinations")
	fmt.Fprintln(os.Stderr, "  run      Run ingest + notify for every profile")
	fmt.Fprintln(os.Stderr, "  run-once Alias for run")
	fmt.Fprintln(os.Stderr, "  watch    Run the pipeline on a cron schedule")
	fmt.Fprintln(os.Stderr, "  paper    Show one stored paper")
	fmt.Fprintln(os.Stderr, "  queue    Inspect or prune the notification queue")
	fmt.Fprintln(os.Stderr, "  serve    Start the HTTP API server")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"relay <command> -h\" for command-specific flags.")
}
