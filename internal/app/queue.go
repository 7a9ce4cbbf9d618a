package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"quill.fyi/relay/internal/cli"
	"quill.fyi/relay/internal/notify"
)

func runQueue(args []string) int {
	if len(args) == 0 {
		printQueueUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "-h", "--help":
		printQueueUsage()
		return 0
	case "list":
		return runQueueList(args[1:])
	case "delete":
		return runQueueDelete(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown queue action: %s\n\n", args[0])
		printQueueUsage()
		return 2
	}
}

func runQueueList(args []string) int {
	fs := flag.NewFlagSet("queue list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 10*time.Second, "Command timeout")
	destination := fs.String("destination", "", "Destination to list (required)")
	format := fs.String("format", outputFormatTable, "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "queue list does not accept positional arguments")
		return 2
	}
	if strings.TrimSpace(*destination) == "" {
		fmt.Fprintln(os.Stderr, "--destination is required")
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatTable)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		return 2
	}

	ctx, cancel, pool, _, logger, err := connectPool(*timeout, envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cancel()
	defer pool.Close()

	pending, err := notify.NewQueue(pool, logger).ListPending(ctx, *destination)
	if err != nil {
		logger.Error().Err(err).Str("destination", *destination).Msg("query pending failed")
		fmt.Fprintf(os.Stderr, "Failed to list pending notifications: %v\n", err)
		return 1
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(pending); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	rows := make([][]string, 0, len(pending))
	for _, paper := range pending {
		rows = append(rows, []string{
			strconv.FormatInt(paper.ID, 10),
			paper.Category.Name,
			truncateForTable(paper.Title, 72),
			paper.Updated.UTC().Format("2006-01-02"),
		})
	}
	if err := writeTable([]string{"id", "category", "title", "updated"}, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render table: %v\n", err)
		return 1
	}
	fmt.Printf("\n%d pending for %s\n", len(pending), *destination)
	return 0
}

func runQueueDelete(args []string) int {
	fs := flag.NewFlagSet("queue delete", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 10*time.Second, "Command timeout")
	destination := fs.String("destination", "", "Destination of the record (required)")
	paperID := fs.Int64("paper-id", 0, "Paper id of the record (required)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "queue delete does not accept positional arguments")
		return 2
	}
	if strings.TrimSpace(*destination) == "" {
		fmt.Fprintln(os.Stderr, "--destination is required")
		return 2
	}
	if *paperID <= 0 {
		fmt.Fprintln(os.Stderr, "--paper-id must be a positive integer")
		return 2
	}

	ctx, cancel, pool, _, logger, err := connectPool(*timeout, envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cancel()
	defer pool.Close()

	if err := notify.NewQueue(pool, logger).Delete(ctx, *destination, *paperID); err != nil {
		logger.Error().Err(err).Str("destination", *destination).Int64("paper_id", *paperID).Msg("delete failed")
		fmt.Fprintf(os.Stderr, "Failed to delete notification record: %v\n", err)
		return 1
	}

	fmt.Printf("deleted destination=%s paper_id=%d\n", *destination, *paperID)
	return 0
}

func printQueueUsage() {
	fmt.Fprintln(os.Stderr, "relay queue")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  relay queue <action> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Actions:")
	fmt.Fprintln(os.Stderr, "  list     Show pending notifications for a destination")
	fmt.Fprintln(os.Stderr, "  delete   Remove one notification record")
}
