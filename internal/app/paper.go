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
	"quill.fyi/relay/internal/papers"
)

func runPaper(args []string) int {
	fs := flag.NewFlagSet("paper", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 10*time.Second, "Command timeout")
	format := fs.String("format", outputFormatTable, "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: relay paper [flags] <id>")
		return 2
	}

	id, err := strconv.ParseInt(strings.TrimSpace(fs.Arg(0)), 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintln(os.Stderr, "paper id must be a positive integer")
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

	paper, err := papers.NewReader(pool).FindByID(ctx, id)
	if err != nil {
		logger.Error().Err(err).Int64("paper_id", id).Msg("query paper failed")
		fmt.Fprintf(os.Stderr, "Failed to load paper: %v\n", err)
		return 1
	}
	if paper == nil {
		fmt.Fprintf(os.Stderr, "paper %d not found\n", id)
		return 1
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(paper); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	authors := make([]string, 0, len(paper.Authors))
	for _, a := range paper.Authors {
		authors = append(authors, a.Name)
	}

	rows := [][]string{
		{"id", strconv.FormatInt(paper.ID, 10)},
		{"title", truncateForTable(paper.Title, 96)},
		{"url", paper.URL},
		{"pdf_url", paper.PDFURL},
		{"category", paper.Category.Name},
		{"authors", truncateForTable(strings.Join(authors, ", "), 96)},
		{"comment", truncateForTable(paper.Comment, 96)},
		{"accepted", strconv.FormatBool(paper.Accepted)},
		{"published", paper.Published.UTC().Format(time.RFC3339)},
		{"updated", paper.Updated.UTC().Format(time.RFC3339)},
	}
	if err := writeTable([]string{"field", "value"}, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render table: %v\n", err)
		return 1
	}
	return 0
}
