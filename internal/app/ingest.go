package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"quill.fyi/relay/internal/arxiv"
	"quill.fyi/relay/internal/cli"
	"quill.fyi/relay/internal/config"
)

// profileDelay spaces consecutive export API calls to respect the
// published rate limit.
const profileDelay = 3 * time.Second

func addSearchFlags(fs *flag.FlagSet) (sortBy, sortOrder *string, start, maxResults *int) {
	sortBy = fs.String("sort-by", string(arxiv.SortBySubmittedDate), "Sort field: relevance, lastUpdatedDate or submittedDate")
	sortOrder = fs.String("sort-order", string(arxiv.SortOrderDescending), "Sort order: ascending or descending")
	start = fs.Int("start", 0, "Result offset")
	maxResults = fs.Int("max-results", 100, "Maximum results per search")
	return sortBy, sortOrder, start, maxResults
}

func parseSearchOptions(sortBy, sortOrder string, start, maxResults int) (searchOptions, error) {
	opts := searchOptions{Start: start, MaxResults: maxResults}

	switch arxiv.SortBy(sortBy) {
	case arxiv.SortByRelevance, arxiv.SortByLastUpdatedDate, arxiv.SortBySubmittedDate:
		opts.SortBy = arxiv.SortBy(sortBy)
	default:
		return opts, fmt.Errorf("--sort-by must be relevance, lastUpdatedDate or submittedDate")
	}

	switch arxiv.SortOrder(sortOrder) {
	case arxiv.SortOrderAscending, arxiv.SortOrderDescending:
		opts.SortOrder = arxiv.SortOrder(sortOrder)
	default:
		return opts, fmt.Errorf("--sort-order must be ascending or descending")
	}

	if start < 0 {
		return opts, fmt.Errorf("--start must be >= 0")
	}
	if maxResults < 1 || maxResults > 2000 {
		return opts, fmt.Errorf("--max-results must be between 1 and 2000")
	}
	return opts, nil
}

func runIngest(args []string) int {
	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 5*time.Minute, "Command timeout")
	destination := fs.String("destination", "", "Only ingest profiles for this destination")
	sortBy, sortOrder, start, maxResults := addSearchFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "ingest does not accept positional arguments")
		return 2
	}

	opts, err := parseSearchOptions(*sortBy, *sortOrder, *start, *maxResults)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx, cancel, pool, cfg, logger, err := connectPool(*timeout, envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cancel()
	defer pool.Close()

	profiles, err := config.LoadProfiles(cfg.ProfilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load profiles: %v\n", err)
		return 1
	}

	p := newPipeline(pool, logger)

	ran := 0
	for i, profile := range profiles.Arxiv {
		if *destination != "" && profile.Destination != *destination {
			continue
		}
		if ran > 0 {
			time.Sleep(profileDelay)
		}
		ran++

		stats, err := p.ingestProfile(ctx, profile, opts)
		if err != nil {
			logger.Error().Err(err).Int("profile", i).Msg("ingest failed")
			fmt.Fprintf(os.Stderr, "Ingest failed for profile %d: %v\n", i, err)
			return 1
		}
		fmt.Printf("destination=%s fetched=%d inserted=%d enqueued=%d\n",
			stats.Destination, stats.Fetched, stats.Inserted, stats.Enqueued)
	}

	if ran == 0 {
		fmt.Fprintln(os.Stderr, "no profile matched")
		return 2
	}
	return 0
}
