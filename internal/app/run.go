package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"quill.fyi/relay/internal/cli"
	"quill.fyi/relay/internal/config"
)

func runOnce(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 10*time.Minute, "Command timeout")
	dryRun := fs.Bool("dry-run", false, "Print message bodies instead of delivering")
	sortBy, sortOrder, start, maxResults := addSearchFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run does not accept positional arguments")
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

	if err := runAllProfiles(ctx, newPipeline(pool, logger), profiles.Arxiv, opts, *dryRun, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
		return 1
	}
	return 0
}

// runAllProfiles ingests then notifies every profile in order, pausing
// between profiles for the export API rate limit.
func runAllProfiles(ctx context.Context, p *pipeline, profiles []config.Profile, opts searchOptions, dryRun bool, logger zerolog.Logger) error {
	for i, profile := range profiles {
		if i > 0 {
			time.Sleep(profileDelay)
		}

		ingested, err := p.ingestProfile(ctx, profile, opts)
		if err != nil {
			return fmt.Errorf("profile %d: %w", i, err)
		}

		notified, err := p.notifyProfile(ctx, profile, dryRun)
		if err != nil {
			return fmt.Errorf("profile %d: %w", i, err)
		}

		logger.Info().
			Str("destination", profile.Destination).
			Int("fetched", ingested.Fetched).
			Int64("inserted", ingested.Inserted).
			Int("sent", notified.Sent).
			Int("failed", notified.Failed).
			Msg("profile run complete")
	}
	return nil
}
