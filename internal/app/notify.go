package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"quill.fyi/relay/internal/cli"
	"quill.fyi/relay/internal/config"
)

func runNotify(args []string) int {
	fs := flag.NewFlagSet("notify", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 5*time.Minute, "Command timeout")
	destination := fs.String("destination", "", "Only notify profiles for this destination")
	dryRun := fs.Bool("dry-run", false, "Print message bodies instead of delivering")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "notify does not accept positional arguments")
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
		ran++

		stats, err := p.notifyProfile(ctx, profile, *dryRun)
		if err != nil {
			logger.Error().Err(err).Int("profile", i).Msg("notify failed")
			fmt.Fprintf(os.Stderr, "Notify failed for profile %d: %v\n", i, err)
			return 1
		}
		fmt.Printf("destination=%s pending=%d sent=%d failed=%d\n",
			stats.Destination, stats.Pending, stats.Sent, stats.Failed)
	}

	if ran == 0 {
		fmt.Fprintln(os.Stderr, "no profile matched")
		return 2
	}
	return 0
}
