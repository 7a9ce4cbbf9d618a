package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"quill.fyi/relay/internal/cli"
	"quill.fyi/relay/internal/config"
	"quill.fyi/relay/internal/db"
)

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	schedule := fs.String("schedule", "0 7 * * *", "Cron schedule for pipeline runs")
	runTimeout := fs.Duration("run-timeout", 10*time.Minute, "Timeout for one pipeline run")
	immediate := fs.Bool("immediate", false, "Run the pipeline once at startup")
	sortBy, sortOrder, start, maxResults := addSearchFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "watch does not accept positional arguments")
		return 2
	}

	opts, err := parseSearchOptions(*sortBy, *sortOrder, *start, *maxResults)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, logger, err := bootstrap(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	pool, err := db.NewPool(dbCtx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("watch failed to connect to database")
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		return 1
	}
	defer pool.Close()

	p := newPipeline(pool, logger)

	runPipeline := func() {
		profiles, err := config.LoadProfiles(cfg.ProfilePath)
		if err != nil {
			logger.Error().Err(err).Msg("profile reload failed")
			return
		}

		runCtx, runCancel := context.WithTimeout(context.Background(), *runTimeout)
		defer runCancel()

		if err := runAllProfiles(runCtx, p, profiles.Arxiv, opts, false, logger); err != nil {
			logger.Error().Err(err).Msg("scheduled run failed")
			return
		}
		logger.Info().Msg("scheduled run complete")
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(*schedule, runPipeline); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid --schedule: %v\n", err)
		return 2
	}

	if *immediate {
		runPipeline()
	}

	scheduler.Start()
	logger.Info().Str("schedule", *schedule).Msg("watch started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	<-sigCh

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
	logger.Info().Msg("watch stopped")
	return 0
}
