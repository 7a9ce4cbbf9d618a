package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"quill.fyi/relay/internal/arxiv"
	"quill.fyi/relay/internal/config"
	"quill.fyi/relay/internal/db"
	"quill.fyi/relay/internal/metrics"
	"quill.fyi/relay/internal/notify"
	"quill.fyi/relay/internal/papers"
	"quill.fyi/relay/internal/slack"
)

// pipeline wires the fetch, store and queue stages for one process. Commands
// share it so ingest, notify and the combined run behave identically.
type pipeline struct {
	store  *papers.Store
	reader *papers.Reader
	queue  *notify.Queue
	arxiv  *arxiv.Client
	logger zerolog.Logger
}

func newPipeline(pool *db.Pool, logger zerolog.Logger) *pipeline {
	return &pipeline{
		store:  papers.NewStore(pool, logger),
		reader: papers.NewReader(pool),
		queue:  notify.NewQueue(pool, logger),
		arxiv:  arxiv.NewClient(logger),
		logger: logger,
	}
}

type searchOptions struct {
	SortBy     arxiv.SortBy
	SortOrder  arxiv.SortOrder
	Start      int
	MaxResults int
}

type ingestStats struct {
	Destination string `json:"destination"`
	Fetched     int    `json:"fetched"`
	Inserted    int64  `json:"inserted"`
	Enqueued    int64  `json:"enqueued"`
}

// ingestProfile fetches one profile's search, stores the batch and enqueues
// a notification per stored paper for the profile's destination.
func (p *pipeline) ingestProfile(ctx context.Context, profile config.Profile, opts searchOptions) (ingestStats, error) {
	stats := ingestStats{Destination: profile.Destination}

	query := arxiv.Query{
		Categories:           profile.Categories,
		SearchTitleWords:     profile.SearchTitleWords,
		ExcludeTitleWords:    profile.ExcludeTitleWords,
		SearchAbstractWords:  profile.SearchAbstractWords,
		ExcludeAbstractWords: profile.ExcludeAbstractWords,
		SortBy:               opts.SortBy,
		SortOrder:            opts.SortOrder,
		Start:                opts.Start,
		MaxResults:           opts.MaxResults,
	}

	records, err := p.arxiv.Search(ctx, query, profile.FilterByMainCategory)
	if err != nil {
		return stats, fmt.Errorf("search %s: %w", profile.Destination, err)
	}
	stats.Fetched = len(records)

	inserted, err := p.store.Save(ctx, records)
	if err != nil {
		return stats, fmt.Errorf("save batch: %w", err)
	}
	stats.Inserted = inserted
	metrics.PapersIngested.Add(float64(inserted))

	stored, err := p.reader.FindByURLs(ctx, papers.URLs(records))
	if err != nil {
		return stats, fmt.Errorf("read back batch: %w", err)
	}

	pending := make([]notify.Pending, 0, len(stored))
	for _, paper := range stored {
		pending = append(pending, notify.Pending{
			PaperID:     paper.ID,
			Destination: profile.Destination,
			Updated:     paper.Updated,
		})
	}

	enqueued, err := p.queue.Enqueue(ctx, pending)
	if err != nil {
		return stats, fmt.Errorf("enqueue batch: %w", err)
	}
	stats.Enqueued = enqueued
	metrics.NotificationsEnqueued.Add(float64(enqueued))

	p.logger.Info().
		Str("destination", profile.Destination).
		Int("fetched", stats.Fetched).
		Int64("inserted", stats.Inserted).
		Int64("enqueued", stats.Enqueued).
		Msg("profile ingested")

	return stats, nil
}

type notifyStats struct {
	Destination string `json:"destination"`
	Pending     int    `json:"pending"`
	Sent        int    `json:"sent"`
	Failed      int    `json:"failed"`
}

// notifyProfile delivers the profile's pending notifications in keyword
// score order. A failed delivery is logged and skipped; its record stays
// pending for the next run. With dryRun set, bodies are printed instead of
// posted and nothing is marked sent.
func (p *pipeline) notifyProfile(ctx context.Context, profile config.Profile, dryRun bool) (notifyStats, error) {
	stats := notifyStats{Destination: profile.Destination}

	pendingPapers, err := p.queue.ListPending(ctx, profile.Destination)
	if err != nil {
		return stats, fmt.Errorf("list pending for %s: %w", profile.Destination, err)
	}
	stats.Pending = len(pendingPapers)
	if len(pendingPapers) == 0 {
		return stats, nil
	}

	messages, err := notify.BuildMessages(pendingPapers, profile.StarKeywords)
	if err != nil {
		return stats, fmt.Errorf("build messages: %w", err)
	}

	if dryRun {
		for _, message := range messages {
			fmt.Printf("%s\t%s\n", profile.Destination, message.Paper.URL)
			fmt.Println(message.Body)
		}
		return stats, nil
	}

	client := slack.NewClient(profile.Destination, p.logger)
	for _, message := range messages {
		if err := client.Send(ctx, message.Body); err != nil {
			stats.Failed++
			metrics.DeliveryFailures.Inc()
			p.logger.Error().
				Err(err).
				Str("destination", profile.Destination).
				Int64("paper_id", message.Paper.ID).
				Msg("delivery failed")
			continue
		}

		if _, err := p.queue.MarkSent(ctx, profile.Destination, message.Paper.ID); err != nil {
			return stats, fmt.Errorf("mark sent: %w", err)
		}
		stats.Sent++
		metrics.NotificationsSent.Inc()
	}

	p.logger.Info().
		Str("destination", profile.Destination).
		Int("pending", stats.Pending).
		Int("sent", stats.Sent).
		Int("failed", stats.Failed).
		Msg("profile notified")

	return stats, nil
}
