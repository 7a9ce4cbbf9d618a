package papers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm/logger"

	"quill.fyi/relay/internal/db"
)

func newTestPool(t *testing.T) *db.Pool {
	t.Helper()

	pool, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "relay.db"), logger.Silent)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = pool.Close() })
	return pool
}

func countRows(t *testing.T, pool *db.Pool, table string) int64 {
	t.Helper()

	var count int64
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

func sharedAuthorBatch() []Record {
	published := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	return []Record{
		{
			Title:     "Attention Mechanisms Revisited",
			URL:       "http://arxiv.org/abs/2602.00001v1",
			PDFURL:    "http://arxiv.org/pdf/2602.00001v1",
			Category:  "cs.CL",
			Authors:   []string{"A. Smith", "B. Jones"},
			Summary:   "We revisit attention.",
			Comment:   "Accepted at ACL 2026",
			Accepted:  true,
			Updated:   published,
			Published: published,
		},
		{
			Title:     "Sparse Mixture Decoding",
			URL:       "http://arxiv.org/abs/2602.00002v1",
			PDFURL:    "http://arxiv.org/pdf/2602.00002v1",
			Category:  "cs.CL",
			Authors:   []string{"A. Smith"},
			Summary:   "Decoding with sparse mixtures.",
			Comment:   "",
			Accepted:  false,
			Updated:   published.Add(time.Hour),
			Published: published,
		},
	}
}

func TestSaveStoresBatchOnce(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	store := NewStore(pool, zerolog.Nop())
	ctx := context.Background()

	inserted, err := store.Save(ctx, sharedAuthorBatch())
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("first save inserted = %d, want 2", inserted)
	}

	if got := countRows(t, pool, "authors"); got != 2 {
		t.Fatalf("authors = %d, want 2", got)
	}
	if got := countRows(t, pool, "categories"); got != 1 {
		t.Fatalf("categories = %d, want 1", got)
	}
	if got := countRows(t, pool, "papers"); got != 2 {
		t.Fatalf("papers = %d, want 2", got)
	}
	if got := countRows(t, pool, "paper_authors"); got != 3 {
		t.Fatalf("paper_authors = %d, want 3", got)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	store := NewStore(pool, zerolog.Nop())
	ctx := context.Background()

	if _, err := store.Save(ctx, sharedAuthorBatch()); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	inserted, err := store.Save(ctx, sharedAuthorBatch())
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("second save inserted = %d, want 0", inserted)
	}

	if got := countRows(t, pool, "papers"); got != 2 {
		t.Fatalf("papers after re-save = %d, want 2", got)
	}
	if got := countRows(t, pool, "paper_authors"); got != 3 {
		t.Fatalf("paper_authors after re-save = %d, want 3", got)
	}
}

func TestSaveCountsOnlyNewPapers(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	store := NewStore(pool, zerolog.Nop())
	ctx := context.Background()

	batch := sharedAuthorBatch()
	if _, err := store.Save(ctx, batch[:1]); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	inserted, err := store.Save(ctx, batch)
	if err != nil {
		t.Fatalf("overlapping save failed: %v", err)
	}
	if inserted != 1 {
		t.Fatalf("overlapping save inserted = %d, want 1", inserted)
	}
}

func TestSaveEmptyBatch(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	store := NewStore(pool, zerolog.Nop())

	inserted, err := store.Save(context.Background(), nil)
	if err != nil {
		t.Fatalf("empty save failed: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("empty save inserted = %d, want 0", inserted)
	}
}

func TestReaderFindByID(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	store := NewStore(pool, zerolog.Nop())
	reader := NewReader(pool)
	ctx := context.Background()

	if _, err := store.Save(ctx, sharedAuthorBatch()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	stored, err := reader.FindByURLs(ctx, []string{"http://arxiv.org/abs/2602.00001v1"})
	if err != nil {
		t.Fatalf("FindByURLs failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("FindByURLs returned %d papers, want 1", len(stored))
	}

	paper, err := reader.FindByID(ctx, stored[0].ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if paper == nil {
		t.Fatal("FindByID returned nil for existing paper")
	}
	if paper.Title != "Attention Mechanisms Revisited" {
		t.Fatalf("title = %q", paper.Title)
	}
	if paper.Category.Name != "cs.CL" {
		t.Fatalf("category = %q", paper.Category.Name)
	}
	if len(paper.Authors) != 2 {
		t.Fatalf("authors = %d, want 2", len(paper.Authors))
	}
	if !paper.Accepted {
		t.Fatal("accepted flag lost")
	}
}

func TestReaderFindByIDAbsent(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	reader := NewReader(pool)

	paper, err := reader.FindByID(context.Background(), 12345)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if paper != nil {
		t.Fatalf("expected nil for absent id, got %+v", paper)
	}
}

func TestReaderFindByURLsSkipsUnknown(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	store := NewStore(pool, zerolog.Nop())
	reader := NewReader(pool)
	ctx := context.Background()

	if _, err := store.Save(ctx, sharedAuthorBatch()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := reader.FindByURLs(ctx, []string{
		"http://arxiv.org/abs/2602.00002v1",
		"http://arxiv.org/abs/9999.99999v1",
	})
	if err != nil {
		t.Fatalf("FindByURLs failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("FindByURLs returned %d papers, want 1", len(got))
	}
	if got[0].URL != "http://arxiv.org/abs/2602.00002v1" {
		t.Fatalf("unexpected url %q", got[0].URL)
	}
}
