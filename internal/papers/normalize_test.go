package papers

import (
	"reflect"
	"testing"
	"time"
)

func testRecord(url, category string, authors ...string) Record {
	return Record{
		Title:     "title for " + url,
		URL:       url,
		PDFURL:    url + ".pdf",
		Category:  category,
		Authors:   authors,
		Summary:   "summary",
		Updated:   time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		Published: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestDistinctAuthorsDeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	batch := []Record{
		testRecord("u1", "cs.CL", "B. Jones", "A. Smith"),
		testRecord("u2", "cs.CL", "A. Smith", "C. Wu"),
	}

	got := DistinctAuthors(batch)
	want := []string{"A. Smith", "B. Jones", "C. Wu"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DistinctAuthors = %v, want %v", got, want)
	}
}

func TestDistinctCategoriesDeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	batch := []Record{
		testRecord("u1", "cs.LG", "A"),
		testRecord("u2", "cs.CL", "A"),
		testRecord("u3", "cs.CL", "A"),
	}

	got := DistinctCategories(batch)
	want := []string{"cs.CL", "cs.LG"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DistinctCategories = %v, want %v", got, want)
	}
}

func TestPaperRowsResolvesCategoryIDs(t *testing.T) {
	t.Parallel()

	batch := []Record{
		testRecord("u1", "cs.CL", "A"),
		testRecord("u2", "cs.LG", "A"),
	}
	categoryIDs := map[string]int64{"cs.CL": 10, "cs.LG": 20}

	rows, err := PaperRows(batch, categoryIDs)
	if err != nil {
		t.Fatalf("PaperRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].CategoryID != 10 || rows[1].CategoryID != 20 {
		t.Fatalf("category ids not resolved: %d, %d", rows[0].CategoryID, rows[1].CategoryID)
	}
	if rows[0].URL != "u1" || rows[1].URL != "u2" {
		t.Fatalf("rows out of order: %q, %q", rows[0].URL, rows[1].URL)
	}
}

func TestPaperRowsFailsOnUnknownCategory(t *testing.T) {
	t.Parallel()

	batch := []Record{testRecord("u1", "cs.CL", "A")}

	if _, err := PaperRows(batch, map[string]int64{}); err == nil {
		t.Fatal("expected error for unresolved category")
	}
}

func TestLinkRowsBuildsCrossProduct(t *testing.T) {
	t.Parallel()

	batch := []Record{
		testRecord("u1", "cs.CL", "A. Smith", "B. Jones"),
		testRecord("u2", "cs.CL", "A. Smith"),
	}
	paperIDs := map[string]int64{"u1": 1, "u2": 2}
	authorIDs := map[string]int64{"A. Smith": 7, "B. Jones": 8}

	links, err := LinkRows(batch, paperIDs, authorIDs)
	if err != nil {
		t.Fatalf("LinkRows failed: %v", err)
	}
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(links))
	}

	type pair struct{ p, a int64 }
	got := map[pair]bool{}
	for _, l := range links {
		got[pair{l.PaperID, l.AuthorID}] = true
	}
	for _, want := range []pair{{1, 7}, {1, 8}, {2, 7}} {
		if !got[want] {
			t.Fatalf("missing link %+v in %v", want, got)
		}
	}
}

func TestLinkRowsFailsOnUnknownAuthor(t *testing.T) {
	t.Parallel()

	batch := []Record{testRecord("u1", "cs.CL", "A. Smith")}

	_, err := LinkRows(batch, map[string]int64{"u1": 1}, map[string]int64{})
	if err == nil {
		t.Fatal("expected error for unresolved author")
	}
}
