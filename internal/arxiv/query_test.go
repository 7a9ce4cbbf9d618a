package arxiv

import (
	"strings"
	"testing"
)

func TestSearchExpressionCategoriesOnly(t *testing.T) {
	t.Parallel()

	q := Query{Categories: []string{"cs.CL", "cs.LG"}}
	got := q.searchExpression()
	want := "(cat:cs.CL+OR+cat:cs.LG)"
	if got != want {
		t.Fatalf("searchExpression = %q, want %q", got, want)
	}
}

func TestSearchExpressionFullClauses(t *testing.T) {
	t.Parallel()

	q := Query{
		Categories:           []string{"cs.CL"},
		SearchTitleWords:     []string{"survey", "review"},
		ExcludeTitleWords:    []string{"demo"},
		SearchAbstractWords:  []string{"benchmark"},
		ExcludeAbstractWords: []string{"workshop"},
	}

	got := q.searchExpression()
	want := `(cat:cs.CL)+AND+(ti:"survey"+OR+ti:"review")+ANDNOT+(ti:"demo")+AND+(abs:"benchmark")+ANDNOT+(abs:"workshop")`
	if got != want {
		t.Fatalf("searchExpression = %q, want %q", got, want)
	}
}

func TestURLDefaultsAndEncoding(t *testing.T) {
	t.Parallel()

	q := Query{
		Categories:       []string{"cs.CL"},
		SearchTitleWords: []string{"large language model"},
		MaxResults:       50,
		Start:            10,
	}

	got := q.URL()
	if !strings.HasPrefix(got, "https://export.arxiv.org/api/query?search_query=") {
		t.Fatalf("unexpected url prefix: %q", got)
	}
	if !strings.Contains(got, "sortBy=submittedDate") {
		t.Fatalf("missing default sortBy: %q", got)
	}
	if !strings.Contains(got, "sortOrder=descending") {
		t.Fatalf("missing default sortOrder: %q", got)
	}
	if !strings.Contains(got, "max_results=50") || !strings.Contains(got, "start=10") {
		t.Fatalf("missing paging params: %q", got)
	}
	if strings.Contains(got, `"`) || strings.Contains(got, " ") {
		t.Fatalf("url not encoded: %q", got)
	}
	if !strings.Contains(got, "ti:%22large%20language%20model%22") {
		t.Fatalf("title phrase not encoded as expected: %q", got)
	}
}

func TestEncodeParamsKeepsStructuralCharacters(t *testing.T) {
	t.Parallel()

	got := encodeParams("?a=b&c:d+e.f-g_h")
	if got != "?a=b&c:d+e.f-g_h" {
		t.Fatalf("structural characters were encoded: %q", got)
	}

	got = encodeParams(`"x y"`)
	if got != "%22x%20y%22" {
		t.Fatalf("encodeParams = %q", got)
	}
}
