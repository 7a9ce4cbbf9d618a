package arxiv

import (
	"fmt"
	"strings"
)

const apiBaseURL = "https://export.arxiv.org/api/query"

type SortBy string

const (
	SortByRelevance       SortBy = "relevance"
	SortByLastUpdatedDate SortBy = "lastUpdatedDate"
	SortBySubmittedDate   SortBy = "submittedDate"
)

type SortOrder string

const (
	SortOrderAscending  SortOrder = "ascending"
	SortOrderDescending SortOrder = "descending"
)

// Query describes one search against the export API. Categories is the only
// required field; the word lists narrow or exclude on title and abstract.
type Query struct {
	Categories           []string
	SearchTitleWords     []string
	ExcludeTitleWords    []string
	SearchAbstractWords  []string
	ExcludeAbstractWords []string
	SortBy               SortBy
	SortOrder            SortOrder
	Start                int
	MaxResults           int
}

// searchExpression joins the category and word clauses into the API's
// plus-separated boolean syntax, e.g.
// (cat:cs.CL+OR+cat:cs.LG)+AND+(ti:"survey")+ANDNOT+(abs:"demo").
func (q Query) searchExpression() string {
	clause := func(field string, words []string) string {
		terms := make([]string, 0, len(words))
		for _, w := range words {
			terms = append(terms, fmt.Sprintf("%s:%q", field, w))
		}
		return "(" + strings.Join(terms, "+OR+") + ")"
	}

	cats := make([]string, 0, len(q.Categories))
	for _, c := range q.Categories {
		cats = append(cats, "cat:"+c)
	}
	expr := "(" + strings.Join(cats, "+OR+") + ")"

	if len(q.SearchTitleWords) > 0 {
		expr += "+AND+" + clause("ti", q.SearchTitleWords)
	}
	if len(q.ExcludeTitleWords) > 0 {
		expr += "+ANDNOT+" + clause("ti", q.ExcludeTitleWords)
	}
	if len(q.SearchAbstractWords) > 0 {
		expr += "+AND+" + clause("abs", q.SearchAbstractWords)
	}
	if len(q.ExcludeAbstractWords) > 0 {
		expr += "+ANDNOT+" + clause("abs", q.ExcludeAbstractWords)
	}
	return expr
}

// URL renders the full request URL. The query-string part is percent-encoded
// except for the characters the API's boolean syntax relies on.
func (q Query) URL() string {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = SortBySubmittedDate
	}
	sortOrder := q.SortOrder
	if sortOrder == "" {
		sortOrder = SortOrderDescending
	}

	params := fmt.Sprintf(
		"?search_query=%s&sortBy=%s&sortOrder=%s&max_results=%d&start=%d",
		q.searchExpression(), sortBy, sortOrder, q.MaxResults, q.Start,
	)
	return apiBaseURL + encodeParams(params)
}

// encodeParams percent-encodes everything outside [A-Za-z0-9] and the small
// set of structural characters the query syntax needs verbatim.
func encodeParams(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z',
			'A' <= c && c <= 'Z',
			'0' <= c && c <= '9':
			b.WriteByte(c)
		case c == '?' || c == '&' || c == '=' || c == ':' ||
			c == '+' || c == '.' || c == '-' || c == '_':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}
