package arxiv

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"quill.fyi/relay/internal/papers"
)

const (
	fetchTimeout = 30 * time.Second
	entryTimeFmt = "2006-01-02T15:04:05Z"
)

// Failure kinds. ErrTransport covers the HTTP round trip, ErrParse covers
// a response body that is not a well-formed feed.
var (
	ErrTransport = errors.New("arxiv: transport failure")
	ErrParse     = errors.New("arxiv: malformed feed")
)

// Client fetches search results from the arXiv export API and maps the Atom
// entries into feed records.
type Client struct {
	http   *http.Client
	logger zerolog.Logger
}

func NewClient(logger zerolog.Logger) *Client {
	return &Client{
		http:   &http.Client{Timeout: fetchTimeout},
		logger: logger,
	}
}

// Atom feed shapes for the export API. Only the fields the relay maps are
// declared; primary_category sits in the arxiv namespace but matches on the
// local name.

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID              string       `xml:"id"`
	Updated         string       `xml:"updated"`
	Published       string       `xml:"published"`
	Title           string       `xml:"title"`
	Summary         string       `xml:"summary"`
	Authors         []atomAuthor `xml:"author"`
	Comment         string       `xml:"comment"`
	Links           []atomLink   `xml:"link"`
	PrimaryCategory atomCategory `xml:"primary_category"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Title string `xml:"title,attr"`
	Href  string `xml:"href,attr"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// Search runs the query and returns the mapped records in feed order. When
// filterByMainCategory is set, entries whose primary category is not one of
// the query's categories are dropped.
func (c *Client) Search(ctx context.Context, query Query, filterByMainCategory bool) ([]papers.Record, error) {
	url := query.URL()
	c.logger.Debug().Str("url", url).Msg("querying export api")

	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	records := make([]papers.Record, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		record := mapEntry(entry)
		if filterByMainCategory && !slices.Contains(query.Categories, record.Category) {
			continue
		}
		records = append(records, record)
	}

	c.logger.Debug().
		Int("entries", len(feed.Entries)).
		Int("records", len(records)).
		Msg("feed fetched")

	return records, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http %s", ErrTransport, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return body, nil
}

// mapEntry normalizes one Atom entry: newlines are flattened, the PDF link
// is resolved with an abs->pdf fallback, and the accepted flag is derived
// from the submitter comment.
func mapEntry(entry atomEntry) papers.Record {
	flatten := func(s string) string { return strings.ReplaceAll(s, "\n", " ") }
	strip := func(s string) string { return strings.ReplaceAll(s, "\n", "") }

	url := strip(entry.ID)

	pdfURL := strings.Replace(url, "/abs/", "/pdf/", 1)
	for _, link := range entry.Links {
		if link.Title == "pdf" {
			pdfURL = strip(link.Href)
			break
		}
	}

	authors := make([]string, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		authors = append(authors, flatten(a.Name))
	}

	comment := flatten(entry.Comment)
	lower := strings.ToLower(comment)
	accepted := strings.Contains(lower, "accept") || strings.Contains(lower, "appear")

	updated, _ := time.Parse(entryTimeFmt, entry.Updated)
	published, _ := time.Parse(entryTimeFmt, entry.Published)

	return papers.Record{
		Title:     flatten(entry.Title),
		URL:       url,
		PDFURL:    pdfURL,
		Category:  strip(entry.PrimaryCategory.Term),
		Authors:   authors,
		Summary:   flatten(entry.Summary),
		Comment:   comment,
		Accepted:  accepted,
		Updated:   updated,
		Published: published,
	}
}
