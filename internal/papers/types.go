package papers

import (
	"time"
)

// Record is one paper's metadata as it arrives from the search feed,
// before any identity has been assigned.
type Record struct {
	Title     string
	URL       string
	PDFURL    string
	Category  string
	Authors   []string
	Summary   string
	Comment   string
	Accepted  bool
	Updated   time.Time
	Published time.Time
}

// Author is a persisted author row.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category is a persisted category row.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Paper is the read model: a persisted paper joined with its category and,
// where the query loads them, its authors.
type Paper struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	PDFURL    string    `json:"pdf_url"`
	Category  Category  `json:"category"`
	Authors   []Author  `json:"authors,omitempty"`
	Summary   string    `json:"summary"`
	Comment   string    `json:"comment"`
	Accepted  bool      `json:"accepted"`
	Updated   time.Time `json:"updated"`
	Published time.Time `json:"published"`
}

// URLs returns the natural keys of a batch, in encounter order.
func URLs(batch []Record) []string {
	urls := make([]string, 0, len(batch))
	for _, r := range batch {
		urls = append(urls, r.URL)
	}
	return urls
}
