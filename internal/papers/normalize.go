package papers

import (
	"sort"

	"quill.fyi/relay/internal/db"
)

// DistinctAuthors returns the sorted distinct author names referenced by a
// batch. Matching is case-sensitive and exact.
func DistinctAuthors(batch []Record) []string {
	seen := make(map[string]struct{})
	for _, r := range batch {
		for _, a := range r.Authors {
			seen[a] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// DistinctCategories returns the sorted distinct category names referenced
// by a batch.
func DistinctCategories(batch []Record) []string {
	seen := make(map[string]struct{})
	for _, r := range batch {
		seen[r.Category] = struct{}{}
	}
	return sortedKeys(seen)
}

// PaperRows converts a batch into insertable paper rows, resolving each
// record's category through the supplied name->id map. A missing category
// means the normalizer and store went out of sync.
func PaperRows(batch []Record, categoryIDs map[string]int64) ([]db.Paper, error) {
	rows := make([]db.Paper, 0, len(batch))
	for _, r := range batch {
		categoryID, ok := categoryIDs[r.Category]
		if !ok {
			return nil, db.InvariantErr("category %q missing from id map", r.Category)
		}
		rows = append(rows, db.Paper{
			Title:      r.Title,
			URL:        r.URL,
			PDFURL:     r.PDFURL,
			CategoryID: categoryID,
			Summary:    r.Summary,
			Comment:    r.Comment,
			Accepted:   r.Accepted,
			Updated:    r.Updated,
			Published:  r.Published,
		})
	}
	return rows, nil
}

// LinkRows computes the paper-author link rows for a batch: per record, the
// cross product of its one paper id and all of its authors' ids.
func LinkRows(batch []Record, paperIDs, authorIDs map[string]int64) ([]db.PaperAuthor, error) {
	links := make([]db.PaperAuthor, 0, len(batch))
	for _, r := range batch {
		paperID, ok := paperIDs[r.URL]
		if !ok {
			return nil, db.InvariantErr("paper url %q missing from id map", r.URL)
		}
		for _, a := range r.Authors {
			authorID, ok := authorIDs[a]
			if !ok {
				return nil, db.InvariantErr("author %q missing from id map", a)
			}
			links = append(links, db.PaperAuthor{
				PaperID:  paperID,
				AuthorID: authorID,
			})
		}
	}
	return links, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
