package papers

import (
	"context"
	"fmt"

	"quill.fyi/relay/internal/db"
)

// Reader is the read side over papers and their joins. It never writes.
type Reader struct {
	pool *db.Pool
}

func NewReader(pool *db.Pool) *Reader {
	return &Reader{pool: pool}
}

// FindByID loads one paper with its category and full author list. A
// missing id yields (nil, nil), not an error.
func (r *Reader) FindByID(ctx context.Context, id int64) (*Paper, error) {
	const q = `
SELECT
	p.id,
	p.title,
	p.url,
	p.pdf_url,
	p.summary,
	p.comment,
	p.accepted,
	p.updated,
	p.published,
	c.id,
	c.name
FROM papers p
JOIN categories c
	ON c.id = p.category_id
WHERE p.id = ?
`

	var paper Paper
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&paper.ID,
		&paper.Title,
		&paper.URL,
		&paper.PDFURL,
		&paper.Summary,
		&paper.Comment,
		&paper.Accepted,
		&paper.Updated,
		&paper.Published,
		&paper.Category.ID,
		&paper.Category.Name,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, db.StoreErr("query paper by id", err)
	}

	const authorsQ = `
SELECT
	a.id,
	a.name
FROM paper_authors pa
JOIN authors a
	ON a.id = pa.author_id
WHERE pa.paper_id = ?
ORDER BY a.id
`

	rows, err := r.pool.Query(ctx, authorsQ, id)
	if err != nil {
		return nil, db.StoreErr("query paper authors", err)
	}
	defer rows.Close()

	for rows.Next() {
		var author Author
		if err := rows.Scan(&author.ID, &author.Name); err != nil {
			return nil, fmt.Errorf("scan author row: %w", err)
		}
		paper.Authors = append(paper.Authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, db.StoreErr("iterate author rows", err)
	}

	return &paper, nil
}

// FindByURLs loads the papers matching any of the given URLs, joined with
// their category; authors are not loaded. The result order is unspecified
// and unknown URLs are silently skipped.
func (r *Reader) FindByURLs(ctx context.Context, urls []string) ([]Paper, error) {
	if len(urls) == 0 {
		return []Paper{}, nil
	}

	const q = `
SELECT
	p.id,
	p.title,
	p.url,
	p.pdf_url,
	p.summary,
	p.comment,
	p.accepted,
	p.updated,
	p.published,
	c.id,
	c.name
FROM papers p
JOIN categories c
	ON c.id = p.category_id
WHERE p.url IN ?
`

	rows, err := r.pool.Query(ctx, q, urls)
	if err != nil {
		return nil, db.StoreErr("query papers by urls", err)
	}
	defer rows.Close()

	papers := make([]Paper, 0, len(urls))
	for rows.Next() {
		var paper Paper
		if err := rows.Scan(
			&paper.ID,
			&paper.Title,
			&paper.URL,
			&paper.PDFURL,
			&paper.Summary,
			&paper.Comment,
			&paper.Accepted,
			&paper.Updated,
			&paper.Published,
			&paper.Category.ID,
			&paper.Category.Name,
		); err != nil {
			return nil, fmt.Errorf("scan paper row: %w", err)
		}
		papers = append(papers, paper)
	}
	if err := rows.Err(); err != nil {
		return nil, db.StoreErr("iterate paper rows", err)
	}

	return papers, nil
}
