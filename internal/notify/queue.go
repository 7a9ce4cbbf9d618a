package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm/clause"

	"quill.fyi/relay/internal/db"
	"quill.fyi/relay/internal/papers"
)

// Pending is one (paper, destination) pair to be enqueued.
type Pending struct {
	PaperID     int64
	Destination string
	Updated     time.Time
}

// Queue owns the notification_records table. Per (paper_id, destination)
// pair the record moves ABSENT -> PENDING -> SENT; the pair is unique at
// the schema level, so re-enqueueing is a no-op and mark-sent can never
// touch more than one row. Every operation is its own short transaction: a
// crash between delivery and MarkSent leaves the record PENDING and the
// next run delivers again.
type Queue struct {
	pool   *db.Pool
	logger zerolog.Logger
}

func NewQueue(pool *db.Pool, logger zerolog.Logger) *Queue {
	return &Queue{
		pool:   pool,
		logger: logger,
	}
}

// Enqueue inserts PENDING records for the given pairs, ignoring pairs that
// already exist, and returns the number of newly created records.
func (q *Queue) Enqueue(ctx context.Context, pending []Pending) (int64, error) {
	if len(pending) == 0 {
		return 0, nil
	}

	rows := make([]db.NotificationRecord, 0, len(pending))
	for _, p := range pending {
		rows = append(rows, db.NotificationRecord{
			PaperID:     p.PaperID,
			Destination: p.Destination,
			UpdatedAt:   p.Updated.UTC(),
		})
	}

	res := q.pool.GORM().WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return 0, db.StoreErr("enqueue notifications", res.Error)
	}

	q.logger.Debug().
		Int("requested", len(pending)).
		Int64("created", res.RowsAffected).
		Msg("notifications enqueued")

	return res.RowsAffected, nil
}

// ListPending returns the papers (joined with their category) whose record
// for the destination is still PENDING. Authors are not loaded.
func (q *Queue) ListPending(ctx context.Context, destination string) ([]papers.Paper, error) {
	const sel = `
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
FROM notification_records n
JOIN papers p
	ON p.id = n.paper_id
JOIN categories c
	ON c.id = p.category_id
WHERE n.destination = ?
  AND n.sent = ?
ORDER BY n.id
`

	rows, err := q.pool.Query(ctx, sel, destination, false)
	if err != nil {
		return nil, db.StoreErr("query pending notifications", err)
	}
	defer rows.Close()

	pending := make([]papers.Paper, 0, 16)
	for rows.Next() {
		var paper papers.Paper
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
			return nil, fmt.Errorf("scan pending paper row: %w", err)
		}
		pending = append(pending, paper)
	}
	if err := rows.Err(); err != nil {
		return nil, db.StoreErr("iterate pending rows", err)
	}

	return pending, nil
}

// MarkSent flips the pair's record PENDING -> SENT and reports how many
// rows changed: 1 the first time, 0 if the record is absent or already
// SENT. The transition is never reversed.
func (q *Queue) MarkSent(ctx context.Context, destination string, paperID int64) (int64, error) {
	res := q.pool.GORM().WithContext(ctx).
		Model(&db.NotificationRecord{}).
		Where("destination = ? AND paper_id = ? AND sent = ?", destination, paperID, false).
		Update("sent", true)
	if res.Error != nil {
		return 0, db.StoreErr("mark notification sent", res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the pair's record unconditionally; deleting an absent
// record succeeds.
func (q *Queue) Delete(ctx context.Context, destination string, paperID int64) error {
	err := q.pool.GORM().WithContext(ctx).
		Where("destination = ? AND paper_id = ?", destination, paperID).
		Delete(&db.NotificationRecord{}).Error
	if err != nil {
		return db.StoreErr("delete notification", err)
	}
	return nil
}
