package papers

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quill.fyi/relay/internal/db"
)

// Store owns all writes to authors, categories, papers and paper_authors.
// Save is not safe for concurrent callers; the pipeline runs one batch at a
// time and callers must keep it that way.
type Store struct {
	pool   *db.Pool
	logger zerolog.Logger
}

func NewStore(pool *db.Pool, logger zerolog.Logger) *Store {
	return &Store{
		pool:   pool,
		logger: logger,
	}
}

// Save persists a feed batch idempotently inside one transaction and
// returns the number of paper rows that did not exist before. Re-running
// the same batch inserts nothing and returns 0.
func (s *Store) Save(ctx context.Context, batch []Record) (int64, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	var inserted int64
	err := s.pool.GORM().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		authorIDs, err := upsertNames(tx, "authors", DistinctAuthors(batch))
		if err != nil {
			return err
		}
		categoryIDs, err := upsertNames(tx, "categories", DistinctCategories(batch))
		if err != nil {
			return err
		}

		rows, err := PaperRows(batch, categoryIDs)
		if err != nil {
			return err
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
		if res.Error != nil {
			return db.StoreErr("insert papers", res.Error)
		}
		inserted = res.RowsAffected

		paperIDs, err := paperIDsByURL(tx, URLs(batch))
		if err != nil {
			return err
		}
		links, err := LinkRows(batch, paperIDs, authorIDs)
		if err != nil {
			return err
		}
		if len(links) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
				return db.StoreErr("insert paper_authors", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Debug().
		Int("batch_size", len(batch)).
		Int64("inserted", inserted).
		Msg("paper batch saved")

	return inserted, nil
}

// upsertNames is the shared batch-upsert-by-natural-key primitive for the
// two (id, name) tables: insert-or-ignore the names, then resolve the full
// name->id map inside the caller's transaction.
func upsertNames(tx *gorm.DB, table string, names []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(names))
	if len(names) == 0 {
		return ids, nil
	}

	rows := make([]map[string]any, 0, len(names))
	for _, name := range names {
		rows = append(rows, map[string]any{"name": name})
	}
	if err := tx.Table(table).Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error; err != nil {
		return nil, db.StoreErr("insert "+table, err)
	}

	var got []struct {
		ID   int64
		Name string
	}
	if err := tx.Table(table).Select("id", "name").Where("name IN ?", names).Find(&got).Error; err != nil {
		return nil, db.StoreErr("resolve "+table+" ids", err)
	}
	for _, row := range got {
		ids[row.Name] = row.ID
	}
	for _, name := range names {
		if _, ok := ids[name]; !ok {
			return nil, db.InvariantErr("%s row %q missing after insert", table, name)
		}
	}
	return ids, nil
}

func paperIDsByURL(tx *gorm.DB, urls []string) (map[string]int64, error) {
	var got []struct {
		ID  int64
		URL string
	}
	if err := tx.Table("papers").Select("id", "url").Where("url IN ?", urls).Find(&got).Error; err != nil {
		return nil, db.StoreErr("resolve paper ids", err)
	}
	ids := make(map[string]int64, len(got))
	for _, row := range got {
		ids[row.URL] = row.ID
	}
	for _, url := range urls {
		if _, ok := ids[url]; !ok {
			return nil, db.InvariantErr("paper row %q missing after insert", url)
		}
	}
	return ids, nil
}
