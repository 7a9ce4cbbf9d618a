package db

import (
	"time"
)

// Author maps authors. Rows are immutable once created.
type Author struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:text;not null;uniqueIndex:idx_authors_name"`
}

func (Author) TableName() string { return "authors" }

// Category maps categories. Same lifecycle as Author.
type Category struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:text;not null;uniqueIndex:idx_categories_name"`
}

func (Category) TableName() string { return "categories" }

// Paper maps papers. The URL is the natural key; a row is never updated
// after insertion, so re-ingesting the same URL is a no-op.
type Paper struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Title      string    `gorm:"column:title;type:text;not null"`
	URL        string    `gorm:"column:url;type:text;not null;uniqueIndex:idx_papers_url"`
	PDFURL     string    `gorm:"column:pdf_url;type:text;not null"`
	CategoryID int64     `gorm:"column:category_id;not null;index"`
	Summary    string    `gorm:"column:summary;type:text;not null"`
	Comment    string    `gorm:"column:comment;type:text;not null"`
	Accepted   bool      `gorm:"column:accepted;not null"`
	Updated    time.Time `gorm:"column:updated;not null"`
	Published  time.Time `gorm:"column:published;not null"`
	Created    time.Time `gorm:"column:created;not null;autoCreateTime"`
}

func (Paper) TableName() string { return "papers" }

// PaperAuthor maps the papers<->authors link table. Links are only ever
// added, never removed.
type PaperAuthor struct {
	PaperID  int64 `gorm:"column:paper_id;primaryKey;autoIncrement:false"`
	AuthorID int64 `gorm:"column:author_id;primaryKey;autoIncrement:false"`
}

func (PaperAuthor) TableName() string { return "paper_authors" }

// NotificationRecord maps notification_records. The (paper_id, destination)
// pair is unique at the schema level; sent transitions false->true only.
type NotificationRecord struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	PaperID     int64     `gorm:"column:paper_id;not null;uniqueIndex:idx_notification_pair"`
	Destination string    `gorm:"column:destination;type:text;not null;uniqueIndex:idx_notification_pair"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false"`
	Sent        bool      `gorm:"column:sent;not null;default:false"`
	Created     time.Time `gorm:"column:created;not null;autoCreateTime"`
}

func (NotificationRecord) TableName() string { return "notification_records" }

func autoMigrateModels() []any {
	return []any{
		&Author{},
		&Category{},
		&Paper{},
		&PaperAuthor{},
		&NotificationRecord{},
	}
}
