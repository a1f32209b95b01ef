package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Document struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Title   string
	Content string  `gorm:"type:text"`
	Prompt  *string `gorm:"type:text"`

	// Generation settings the content was produced with.
	MarketTier      *string
	CharacterLength *int
	WordLength      *int
	GradeLevel      *string
	Benchmark       *string
	AvoidWords      pq.StringArray `gorm:"type:text[]"`

	// Style metadata, set on documents produced by style generation.
	WritingStyle *string `gorm:"type:text"`
	StyleTitle   *string
	StyleSummary *string `gorm:"type:text"`
	IsStyle      bool    `gorm:"index"`

	Pinned bool
}

type Folder struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name   string    `gorm:"not null"`
	Pinned bool
}

// DocumentFolder is the membership join row; the composite key keeps one
// row per (document, folder) pair.
type DocumentFolder struct {
	DocumentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	FolderID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt  int64     `gorm:"autoCreateTime"`
}
