package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quill/internal/models/db_models"
)

type DocumentFilter struct {
	UserID     uuid.UUID
	FolderID   *uuid.UUID
	StylesOnly bool
	Page
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *db_models.Document) error
	FindByIdAndUser(ctx context.Context, id, userID uuid.UUID) (*db_models.Document, error)
	List(ctx context.Context, filter DocumentFilter) ([]db_models.Document, int64, error)
	UpdateFields(ctx context.Context, doc *db_models.Document, fields map[string]interface{}) error
	Delete(ctx context.Context, doc *db_models.Document) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *db_models.Document) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	return translate(r.db.WithContext(ctx).Create(doc).Error)
}

func (r *documentRepository) FindByIdAndUser(ctx context.Context, id, userID uuid.UUID) (*db_models.Document, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}

	var doc db_models.Document
	err := r.db.WithContext(ctx).First(&doc, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// List returns one page of the user's documents, pinned first and then most
// recently updated, together with the total match count.
func (r *documentRepository) List(ctx context.Context, filter DocumentFilter) ([]db_models.Document, int64, error) {
	if err := requireDB(r.db); err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Model(&db_models.Document{}).
		Where("documents.user_id = ?", filter.UserID)
	if filter.StylesOnly {
		query = query.Where("documents.is_style = ?", true)
	}
	if filter.FolderID != nil {
		query = query.
			Joins("JOIN document_folders ON document_folders.document_id = documents.id").
			Where("document_folders.folder_id = ?", *filter.FolderID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var docs []db_models.Document
	err := query.
		Order("documents.pinned DESC").
		Order("documents.updated_at DESC").
		Limit(filter.PageSize).
		Offset(filter.offset()).
		Find(&docs).Error
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (r *documentRepository) UpdateFields(ctx context.Context, doc *db_models.Document, fields map[string]interface{}) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Model(doc).Updates(fields).Error)
}

// Delete removes the document together with its folder memberships.
func (r *documentRepository) Delete(ctx context.Context, doc *db_models.Document) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", doc.ID).Delete(&db_models.DocumentFolder{}).Error; err != nil {
			return err
		}
		return tx.Delete(doc).Error
	})
}
