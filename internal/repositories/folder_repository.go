package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quill/internal/models/db_models"
)

type FolderRepository interface {
	Create(ctx context.Context, folder *db_models.Folder) error
	FindByIdAndUser(ctx context.Context, id, userID uuid.UUID) (*db_models.Folder, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Folder, error)
	UpdateFields(ctx context.Context, folder *db_models.Folder, fields map[string]interface{}) error
	Delete(ctx context.Context, folder *db_models.Folder) error

	AssignDocument(ctx context.Context, folderID, documentID uuid.UUID) error
	UnassignDocument(ctx context.Context, folderID, documentID uuid.UUID) error
	CountDocuments(ctx context.Context, folderID uuid.UUID) (int64, error)
}

type folderRepository struct {
	db *gorm.DB
}

func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Create(ctx context.Context, folder *db_models.Folder) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	return translate(r.db.WithContext(ctx).Create(folder).Error)
}

func (r *folderRepository) FindByIdAndUser(ctx context.Context, id, userID uuid.UUID) (*db_models.Folder, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}

	var folder db_models.Folder
	err := r.db.WithContext(ctx).First(&folder, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &folder, nil
}

func (r *folderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Folder, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}

	var folders []db_models.Folder
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("pinned DESC").
		Order("name ASC").
		Find(&folders).Error
	return folders, err
}

func (r *folderRepository) UpdateFields(ctx context.Context, folder *db_models.Folder, fields map[string]interface{}) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Model(folder).Updates(fields).Error)
}

// Delete removes the folder and its memberships; the documents stay.
func (r *folderRepository) Delete(ctx context.Context, folder *db_models.Folder) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("folder_id = ?", folder.ID).Delete(&db_models.DocumentFolder{}).Error; err != nil {
			return err
		}
		return tx.Delete(folder).Error
	})
}

// AssignDocument is idempotent: a second assignment of the same pair is a no-op.
func (r *folderRepository) AssignDocument(ctx context.Context, folderID, documentID uuid.UUID) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	link := db_models.DocumentFolder{DocumentID: documentID, FolderID: folderID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

func (r *folderRepository) UnassignDocument(ctx context.Context, folderID, documentID uuid.UUID) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("folder_id = ? AND document_id = ?", folderID, documentID).
		Delete(&db_models.DocumentFolder{}).Error
}

func (r *folderRepository) CountDocuments(ctx context.Context, folderID uuid.UUID) (int64, error) {
	if err := requireDB(r.db); err != nil {
		return 0, err
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.DocumentFolder{}).
		Where("folder_id = ?", folderID).
		Count(&n).Error
	return n, err
}
