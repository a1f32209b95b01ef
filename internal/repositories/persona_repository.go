package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quill/internal/infra"
	"quill/internal/models/db_models"
)

type PersonaRepository interface {
	Create(ctx context.Context, persona *db_models.Persona) error
	FindByIdAndUser(ctx context.Context, id, userID uuid.UUID) (*db_models.Persona, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Persona, error)
	UpdateFields(ctx context.Context, persona *db_models.Persona, fields map[string]interface{}) error
	Delete(ctx context.Context, persona *db_models.Persona) error

	CreateKeyMessage(ctx context.Context, msg *db_models.KeyMessage) error
	FindKeyMessage(ctx context.Context, personaID, id uuid.UUID) (*db_models.KeyMessage, error)
	ListKeyMessages(ctx context.Context, personaID uuid.UUID) ([]db_models.KeyMessage, error)
	UpdateKeyMessage(ctx context.Context, msg *db_models.KeyMessage, fields map[string]interface{}) error
	DeleteKeyMessage(ctx context.Context, msg *db_models.KeyMessage) error
}

type personaRepository struct {
	db *gorm.DB
}

func NewPersonaRepository(db *gorm.DB) PersonaRepository {
	return &personaRepository{db: db}
}

func orderedKeyMessages(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("created_at ASC")
}

func (r *personaRepository) Create(ctx context.Context, persona *db_models.Persona) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	return translate(r.db.WithContext(ctx).Create(persona).Error)
}

func (r *personaRepository) FindByIdAndUser(ctx context.Context, id, userID uuid.UUID) (*db_models.Persona, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}

	var persona db_models.Persona
	err := r.db.WithContext(ctx).
		Preload("KeyMessages", orderedKeyMessages).
		First(&persona, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &persona, nil
}

func (r *personaRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Persona, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}

	var personas []db_models.Persona
	err := r.db.WithContext(ctx).
		Preload("KeyMessages", orderedKeyMessages).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&personas).Error
	return personas, err
}

func (r *personaRepository) UpdateFields(ctx context.Context, persona *db_models.Persona, fields map[string]interface{}) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Model(persona).Updates(fields).Error)
}

// Delete removes the persona with its key messages and clears it as the
// owner's active persona.
func (r *personaRepository) Delete(ctx context.Context, persona *db_models.Persona) (err error) {
	if err := requireDB(r.db); err != nil {
		return err
	}

	tx := infra.StartTransaction(r.db.WithContext(ctx))
	if tx.Error != nil {
		return tx.Error
	}
	defer func() { infra.ReleaseTransaction(tx, err) }()

	if err = tx.Where("persona_id = ?", persona.ID).Delete(&db_models.KeyMessage{}).Error; err != nil {
		return err
	}
	if err = tx.Delete(persona).Error; err != nil {
		return err
	}
	err = tx.Model(&db_models.User{}).
		Where("id = ? AND active_persona_id = ?", persona.UserID, persona.ID).
		Update("active_persona_id", nil).Error
	return err
}

func (r *personaRepository) CreateKeyMessage(ctx context.Context, msg *db_models.KeyMessage) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *personaRepository) FindKeyMessage(ctx context.Context, personaID, id uuid.UUID) (*db_models.KeyMessage, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}

	var msg db_models.KeyMessage
	err := r.db.WithContext(ctx).First(&msg, "id = ? AND persona_id = ?", id, personaID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (r *personaRepository) ListKeyMessages(ctx context.Context, personaID uuid.UUID) ([]db_models.KeyMessage, error) {
	if err := requireDB(r.db); err != nil {
		return nil, err
	}

	var msgs []db_models.KeyMessage
	err := orderedKeyMessages(r.db.WithContext(ctx)).
		Where("persona_id = ?", personaID).
		Find(&msgs).Error
	return msgs, err
}

func (r *personaRepository) UpdateKeyMessage(ctx context.Context, msg *db_models.KeyMessage, fields map[string]interface{}) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(msg).Updates(fields).Error
}

func (r *personaRepository) DeleteKeyMessage(ctx context.Context, msg *db_models.KeyMessage) error {
	if err := requireDB(r.db); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(msg).Error
}
