package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quill/internal/models/db_models"
)

type AccountRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	SetActivePersona(ctx context.Context, id uuid.UUID, personaID *uuid.UUID) error
	UpdateSubscription(ctx context.Context, id uuid.UUID, sub db_models.Subscription) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) Insert(ctx context.Context, user *db_models.User) error {
	if err := requireDB(a.db); err != nil {
		return err
	}
	return translate(a.db.WithContext(ctx).Create(user).Error)
}

func (a *accountRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	if err := requireDB(a.db); err != nil {
		return nil, err
	}

	var user db_models.User
	err := a.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	if err := requireDB(a.db); err != nil {
		return nil, err
	}

	var user db_models.User
	err := a.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (a *accountRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if err := requireDB(a.db); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	return translate(a.db.WithContext(ctx).Model(&db_models.User{}).Where("id = ?", id).Updates(fields).Error)
}

func (a *accountRepository) SetActivePersona(ctx context.Context, id uuid.UUID, personaID *uuid.UUID) error {
	if err := requireDB(a.db); err != nil {
		return err
	}
	return a.db.WithContext(ctx).Model(&db_models.User{}).
		Where("id = ?", id).
		Update("active_persona_id", personaID).Error
}

func (a *accountRepository) UpdateSubscription(ctx context.Context, id uuid.UUID, sub db_models.Subscription) error {
	if err := requireDB(a.db); err != nil {
		return err
	}
	return translate(a.db.WithContext(ctx).Model(&db_models.User{}).
		Where("id = ?", id).
		Select("subscription_plan", "subscription_status", "subscription_current_period_start",
			"subscription_current_period_end", "subscription_stripe_customer_id",
			"subscription_stripe_subscription_id", "subscription_metadata").
		Updates(&db_models.User{Subscription: sub}).Error)
}
