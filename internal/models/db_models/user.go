package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionStatus string

const (
	SubStatusInactive SubscriptionStatus = "inactive"
	SubStatusTrialing SubscriptionStatus = "trialing"
	SubStatusActive   SubscriptionStatus = "active"
	SubStatusPastDue  SubscriptionStatus = "past_due"
	SubStatusCanceled SubscriptionStatus = "canceled"
)

type User struct {
	BaseModel
	Name         string
	Email        string  `gorm:"uniqueIndex;not null"`
	PasswordHash *string `json:"-"`

	// Legacy single-brand fields, superseded by personas.
	BrandName string
	BrandInfo string `gorm:"type:text"`

	ActivePersonaID *uuid.UUID `gorm:"type:uuid"`

	Subscription Subscription `gorm:"embedded;embeddedPrefix:subscription_"`
}

// Subscription is the billing snapshot kept on the user row.
type Subscription struct {
	Plan                 string
	Status               SubscriptionStatus `gorm:"default:inactive"`
	CurrentPeriodStart   int64
	CurrentPeriodEnd     int64
	StripeCustomerID     *string        `gorm:"uniqueIndex"`
	StripeSubscriptionID *string        `gorm:"uniqueIndex"`
	Metadata             datatypes.JSON `gorm:"type:jsonb"`
}

func (s Subscription) IsActive(now int64) bool {
	switch s.Status {
	case SubStatusActive, SubStatusTrialing:
		return s.CurrentPeriodEnd == 0 || s.CurrentPeriodEnd > now
	default:
		return false
	}
}
