package db_models

import "github.com/google/uuid"

type Persona struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name   string    `gorm:"not null"`
	Info   string    `gorm:"type:text"`

	KeyMessages []KeyMessage `gorm:"foreignKey:PersonaID;constraint:OnDelete:CASCADE"`
}

type KeyMessage struct {
	BaseModel
	PersonaID uuid.UUID `gorm:"type:uuid;index;not null"`
	Content   string    `gorm:"type:text;not null"`
	Position  int
}
