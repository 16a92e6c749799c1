package models

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ParishModel is a BaseModel owned by one parish.
type ParishModel struct {
	BaseModel
	ParishID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func newParishModel(id, parishID uuid.UUID) ParishModel {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return ParishModel{BaseModel: BaseModel{ID: id}, ParishID: parishID}
}
