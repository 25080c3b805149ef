package model

import (
	"github.com/google/uuid"
)

type Inventory struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int       `gorm:"not null;type:int"`
	BaseModel
}
