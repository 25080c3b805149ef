package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Menu struct {
	MenuID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"not null;type:varchar(100)"`
	Active   bool      `gorm:"not null;default:true"`
	Currency string    `gorm:"not null;type:varchar(10)"`
	BaseModel
}

// MenuItem 同一商品可出現在多個菜單上，各自有不同價格
type MenuItem struct {
	MenuItemID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MenuID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_menu_product"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_menu_product"`
	Price      decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	Currency   string          `gorm:"not null;type:varchar(10)"`
	Product    *Product        `gorm:"foreignKey:ProductID"`
	BaseModel
}
