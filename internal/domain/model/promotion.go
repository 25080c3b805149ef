package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PromotionType string

const (
	PromotionTypeFixedBundlePrice PromotionType = "FIXED_BUNDLE_PRICE"
	PromotionTypeQuantityDiscount PromotionType = "QUANTITY_DISCOUNT"
)

type DiscountKind string

const (
	DiscountKindPercent DiscountKind = "PERCENT"
	DiscountKindAmount  DiscountKind = "AMOUNT"
)

// Promotion 兩種型態共用同一張表:
//   - FIXED_BUNDLE_PRICE: FixedPrice + Requirements (至少一筆)
//   - QUANTITY_DISCOUNT:  MinQty + DiscountKind + DiscountValue (PERCENT時為小數，0.1 = 10%)
//
// Stackable 只控制該促銷本身可否套用多組bundle，
// 促銷之間永遠互斥，折扣取單一最大值。
type Promotion struct {
	PromotionID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MenuID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"not null;type:varchar(100)"`
	Type          PromotionType   `gorm:"not null;type:varchar(30)"`
	Active        bool            `gorm:"not null;default:true"`
	Stackable     bool            `gorm:"not null;default:false"`
	MinQty        int             `gorm:"not null;default:0"`
	DiscountKind  DiscountKind    `gorm:"type:varchar(10)"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(10,4)"`
	FixedPrice    decimal.Decimal `gorm:"type:decimal(10,2)"`
	Currency      string          `gorm:"not null;type:varchar(10)"`
	Requirements  []PromotionRequirement `gorm:"foreignKey:PromotionID;constraint:OnDelete:CASCADE"`
	BaseModel
}

// PromotionRequirement 一組bundle需求。
// EmpanadaCategory 只在 ProductType=EMPANADA 有意義；
// BeverageCategories 只在 ProductType=BEVERAGE 有意義，空列表代表任意飲料。
type PromotionRequirement struct {
	RequirementID      uuid.UUID          `gorm:"type:uuid;primaryKey"`
	PromotionID        uuid.UUID          `gorm:"type:uuid;not null;index"`
	Qty                int                `gorm:"not null"`
	ProductType        ProductType        `gorm:"not null;type:varchar(20)"`
	EmpanadaCategory   *EmpanadaCategory  `gorm:"type:varchar(20)"`
	BeverageCategories []BeverageCategory `gorm:"serializer:json;type:jsonb"`
	BaseModel
}
