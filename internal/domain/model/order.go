package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCart      OrderStatus = "CART"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
)

type ShippingType string

const (
	ShippingTypeDelivery ShippingType = "DELIVERY"
	ShippingTypePickup   ShippingType = "PICKUP"
)

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodCard PaymentMethod = "CARD"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// ProductSnapshot 加入購物車當下的商品展示資料，
// 目錄之後怎麼改都不影響已存在的明細顯示
type ProductSnapshot struct {
	Name  string      `gorm:"type:varchar(100)"`
	Image string      `gorm:"type:varchar(255)"`
	Type  ProductType `gorm:"type:varchar(20)"`
}

// Order 金額欄位全部是derived，每次mutation後重算，不允許手動修改
type Order struct {
	OrderID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ConversationID   string          `gorm:"not null;type:varchar(100);index"`
	MenuID           *uuid.UUID      `gorm:"type:uuid;index"`
	Status           OrderStatus     `gorm:"not null;type:varchar(20);index"`
	Currency         string          `gorm:"not null;type:varchar(10)"`
	SubtotalAmount   decimal.Decimal `gorm:"not null;type:decimal(12,2)"`
	DiscountAmount   decimal.Decimal `gorm:"not null;type:decimal(12,2)"`
	DeliveryFee      decimal.Decimal `gorm:"not null;type:decimal(12,2)"`
	TotalAmount      decimal.Decimal `gorm:"not null;type:decimal(12,2)"`
	ContactFirstName *string         `gorm:"type:varchar(50)"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipping         *Shipping       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment          *Payment        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	BaseModel
}

// OrderItem 每張訂單同一商品最多一筆，重複加入會覆蓋數量
type OrderItem struct {
	OrderItemID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_item_product"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_item_product"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	TotalPrice  decimal.Decimal `gorm:"not null;type:decimal(12,2)"`
	Snapshot    ProductSnapshot `gorm:"embedded;embeddedPrefix:snapshot_"`
	Product     *Product        `gorm:"foreignKey:ProductID"`
	BaseModel
}

type Shipping struct {
	ShippingID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Type               ShippingType    `gorm:"not null;type:varchar(20)"`
	Fee                decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	AddressDescription *string         `gorm:"type:varchar(255)"`
	PickupLocation     *string         `gorm:"type:varchar(255)"`
	Eta                *time.Time
	BaseModel
}

// Payment 只記錄偏好，不做實際收款
type Payment struct {
	PaymentID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Method    PaymentMethod   `gorm:"not null;type:varchar(20)"`
	Status    PaymentStatus   `gorm:"not null;type:varchar(20)"`
	Amount    decimal.Decimal `gorm:"not null;type:decimal(12,2)"`
	Currency  string          `gorm:"not null;type:varchar(10)"`
	BaseModel
}
