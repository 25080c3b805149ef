package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PromoItemSource string

const (
	PromoItemSourceCart      PromoItemSource = "cart"
	PromoItemSourceRequested PromoItemSource = "requested"
)

// PromoItem 促銷評估用的正規化品項，
// 來源可能是已入庫的購物車明細，也可能是客人口頭要加的東西(尚未入庫)
type PromoItem struct {
	Source           PromoItemSource   `json:"source"`
	ProductID        *uuid.UUID        `json:"product_id,omitempty"`
	ProductType      ProductType       `json:"product_type"`
	EmpanadaCategory *EmpanadaCategory `json:"empanada_category,omitempty"`
	BeverageCategory *BeverageCategory `json:"beverage_category,omitempty"`
	Quantity         int               `json:"quantity"`
	UnitPrice        decimal.Decimal   `json:"unit_price"`
	Label            string            `json:"label,omitempty"`
}
