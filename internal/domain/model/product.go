package model

import (
	"github.com/google/uuid"
)

type ProductType string

const (
	ProductTypeEmpanada ProductType = "EMPANADA"
	ProductTypeBeverage ProductType = "BEVERAGE"
	ProductTypeDessert  ProductType = "DESSERT"
)

type EmpanadaCategory string

const (
	EmpanadaCategoryClassic EmpanadaCategory = "CLASSIC"
	EmpanadaCategorySpecial EmpanadaCategory = "SPECIAL"
)

type BeverageCategory string

const (
	BeverageCategoryWater     BeverageCategory = "WATER"
	BeverageCategorySoftDrink BeverageCategory = "SOFT_DRINK"
	BeverageCategoryBeer      BeverageCategory = "BEER"
)

// 商品為目錄資料，OrderItem只引用不擁有
type Product struct {
	ProductID uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name      string      `gorm:"not null;type:varchar(100)"`
	Type      ProductType `gorm:"not null;type:varchar(20)"`
	Image     string      `gorm:"type:varchar(255)"`
	Empanada  *Empanada   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Beverage  *Beverage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	BaseModel
}

type Empanada struct {
	ProductID    uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Category     EmpanadaCategory `gorm:"not null;type:varchar(20)"`
	IsVegetarian bool             `gorm:"not null;default:false"`
	IsGlutenFree bool             `gorm:"not null;default:false"`
}

type Beverage struct {
	ProductID   uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Category    BeverageCategory `gorm:"not null;type:varchar(20)"`
	IsAlcoholic bool             `gorm:"not null;default:false"`
}

// EmpanadaCategoryOf 取得商品的empanada分類，非empanada回傳nil
func (p *Product) EmpanadaCategoryOf() *EmpanadaCategory {
	if p == nil || p.Empanada == nil {
		return nil
	}
	category := p.Empanada.Category
	return &category
}

// BeverageCategoryOf 取得商品的飲料分類，非飲料回傳nil
func (p *Product) BeverageCategoryOf() *BeverageCategory {
	if p == nil || p.Beverage == nil {
		return nil
	}
	category := p.Beverage.Category
	return &category
}
