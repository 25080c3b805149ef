package db

import (
	"context"

	"github.com/FacundoGArg/empanadora/internal/domain/model"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.Menu{},
		&model.Product{},
		&model.Empanada{},
		&model.Beverage{},
		&model.MenuItem{},
		&model.Inventory{},
		&model.Promotion{},
		&model.PromotionRequirement{},
		&model.Order{},
		&model.OrderItem{},
		&model.Shipping{},
		&model.Payment{},
	)
}

// ExecTx 在單一transaction內執行fn，fn失敗則整包rollback
func (d *DbDao) ExecTx(ctx context.Context, fn func(*DbDao) error) error {
	return d.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewDbDao(tx))
	})
}
