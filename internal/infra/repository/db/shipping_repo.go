package db

import (
	"context"
	"errors"

	"github.com/FacundoGArg/empanadora/internal/domain/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IShippingRepository interface {
	UpsertShipping(ctx context.Context, shipping *model.Shipping) error
	GetShippingByOrder(ctx context.Context, orderID uuid.UUID) (*model.Shipping, error)
}

type ShippingRepo struct {
	db *DbDao
}

func NewShippingRepo(db *DbDao) *ShippingRepo {
	return &ShippingRepo{db: db}
}

// Upsert - 每張訂單只有一筆運送設定，重設會覆蓋
func (s *ShippingRepo) UpsertShipping(ctx context.Context, shipping *model.Shipping) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"type", "fee", "address_description", "pickup_location", "eta", "updated_at",
		}),
	}).Create(shipping).Error
}

// Read - 查詢訂單運送設定，查無回傳nil
func (s *ShippingRepo) GetShippingByOrder(ctx context.Context, orderID uuid.UUID) (*model.Shipping, error) {
	var shipping model.Shipping
	err := s.db.WithContext(ctx).First(&shipping, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shipping, nil
}

var _ IShippingRepository = (*ShippingRepo)(nil)
