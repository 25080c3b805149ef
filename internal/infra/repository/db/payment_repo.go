package db

import (
	"context"
	"errors"

	"github.com/FacundoGArg/empanadora/internal/domain/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IPaymentRepository interface {
	UpsertPayment(ctx context.Context, payment *model.Payment) error
	UpdatePaymentAmount(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal, currency string) error
	GetPaymentByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error)
}

type PaymentRepo struct {
	db *DbDao
}

func NewPaymentRepo(db *DbDao) *PaymentRepo {
	return &PaymentRepo{db: db}
}

// Upsert - 每張訂單只有一筆付款偏好，更新不動status
func (s *PaymentRepo) UpsertPayment(ctx context.Context, payment *model.Payment) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"method", "amount", "currency", "updated_at",
		}),
	}).Create(payment).Error
}

// Update - 重算金額後同步付款金額，status不動
func (s *PaymentRepo) UpdatePaymentAmount(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal, currency string) error {
	return s.db.WithContext(ctx).Model(&model.Payment{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"amount":   amount,
			"currency": currency,
		}).Error
}

// Read - 查詢訂單付款偏好，查無回傳nil
func (s *PaymentRepo) GetPaymentByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	err := s.db.WithContext(ctx).First(&payment, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

var _ IPaymentRepository = (*PaymentRepo)(nil)
