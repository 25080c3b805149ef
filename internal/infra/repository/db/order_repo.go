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

type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	FindCartByConversation(ctx context.Context, conversationID string) (*model.Order, error)
	BindMenu(ctx context.Context, orderID, menuID uuid.UUID) error
	UpdateOrderFields(ctx context.Context, orderID uuid.UUID, updates map[string]interface{}) error
	UpdateOrderTotals(ctx context.Context, orderID uuid.UUID, subtotal, discount, deliveryFee, total decimal.Decimal) error
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) error
	UpsertOrderItem(ctx context.Context, item *model.OrderItem) error
	GetOrderItem(ctx context.Context, orderItemID uuid.UUID) (*model.OrderItem, error)
	GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)
	RemoveOrderItem(ctx context.Context, orderItemID uuid.UUID) error
	RemoveOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) error
}

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create - 創建訂單
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// Read - 根據ID查詢訂單，帶出明細/運送/付款，查無回傳nil
func (s *OrderRepo) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.created_at ASC")
		}).
		Preload("Items.Product.Empanada").
		Preload("Items.Product.Beverage").
		Preload("Shipping").
		Preload("Payment").
		First(&order, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 查詢對話當前的CART訂單，查無回傳nil
func (s *OrderRepo) FindCartByConversation(ctx context.Context, conversationID string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.created_at ASC")
		}).
		Preload("Items.Product.Empanada").
		Preload("Items.Product.Beverage").
		Preload("Shipping").
		Preload("Payment").
		Where("conversation_id = ? AND status = ?", conversationID, model.OrderStatusCart).
		Order("created_at DESC").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Update - 訂單延遲綁定菜單
func (s *OrderRepo) BindMenu(ctx context.Context, orderID, menuID uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Update("menu_id", menuID).Error
}

// Update - 部分更新訂單
func (s *OrderRepo) UpdateOrderFields(ctx context.Context, orderID uuid.UUID, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Updates(updates).Error
}

// Update - 更新重算後的訂單金額
func (s *OrderRepo) UpdateOrderTotals(ctx context.Context, orderID uuid.UUID, subtotal, discount, deliveryFee, total decimal.Decimal) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"subtotal_amount": subtotal,
			"discount_amount": discount,
			"delivery_fee":    deliveryFee,
			"total_amount":    total,
		}).Error
}

// Update - 更新訂單狀態
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status).Error
}

// Upsert - 同一(order, product)只會有一筆明細，衝突時覆蓋數量與價格
func (s *OrderRepo) UpsertOrderItem(ctx context.Context, item *model.OrderItem) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"quantity", "unit_price", "total_price",
			"snapshot_name", "snapshot_image", "snapshot_type",
			"updated_at",
		}),
	}).Create(item).Error
}

// Read - 根據ID查詢訂單明細，查無回傳nil
func (s *OrderRepo) GetOrderItem(ctx context.Context, orderItemID uuid.UUID) (*model.OrderItem, error) {
	var item model.OrderItem
	err := s.db.WithContext(ctx).First(&item, "order_item_id = ?", orderItemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Read - 取得訂單所有明細
func (s *OrderRepo) GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := s.db.WithContext(ctx).
		Preload("Product.Empanada").
		Preload("Product.Beverage").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// Delete - 刪除單筆訂單明細。
// 硬刪除: 軟刪除的列仍佔住(order_id, product_id)唯一索引，
// 會讓同商品重新加入時upsert更新到已刪除的列
func (s *OrderRepo) RemoveOrderItem(ctx context.Context, orderItemID uuid.UUID) error {
	return s.db.WithContext(ctx).Unscoped().
		Where("order_item_id = ?", orderItemID).
		Delete(&model.OrderItem{}).Error
}

// Delete - 清空訂單明細，同樣走硬刪除
func (s *OrderRepo) RemoveOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.db.WithContext(ctx).Unscoped().
		Where("order_id = ?", orderID).
		Delete(&model.OrderItem{}).Error
}

var _ IOrderRepository = (*OrderRepo)(nil)
