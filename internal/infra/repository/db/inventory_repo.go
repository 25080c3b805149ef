package db

import (
	"context"
	"errors"

	"github.com/FacundoGArg/empanadora/internal/domain/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInventoryNotFound = errors.New("inventory record not found")
	ErrStockNotEnough    = errors.New("stock is not enough")
)

type IInventoryRepository interface {
	UpsertInventory(ctx context.Context, inventory *model.Inventory) error
	GetInventoryByProduct(ctx context.Context, productID uuid.UUID) (*model.Inventory, error)
	IncrementStock(ctx context.Context, productID uuid.UUID, quantity int) error
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error
}

type InventoryRepo struct {
	db *DbDao
}

func NewInventoryRepo(db *DbDao) *InventoryRepo {
	return &InventoryRepo{db: db}
}

// Upsert - 建立或覆蓋庫存紀錄
func (s *InventoryRepo) UpsertInventory(ctx context.Context, inventory *model.Inventory) error {
	return s.db.WithContext(ctx).Save(inventory).Error
}

// Read - 查詢商品庫存，查無回傳nil
func (s *InventoryRepo) GetInventoryByProduct(ctx context.Context, productID uuid.UUID) (*model.Inventory, error) {
	var inventory model.Inventory
	err := s.db.WithContext(ctx).First(&inventory, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inventory, nil
}

// Update - 增加庫存
func (s *InventoryRepo) IncrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity to increment must be positive")
	}
	result := s.db.WithContext(ctx).Model(&model.Inventory{}).
		Where("product_id = ?", productID).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInventoryNotFound
	}
	return nil
}

// Update - 扣除庫存，條件式更新保證不會扣到負數
func (s *InventoryRepo) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity to decrement must be positive")
	}
	result := s.db.WithContext(ctx).Model(&model.Inventory{}).
		Where("product_id = ? AND quantity >= ?", productID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// 區分紀錄不存在跟庫存不足
		inventory, err := s.GetInventoryByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if inventory == nil {
			return ErrInventoryNotFound
		}
		return ErrStockNotEnough
	}
	return nil
}

var _ IInventoryRepository = (*InventoryRepo)(nil)
