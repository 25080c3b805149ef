package db

import (
	"context"
	"errors"

	"github.com/FacundoGArg/empanadora/internal/domain/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID uuid.UUID) (*model.Product, error)
	GetProductsByIDs(ctx context.Context, productIDs []uuid.UUID) ([]model.Product, error)
}

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create - 創建商品
func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

// Read - 根據ID查詢商品含分類資訊，查無回傳nil
func (s *ProductRepo) GetProductByID(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).
		Preload("Empanada").
		Preload("Beverage").
		First(&product, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Read - 批次查詢商品
func (s *ProductRepo) GetProductsByIDs(ctx context.Context, productIDs []uuid.UUID) ([]model.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var products []model.Product
	err := s.db.WithContext(ctx).
		Preload("Empanada").
		Preload("Beverage").
		Where("product_id IN ?", productIDs).
		Find(&products).Error
	return products, err
}

var _ IProductRepository = (*ProductRepo)(nil)
