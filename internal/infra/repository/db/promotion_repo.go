package db

import (
	"context"

	"github.com/FacundoGArg/empanadora/internal/domain/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IPromotionRepository interface {
	CreatePromotion(ctx context.Context, promotion *model.Promotion) error
	FindPromotions(ctx context.Context, menuID *uuid.UUID, includeInactive bool) ([]model.Promotion, error)
}

type PromotionRepo struct {
	db *DbDao
}

func NewPromotionRepo(db *DbDao) *PromotionRepo {
	return &PromotionRepo{db: db}
}

// Create - 創建促銷含需求
func (s *PromotionRepo) CreatePromotion(ctx context.Context, promotion *model.Promotion) error {
	return s.db.WithContext(ctx).Create(promotion).Error
}

// Read - 查詢菜單促銷，預設只回active
func (s *PromotionRepo) FindPromotions(ctx context.Context, menuID *uuid.UUID, includeInactive bool) ([]model.Promotion, error) {
	query := s.db.WithContext(ctx).
		Preload("Requirements", func(db *gorm.DB) *gorm.DB {
			return db.Order("promotion_requirements.created_at ASC")
		})
	if menuID != nil {
		query = query.Where("menu_id = ?", *menuID)
	}
	if !includeInactive {
		query = query.Where("active = ?", true)
	}

	var promotions []model.Promotion
	err := query.Order("active DESC, created_at ASC").Find(&promotions).Error
	return promotions, err
}

var _ IPromotionRepository = (*PromotionRepo)(nil)
