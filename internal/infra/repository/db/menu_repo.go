package db

import (
	"context"
	"errors"

	"github.com/FacundoGArg/empanadora/internal/domain/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IMenuRepository interface {
	CreateMenu(ctx context.Context, menu *model.Menu) error
	GetMenuByID(ctx context.Context, menuID uuid.UUID) (*model.Menu, error)
	FindFirstActiveMenu(ctx context.Context) (*model.Menu, error)
	CreateMenuItem(ctx context.Context, item *model.MenuItem) error
	GetMenuItems(ctx context.Context, menuID uuid.UUID) ([]model.MenuItem, error)
}

type MenuRepo struct {
	db *DbDao
}

func NewMenuRepo(db *DbDao) *MenuRepo {
	return &MenuRepo{db: db}
}

// Create - 創建菜單
func (s *MenuRepo) CreateMenu(ctx context.Context, menu *model.Menu) error {
	return s.db.WithContext(ctx).Create(menu).Error
}

// Read - 根據ID查詢菜單，查無回傳nil
func (s *MenuRepo) GetMenuByID(ctx context.Context, menuID uuid.UUID) (*model.Menu, error) {
	var menu model.Menu
	err := s.db.WithContext(ctx).First(&menu, "menu_id = ?", menuID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// Read - 未指定菜單時的預設: 建立最早的active菜單
func (s *MenuRepo) FindFirstActiveMenu(ctx context.Context) (*model.Menu, error) {
	var menu model.Menu
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		First(&menu).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// Create - 創建菜單品項
func (s *MenuRepo) CreateMenuItem(ctx context.Context, item *model.MenuItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// Read - 取得菜單所有品項含商品資訊
func (s *MenuRepo) GetMenuItems(ctx context.Context, menuID uuid.UUID) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := s.db.WithContext(ctx).
		Preload("Product.Empanada").
		Preload("Product.Beverage").
		Where("menu_id = ?", menuID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

var _ IMenuRepository = (*MenuRepo)(nil)
