package service

import (
	"context"

	"github.com/FacundoGArg/empanadora/internal/domain/model"
	"github.com/FacundoGArg/empanadora/internal/infra/repository/db"
	"github.com/google/uuid"
)

type IMenuService interface {
	ResolveMenuID(ctx context.Context, preferred *uuid.UUID) (*uuid.UUID, error)
	GetMenuItems(ctx context.Context, menuID uuid.UUID) ([]model.MenuItem, error)
}

type MenuService struct {
	menuRepo db.IMenuRepository
}

func NewMenuService(menuRepo db.IMenuRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// ResolveMenuID 菜單解析政策: 有指定就用指定的，
// 沒有就fallback到最早建立的active菜單，一個都沒有回傳nil。
// 這是刻意的預設行為，測試時可注入替代實作。
func (m *MenuService) ResolveMenuID(ctx context.Context, preferred *uuid.UUID) (*uuid.UUID, error) {
	if preferred != nil {
		return preferred, nil
	}
	menu, err := m.menuRepo.FindFirstActiveMenu(ctx)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, nil
	}
	menuID := menu.MenuID
	return &menuID, nil
}

func (m *MenuService) GetMenuItems(ctx context.Context, menuID uuid.UUID) ([]model.MenuItem, error) {
	return m.menuRepo.GetMenuItems(ctx, menuID)
}

var _ IMenuService = (*MenuService)(nil)
