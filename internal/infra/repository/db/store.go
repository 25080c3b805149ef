package db

import (
	"context"
)

// IStore 聚合所有repository，ExecTx內的IStore共用同一個transaction
type IStore interface {
	IMenuRepository
	IProductRepository
	IInventoryRepository
	IPromotionRepository
	IOrderRepository
	IShippingRepository
	IPaymentRepository
	ExecTx(ctx context.Context, fn func(IStore) error) error
}

type Store struct {
	dao *DbDao
	*MenuRepo
	*ProductRepo
	*InventoryRepo
	*PromotionRepo
	*OrderRepo
	*ShippingRepo
	*PaymentRepo
}

func NewStore(dao *DbDao) *Store {
	return &Store{
		dao:           dao,
		MenuRepo:      NewMenuRepo(dao),
		ProductRepo:   NewProductRepo(dao),
		InventoryRepo: NewInventoryRepo(dao),
		PromotionRepo: NewPromotionRepo(dao),
		OrderRepo:     NewOrderRepo(dao),
		ShippingRepo:  NewShippingRepo(dao),
		PaymentRepo:   NewPaymentRepo(dao),
	}
}

// ExecTx fn失敗則整包rollback，confirm與mutation+重算都靠這個保證all-or-nothing
func (s *Store) ExecTx(ctx context.Context, fn func(IStore) error) error {
	return s.dao.ExecTx(ctx, func(txDao *DbDao) error {
		return fn(NewStore(txDao))
	})
}

var _ IStore = (*Store)(nil)
