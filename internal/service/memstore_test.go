package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/FacundoGArg/empanadora/internal/domain/model"
	"github.com/FacundoGArg/empanadora/internal/infra/repository/db"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore 測試用的in-memory IStore。
// ExecTx在state的deep copy上執行fn，成功才commit回parent，
// 模擬DB transaction的all-or-nothing語意
type memStore struct {
	state  *memState
	parent *memStore
}

type memState struct {
	menus       map[uuid.UUID]model.Menu
	menuItems   []model.MenuItem
	products    map[uuid.UUID]model.Product
	inventories map[uuid.UUID]model.Inventory
	promotions  []model.Promotion
	orders      map[uuid.UUID]model.Order
	orderItems  []model.OrderItem
	shippings   map[uuid.UUID]model.Shipping // key: orderID
	payments    map[uuid.UUID]model.Payment  // key: orderID
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

func newMemState() *memState {
	return &memState{
		menus:       map[uuid.UUID]model.Menu{},
		products:    map[uuid.UUID]model.Product{},
		inventories: map[uuid.UUID]model.Inventory{},
		orders:      map[uuid.UUID]model.Order{},
		shippings:   map[uuid.UUID]model.Shipping{},
		payments:    map[uuid.UUID]model.Payment{},
	}
}

func (s *memState) clone() *memState {
	cloned := newMemState()
	for k, v := range s.menus {
		cloned.menus[k] = v
	}
	cloned.menuItems = append([]model.MenuItem(nil), s.menuItems...)
	for k, v := range s.products {
		cloned.products[k] = v
	}
	for k, v := range s.inventories {
		cloned.inventories[k] = v
	}
	cloned.promotions = append([]model.Promotion(nil), s.promotions...)
	for k, v := range s.orders {
		cloned.orders[k] = v
	}
	cloned.orderItems = append([]model.OrderItem(nil), s.orderItems...)
	for k, v := range s.shippings {
		cloned.shippings[k] = v
	}
	for k, v := range s.payments {
		cloned.payments[k] = v
	}
	return cloned
}

func (m *memStore) ExecTx(ctx context.Context, fn func(db.IStore) error) error {
	tx := &memStore{state: m.state.clone(), parent: m}
	if err := fn(tx); err != nil {
		return err
	}
	m.state = tx.state
	return nil
}

// --- menu ---

func (m *memStore) CreateMenu(ctx context.Context, menu *model.Menu) error {
	menu.CreatedAt = time.Now()
	m.state.menus[menu.MenuID] = *menu
	return nil
}

func (m *memStore) GetMenuByID(ctx context.Context, menuID uuid.UUID) (*model.Menu, error) {
	menu, ok := m.state.menus[menuID]
	if !ok {
		return nil, nil
	}
	return &menu, nil
}

func (m *memStore) FindFirstActiveMenu(ctx context.Context) (*model.Menu, error) {
	var found *model.Menu
	for _, menu := range m.state.menus {
		if !menu.Active {
			continue
		}
		menu := menu
		if found == nil || menu.CreatedAt.Before(found.CreatedAt) {
			found = &menu
		}
	}
	return found, nil
}

func (m *memStore) CreateMenuItem(ctx context.Context, item *model.MenuItem) error {
	m.state.menuItems = append(m.state.menuItems, *item)
	return nil
}

func (m *memStore) GetMenuItems(ctx context.Context, menuID uuid.UUID) ([]model.MenuItem, error) {
	var items []model.MenuItem
	for _, item := range m.state.menuItems {
		if item.MenuID == menuID {
			if product, ok := m.state.products[item.ProductID]; ok {
				product := product
				item.Product = &product
			}
			items = append(items, item)
		}
	}
	return items, nil
}

// --- product ---

func (m *memStore) CreateProduct(ctx context.Context, product *model.Product) error {
	m.state.products[product.ProductID] = *product
	return nil
}

func (m *memStore) GetProductByID(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	product, ok := m.state.products[productID]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (m *memStore) GetProductsByIDs(ctx context.Context, productIDs []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	for _, id := range productIDs {
		if product, ok := m.state.products[id]; ok {
			products = append(products, product)
		}
	}
	return products, nil
}

// --- inventory ---

func (m *memStore) UpsertInventory(ctx context.Context, inventory *model.Inventory) error {
	m.state.inventories[inventory.ProductID] = *inventory
	return nil
}

func (m *memStore) GetInventoryByProduct(ctx context.Context, productID uuid.UUID) (*model.Inventory, error) {
	inventory, ok := m.state.inventories[productID]
	if !ok {
		return nil, nil
	}
	return &inventory, nil
}

func (m *memStore) IncrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	inventory, ok := m.state.inventories[productID]
	if !ok {
		return db.ErrInventoryNotFound
	}
	inventory.Quantity += quantity
	m.state.inventories[productID] = inventory
	return nil
}

func (m *memStore) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	inventory, ok := m.state.inventories[productID]
	if !ok {
		return db.ErrInventoryNotFound
	}
	if inventory.Quantity < quantity {
		return db.ErrStockNotEnough
	}
	inventory.Quantity -= quantity
	m.state.inventories[productID] = inventory
	return nil
}

// --- promotion ---

func (m *memStore) CreatePromotion(ctx context.Context, promotion *model.Promotion) error {
	m.state.promotions = append(m.state.promotions, *promotion)
	return nil
}

func (m *memStore) FindPromotions(ctx context.Context, menuID *uuid.UUID, includeInactive bool) ([]model.Promotion, error) {
	var promotions []model.Promotion
	for _, promo := range m.state.promotions {
		if menuID != nil && promo.MenuID != *menuID {
			continue
		}
		if !includeInactive && !promo.Active {
			continue
		}
		promotions = append(promotions, promo)
	}
	return promotions, nil
}

// --- order ---

func (m *memStore) CreateOrder(ctx context.Context, order *model.Order) error {
	order.CreatedAt = time.Now()
	stored := *order
	stored.Items = nil
	stored.Shipping = nil
	stored.Payment = nil
	m.state.orders[order.OrderID] = stored
	return nil
}

// GetOrderByID 組裝關聯，模擬repo的preload行為
func (m *memStore) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	order, ok := m.state.orders[orderID]
	if !ok {
		return nil, nil
	}
	items, err := m.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	if shipping, ok := m.state.shippings[orderID]; ok {
		shipping := shipping
		order.Shipping = &shipping
	}
	if payment, ok := m.state.payments[orderID]; ok {
		payment := payment
		order.Payment = &payment
	}
	return &order, nil
}

func (m *memStore) FindCartByConversation(ctx context.Context, conversationID string) (*model.Order, error) {
	var latest *model.Order
	for _, order := range m.state.orders {
		if order.ConversationID != conversationID || order.Status != model.OrderStatusCart {
			continue
		}
		order := order
		if latest == nil || order.CreatedAt.After(latest.CreatedAt) {
			latest = &order
		}
	}
	if latest == nil {
		return nil, nil
	}
	return m.GetOrderByID(ctx, latest.OrderID)
}

func (m *memStore) BindMenu(ctx context.Context, orderID, menuID uuid.UUID) error {
	order, ok := m.state.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	order.MenuID = &menuID
	m.state.orders[orderID] = order
	return nil
}

func (m *memStore) UpdateOrderFields(ctx context.Context, orderID uuid.UUID, updates map[string]interface{}) error {
	order, ok := m.state.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	for field, value := range updates {
		switch field {
		case "contact_first_name":
			name := value.(string)
			order.ContactFirstName = &name
		case "currency":
			order.Currency = value.(string)
		default:
			return fmt.Errorf("unsupported update field %q", field)
		}
	}
	m.state.orders[orderID] = order
	return nil
}

func (m *memStore) UpdateOrderTotals(ctx context.Context, orderID uuid.UUID, subtotal, discount, deliveryFee, total decimal.Decimal) error {
	order, ok := m.state.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	order.SubtotalAmount = subtotal
	order.DiscountAmount = discount
	order.DeliveryFee = deliveryFee
	order.TotalAmount = total
	m.state.orders[orderID] = order
	return nil
}

func (m *memStore) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) error {
	order, ok := m.state.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	order.Status = status
	m.state.orders[orderID] = order
	return nil
}

// UpsertOrderItem 同(order, product)覆蓋，模擬ON CONFLICT DO UPDATE
func (m *memStore) UpsertOrderItem(ctx context.Context, item *model.OrderItem) error {
	for i, existing := range m.state.orderItems {
		if existing.OrderID == item.OrderID && existing.ProductID == item.ProductID {
			existing.Quantity = item.Quantity
			existing.UnitPrice = item.UnitPrice
			existing.TotalPrice = item.TotalPrice
			existing.Snapshot = item.Snapshot
			m.state.orderItems[i] = existing
			return nil
		}
	}
	item.CreatedAt = time.Now()
	m.state.orderItems = append(m.state.orderItems, *item)
	return nil
}

func (m *memStore) GetOrderItem(ctx context.Context, orderItemID uuid.UUID) (*model.OrderItem, error) {
	for _, item := range m.state.orderItems {
		if item.OrderItemID == orderItemID {
			item := item
			return &item, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	var items []model.OrderItem
	for _, item := range m.state.orderItems {
		if item.OrderID != orderID {
			continue
		}
		if product, ok := m.state.products[item.ProductID]; ok {
			product := product
			item.Product = &product
		}
		items = append(items, item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (m *memStore) RemoveOrderItem(ctx context.Context, orderItemID uuid.UUID) error {
	for i, item := range m.state.orderItems {
		if item.OrderItemID == orderItemID {
			m.state.orderItems = append(m.state.orderItems[:i], m.state.orderItems[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) RemoveOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) error {
	kept := m.state.orderItems[:0]
	for _, item := range m.state.orderItems {
		if item.OrderID != orderID {
			kept = append(kept, item)
		}
	}
	m.state.orderItems = kept
	return nil
}

// --- shipping ---

func (m *memStore) UpsertShipping(ctx context.Context, shipping *model.Shipping) error {
	if existing, ok := m.state.shippings[shipping.OrderID]; ok {
		shipping.ShippingID = existing.ShippingID
	}
	m.state.shippings[shipping.OrderID] = *shipping
	return nil
}

func (m *memStore) GetShippingByOrder(ctx context.Context, orderID uuid.UUID) (*model.Shipping, error) {
	shipping, ok := m.state.shippings[orderID]
	if !ok {
		return nil, nil
	}
	return &shipping, nil
}

// --- payment ---

func (m *memStore) UpsertPayment(ctx context.Context, payment *model.Payment) error {
	if existing, ok := m.state.payments[payment.OrderID]; ok {
		// 更新時不動status
		payment.PaymentID = existing.PaymentID
		payment.Status = existing.Status
	}
	m.state.payments[payment.OrderID] = *payment
	return nil
}

func (m *memStore) UpdatePaymentAmount(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal, currency string) error {
	payment, ok := m.state.payments[orderID]
	if !ok {
		return nil
	}
	payment.Amount = amount
	payment.Currency = currency
	m.state.payments[orderID] = payment
	return nil
}

func (m *memStore) GetPaymentByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	payment, ok := m.state.payments[orderID]
	if !ok {
		return nil, nil
	}
	return &payment, nil
}

var _ db.IStore = (*memStore)(nil)
