package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FacundoGArg/empanadora/internal/domain/model"
	"github.com/FacundoGArg/empanadora/internal/infra/repository/db"
	"github.com/FacundoGArg/empanadora/internal/producer"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotExist       = errors.New("order is not exist")
	ErrOrderNotMutable     = errors.New("order is not in cart status")
	ErrOrderItemNotExist   = errors.New("order item is not exist")
	ErrEmptyConversationID = errors.New("conversation id is empty")
	ErrInvalidQuantity     = errors.New("quantity must be a positive integer")
	ErrInvalidUnitPrice    = errors.New("unit price must be positive")
	ErrEmptyFirstName      = errors.New("first name is empty after trimming")
	ErrInsufficientStock   = errors.New("insufficient stock for requested quantity")
	ErrInventoryMissing    = errors.New("no inventory record for product")
	ErrEmptyOrder          = errors.New("order has no items to confirm")
	ErrMissingContact      = errors.New("contact first name is required before confirmation")
	ErrMissingShipping     = errors.New("shipping method is required before confirmation")
	ErrMissingAddress      = errors.New("delivery address is required before confirmation")
	ErrMissingPayment      = errors.New("payment method is required before confirmation")
)

type IOrderService interface {
	GetOrCreateActiveCart(ctx context.Context, conversationID string, opts EnsureCartOptions) (*OrderSummary, error)
	GetOrderSummary(ctx context.Context, orderID uuid.UUID) (*OrderSummary, error)
	AddOrUpdateItem(ctx context.Context, input AddOrUpdateItemInput) (*OrderSummary, error)
	RemoveItem(ctx context.Context, orderID, orderItemID uuid.UUID) (*OrderSummary, error)
	ClearOrder(ctx context.Context, orderID uuid.UUID) (*OrderSummary, error)
	SetShippingMethod(ctx context.Context, input SetShippingMethodInput) (*OrderSummary, error)
	SetPaymentMethod(ctx context.Context, input SetPaymentMethodInput) (*OrderSummary, error)
	SetContactFirstName(ctx context.Context, orderID uuid.UUID, firstName string) (*OrderSummary, error)
	ConfirmOrder(ctx context.Context, orderID uuid.UUID) (*OrderSummary, error)
}

type OrderService struct {
	store           db.IStore
	promotionRepo   db.IPromotionRepository
	menuService     IMenuService
	eventProducer   producer.IOrderEventProducer
	logger          zerolog.Logger
	defaultCurrency string
}

func NewOrderService(
	store db.IStore,
	promotionRepo db.IPromotionRepository,
	menuService IMenuService,
	eventProducer producer.IOrderEventProducer,
	logger zerolog.Logger,
	defaultCurrency string,
) *OrderService {
	if defaultCurrency == "" {
		defaultCurrency = "ARS"
	}
	return &OrderService{
		store:           store,
		promotionRepo:   promotionRepo,
		menuService:     menuService,
		eventProducer:   eventProducer,
		logger:          logger,
		defaultCurrency: defaultCurrency,
	}
}

type EnsureCartOptions struct {
	MenuID   *uuid.UUID
	Currency string
}

type AddOrUpdateItemInput struct {
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Snapshot  *model.ProductSnapshot
}

type SetShippingMethodInput struct {
	OrderID            uuid.UUID
	Type               model.ShippingType
	Fee                decimal.Decimal
	AddressDescription *string
	PickupLocation     *string
	Eta                *time.Time
}

type SetPaymentMethodInput struct {
	OrderID uuid.UUID
	Method  model.PaymentMethod
}

type OrderLine struct {
	OrderItemID  uuid.UUID             `json:"order_item_id"`
	ProductID    uuid.UUID             `json:"product_id"`
	Quantity     int                   `json:"quantity"`
	UnitPrice    decimal.Decimal       `json:"unit_price"`
	TotalPrice   decimal.Decimal       `json:"total_price"`
	ProductName  string                `json:"product_name"`
	ProductImage string                `json:"product_image,omitempty"`
	Snapshot     model.ProductSnapshot `json:"product_snapshot"`
}

type ShippingSummary struct {
	Type               model.ShippingType `json:"type"`
	Fee                decimal.Decimal    `json:"fee"`
	AddressDescription *string            `json:"address_description,omitempty"`
	PickupLocation     *string            `json:"pickup_location,omitempty"`
}

type PaymentSummary struct {
	Status   model.PaymentStatus `json:"status"`
	Amount   decimal.Decimal     `json:"amount"`
	Currency string              `json:"currency"`
	Method   model.PaymentMethod `json:"method"`
}

type OrderSummary struct {
	OrderID          uuid.UUID         `json:"order_id"`
	Status           model.OrderStatus `json:"status"`
	Currency         string            `json:"currency"`
	SubtotalAmount   decimal.Decimal   `json:"subtotal_amount"`
	DiscountAmount   decimal.Decimal   `json:"discount_amount"`
	DeliveryFee      decimal.Decimal   `json:"delivery_fee"`
	TotalAmount      decimal.Decimal   `json:"total_amount"`
	ContactFirstName string            `json:"contact_first_name,omitempty"`
	Items            []OrderLine       `json:"items"`
	Shipping         *ShippingSummary  `json:"shipping,omitempty"`
	Payment          *PaymentSummary   `json:"payment,omitempty"`
}

// GetOrCreateActiveCart 取得對話當前的CART訂單，沒有就開新車。
// 菜單採延遲綁定: 舊車沒綁菜單而現在解析得出來，就補綁
func (o *OrderService) GetOrCreateActiveCart(ctx context.Context, conversationID string, opts EnsureCartOptions) (*OrderSummary, error) {
	if strings.TrimSpace(conversationID) == "" {
		return nil, ErrEmptyConversationID
	}

	existing, err := o.store.FindCartByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.MenuID == nil {
			resolvedMenuID, err := o.menuService.ResolveMenuID(ctx, opts.MenuID)
			if err != nil {
				return nil, err
			}
			if resolvedMenuID != nil {
				if err := o.store.BindMenu(ctx, existing.OrderID, *resolvedMenuID); err != nil {
					return nil, err
				}
				existing, err = o.store.GetOrderByID(ctx, existing.OrderID)
				if err != nil {
					return nil, err
				}
				if existing == nil {
					return nil, ErrOrderNotExist
				}
			}
		}
		return buildOrderSummary(existing), nil
	}

	resolvedMenuID, err := o.menuService.ResolveMenuID(ctx, opts.MenuID)
	if err != nil {
		return nil, err
	}

	currency := opts.Currency
	if currency == "" {
		currency = o.defaultCurrency
	}

	order := &model.Order{
		OrderID:        uuid.New(),
		ConversationID: conversationID,
		MenuID:         resolvedMenuID,
		Status:         model.OrderStatusCart,
		Currency:       currency,
		SubtotalAmount: decimal.Zero,
		DiscountAmount: decimal.Zero,
		DeliveryFee:    decimal.Zero,
		TotalAmount:    decimal.Zero,
	}
	if err := o.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("order_id", order.OrderID.String()).
		Str("conversation_id", conversationID).
		Msg("cartCreated")

	return o.GetOrderSummary(ctx, order.OrderID)
}

func (o *OrderService) GetOrderSummary(ctx context.Context, orderID uuid.UUID) (*OrderSummary, error) {
	order, err := o.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotExist
	}
	return buildOrderSummary(order), nil
}

// AddOrUpdateItem 以(order, product)做upsert，重複呼叫是覆蓋數量不是累加，
// 呼叫端(agent)要自己算好絕對數量。入庫前先過庫存檢查
func (o *OrderService) AddOrUpdateItem(ctx context.Context, input AddOrUpdateItemInput) (*OrderSummary, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, input.Quantity)
	}
	if !input.UnitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidUnitPrice, input.UnitPrice)
	}

	if err := o.ensureStockAvailability(ctx, input.ProductID, input.Quantity); err != nil {
		return nil, err
	}

	snapshot, err := o.resolveSnapshot(ctx, input.ProductID, input.Snapshot)
	if err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("order_id", input.OrderID.String()).
		Str("product_id", input.ProductID.String()).
		Int("quantity", input.Quantity).
		Str("unit_price", input.UnitPrice.String()).
		Msg("addOrUpdateItem")

	var summary *OrderSummary
	err = o.store.ExecTx(ctx, func(s db.IStore) error {
		if err := ensureCartOrder(ctx, s, input.OrderID); err != nil {
			return err
		}
		item := &model.OrderItem{
			OrderItemID: uuid.New(),
			OrderID:     input.OrderID,
			ProductID:   input.ProductID,
			Quantity:    input.Quantity,
			UnitPrice:   input.UnitPrice,
			TotalPrice:  input.UnitPrice.Mul(decimal.NewFromInt(int64(input.Quantity))),
			Snapshot:    snapshot,
		}
		if err := s.UpsertOrderItem(ctx, item); err != nil {
			return err
		}
		summary, err = o.recalculateOrderTotals(ctx, s, input.OrderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (o *OrderService) RemoveItem(ctx context.Context, orderID, orderItemID uuid.UUID) (*OrderSummary, error) {
	o.logger.Info().
		Str("order_id", orderID.String()).
		Str("order_item_id", orderItemID.String()).
		Msg("removeItem")

	var summary *OrderSummary
	err := o.store.ExecTx(ctx, func(s db.IStore) error {
		if err := ensureCartOrder(ctx, s, orderID); err != nil {
			return err
		}
		item, err := s.GetOrderItem(ctx, orderItemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrderID != orderID {
			return ErrOrderItemNotExist
		}
		if err := s.RemoveOrderItem(ctx, orderItemID); err != nil {
			return err
		}
		summary, err = o.recalculateOrderTotals(ctx, s, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (o *OrderService) ClearOrder(ctx context.Context, orderID uuid.UUID) (*OrderSummary, error) {
	o.logger.Info().Str("order_id", orderID.String()).Msg("clearOrder")

	var summary *OrderSummary
	err := o.store.ExecTx(ctx, func(s db.IStore) error {
		if err := ensureCartOrder(ctx, s, orderID); err != nil {
			return err
		}
		if err := s.RemoveOrderItemsByOrder(ctx, orderID); err != nil {
			return err
		}
		var err error
		summary, err = o.recalculateOrderTotals(ctx, s, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// SetShippingMethod DELIVERY缺地址在這裡只警告不擋，confirm才會硬擋，
// 對話流程裡客人常常先選方式後給地址
func (o *OrderService) SetShippingMethod(ctx context.Context, input SetShippingMethodInput) (*OrderSummary, error) {
	var addressDescription *string
	if input.Type == model.ShippingTypeDelivery {
		if input.AddressDescription != nil {
			trimmed := strings.TrimSpace(*input.AddressDescription)
			if trimmed != "" {
				addressDescription = &trimmed
			}
		}
		if addressDescription == nil {
			o.logger.Warn().
				Str("order_id", input.OrderID.String()).
				Msg("missingDeliveryAddress")
		}
	}

	o.logger.Info().
		Str("order_id", input.OrderID.String()).
		Str("type", string(input.Type)).
		Msg("setShippingMethod")

	var summary *OrderSummary
	err := o.store.ExecTx(ctx, func(s db.IStore) error {
		if err := ensureCartOrder(ctx, s, input.OrderID); err != nil {
			return err
		}
		shipping := &model.Shipping{
			ShippingID:         uuid.New(),
			OrderID:            input.OrderID,
			Type:               input.Type,
			Fee:                input.Fee,
			AddressDescription: addressDescription,
			PickupLocation:     input.PickupLocation,
			Eta:                input.Eta,
		}
		if err := s.UpsertShipping(ctx, shipping); err != nil {
			return err
		}
		var err error
		summary, err = o.recalculateOrderTotals(ctx, s, input.OrderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// SetPaymentMethod 先重算拿到最新total，再upsert付款偏好。
// status建立時預設PENDING，更新時不動
func (o *OrderService) SetPaymentMethod(ctx context.Context, input SetPaymentMethodInput) (*OrderSummary, error) {
	o.logger.Info().
		Str("order_id", input.OrderID.String()).
		Str("method", string(input.Method)).
		Msg("setPaymentMethod")

	err := o.store.ExecTx(ctx, func(s db.IStore) error {
		if err := ensureCartOrder(ctx, s, input.OrderID); err != nil {
			return err
		}
		summary, err := o.recalculateOrderTotals(ctx, s, input.OrderID)
		if err != nil {
			return err
		}
		payment := &model.Payment{
			PaymentID: uuid.New(),
			OrderID:   input.OrderID,
			Method:    input.Method,
			Status:    model.PaymentStatusPending,
			Amount:    summary.TotalAmount,
			Currency:  summary.Currency,
		}
		return s.UpsertPayment(ctx, payment)
	})
	if err != nil {
		return nil, err
	}
	return o.GetOrderSummary(ctx, input.OrderID)
}

func (o *OrderService) SetContactFirstName(ctx context.Context, orderID uuid.UUID, firstName string) (*OrderSummary, error) {
	trimmed := strings.TrimSpace(firstName)
	if trimmed == "" {
		return nil, ErrEmptyFirstName
	}

	o.logger.Info().Str("order_id", orderID.String()).Msg("setContactFirstName")

	order, err := o.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotExist
	}

	if err := o.store.UpdateOrderFields(ctx, orderID, map[string]interface{}{
		"contact_first_name": trimmed,
	}); err != nil {
		return nil, err
	}
	return o.GetOrderSummary(ctx, orderID)
}

// ConfirmOrder 整包atomic: 前置檢查、逐筆扣庫存、狀態轉CONFIRMED，
// 任何一筆扣不動就全部rollback。確認後金額凍結，不再重算。
// 前置條件依序檢查，每項缺漏回傳專屬錯誤讓對話層能精準追問
func (o *OrderService) ConfirmOrder(ctx context.Context, orderID uuid.UUID) (*OrderSummary, error) {
	o.logger.Info().Str("order_id", orderID.String()).Msg("confirmOrder")

	var confirmed *model.Order
	err := o.store.ExecTx(ctx, func(s db.IStore) error {
		order, err := s.GetOrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotExist
		}
		if order.Status != model.OrderStatusCart {
			return ErrOrderNotMutable
		}
		if len(order.Items) == 0 {
			return ErrEmptyOrder
		}
		if order.ContactFirstName == nil || strings.TrimSpace(*order.ContactFirstName) == "" {
			return ErrMissingContact
		}
		if order.Shipping == nil {
			return ErrMissingShipping
		}
		if order.Shipping.Type == model.ShippingTypeDelivery &&
			(order.Shipping.AddressDescription == nil || strings.TrimSpace(*order.Shipping.AddressDescription) == "") {
			return ErrMissingAddress
		}
		if order.Payment == nil || order.Payment.Method == "" {
			return ErrMissingPayment
		}

		for _, item := range order.Items {
			o.logger.Info().
				Str("product_id", item.ProductID.String()).
				Int("quantity", item.Quantity).
				Msg("decrementInventory")
			if err := s.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				switch {
				case errors.Is(err, db.ErrStockNotEnough):
					return fmt.Errorf("%w: product %s", ErrInsufficientStock, item.ProductID)
				case errors.Is(err, db.ErrInventoryNotFound):
					return fmt.Errorf("%w: product %s", ErrInventoryMissing, item.ProductID)
				default:
					return err
				}
			}
		}

		if err := s.UpdateOrderStatus(ctx, orderID, model.OrderStatusConfirmed); err != nil {
			return err
		}
		confirmed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.publishOrderConfirmed(ctx, confirmed)

	return o.GetOrderSummary(ctx, orderID)
}

// 事件發布失敗只記log不回傳錯誤，DB transaction已經commit
func (o *OrderService) publishOrderConfirmed(ctx context.Context, order *model.Order) {
	if o.eventProducer == nil || order == nil {
		return
	}

	items := make([]producer.OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, producer.OrderEventItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	event := producer.OrderConfirmedEvent{
		OrderID:        order.OrderID,
		ConversationID: order.ConversationID,
		Currency:       order.Currency,
		SubtotalAmount: order.SubtotalAmount,
		DiscountAmount: order.DiscountAmount,
		DeliveryFee:    order.DeliveryFee,
		TotalAmount:    order.TotalAmount,
		Items:          items,
		ConfirmedAt:    time.Now().UTC(),
	}
	if err := o.eventProducer.ProduceOrderConfirmed(ctx, event); err != nil {
		o.logger.Warn().
			Err(err).
			Str("order_id", order.OrderID.String()).
			Msg("produceOrderConfirmedFailed")
	}
}

func (o *OrderService) ensureStockAvailability(ctx context.Context, productID uuid.UUID, quantity int) error {
	inventory, err := o.store.GetInventoryByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if inventory == nil {
		o.logger.Warn().
			Str("product_id", productID.String()).
			Int("quantity_requested", quantity).
			Msg("inventoryMissing")
		return fmt.Errorf("%w: product %s", ErrInventoryMissing, productID)
	}
	if inventory.Quantity < quantity {
		o.logger.Warn().
			Str("product_id", productID.String()).
			Int("quantity_requested", quantity).
			Int("quantity_available", inventory.Quantity).
			Msg("inventoryInsufficient")
		return fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, quantity, inventory.Quantity)
	}
	return nil
}

// 快照補值: 沒有name就整包從目錄補，只缺image就補image，
// 呼叫端給的欄位不覆蓋
func (o *OrderService) resolveSnapshot(ctx context.Context, productID uuid.UUID, provided *model.ProductSnapshot) (model.ProductSnapshot, error) {
	snapshot := model.ProductSnapshot{}
	if provided != nil {
		snapshot = *provided
	}
	if snapshot.Name != "" && snapshot.Image != "" {
		return snapshot, nil
	}

	product, err := o.store.GetProductByID(ctx, productID)
	if err != nil {
		return snapshot, err
	}
	if product == nil {
		return snapshot, nil
	}

	if snapshot.Name == "" {
		snapshot.Name = product.Name
		snapshot.Type = product.Type
	}
	if snapshot.Image == "" {
		snapshot.Image = product.Image
	}
	return snapshot, nil
}

func ensureCartOrder(ctx context.Context, s db.IStore, orderID uuid.UUID) error {
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotExist
	}
	if order.Status != model.OrderStatusCart {
		return ErrOrderNotMutable
	}
	return nil
}

// recalculateOrderTotals mutation後同步重算，冪等:
// subtotal = Σ 明細小計; discount = 所有促銷候選折扣取max;
// total = max(subtotal - discount + deliveryFee, 0)
func (o *OrderService) recalculateOrderTotals(ctx context.Context, s db.IStore, orderID uuid.UUID) (*OrderSummary, error) {
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotExist
	}

	subtotal := decimal.Zero
	for _, item := range order.Items {
		subtotal = subtotal.Add(item.TotalPrice)
	}

	discount, err := o.calculateDiscountAmount(ctx, order)
	if err != nil {
		return nil, err
	}

	deliveryFee := decimal.Zero
	if order.Shipping != nil {
		deliveryFee = order.Shipping.Fee
	}

	total := subtotal.Sub(discount).Add(deliveryFee)
	if total.IsNegative() {
		total = decimal.Zero
	}

	if err := s.UpdateOrderTotals(ctx, orderID, subtotal, discount, deliveryFee, total); err != nil {
		return nil, err
	}
	if order.Payment != nil {
		if err := s.UpdatePaymentAmount(ctx, orderID, total, order.Currency); err != nil {
			return nil, err
		}
	}

	updated, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrOrderNotExist
	}
	return buildOrderSummary(updated), nil
}

// 沒綁菜單就沒有促銷，折扣為0
func (o *OrderService) calculateDiscountAmount(ctx context.Context, order *model.Order) (decimal.Decimal, error) {
	if order.MenuID == nil || len(order.Items) == 0 {
		return decimal.Zero, nil
	}

	promotions, err := o.promotionRepo.FindPromotions(ctx, order.MenuID, false)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if len(promotions) == 0 {
		return decimal.Zero, nil
	}

	promoItems := make([]model.PromoItem, 0, len(order.Items))
	for _, item := range order.Items {
		promoItems = append(promoItems, promoItemFromOrderItem(item))
	}

	discount := decimal.Zero
	for _, promo := range promotions {
		candidate := DiscountCandidate(promo, promoItems)
		if candidate.GreaterThan(discount) {
			discount = candidate
		}
	}
	return discount, nil
}

func buildOrderSummary(order *model.Order) *OrderSummary {
	summary := &OrderSummary{
		OrderID:        order.OrderID,
		Status:         order.Status,
		Currency:       order.Currency,
		SubtotalAmount: order.SubtotalAmount,
		DiscountAmount: order.DiscountAmount,
		DeliveryFee:    order.DeliveryFee,
		TotalAmount:    order.TotalAmount,
	}
	if order.ContactFirstName != nil {
		summary.ContactFirstName = *order.ContactFirstName
	}

	summary.Items = make([]OrderLine, 0, len(order.Items))
	for _, item := range order.Items {
		summary.Items = append(summary.Items, OrderLine{
			OrderItemID:  item.OrderItemID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   item.TotalPrice,
			ProductName:  resolveProductName(item),
			ProductImage: resolveProductImage(item),
			Snapshot:     item.Snapshot,
		})
	}

	if order.Shipping != nil {
		summary.Shipping = &ShippingSummary{
			Type:               order.Shipping.Type,
			Fee:                order.Shipping.Fee,
			AddressDescription: order.Shipping.AddressDescription,
			PickupLocation:     order.Shipping.PickupLocation,
		}
	}
	if order.Payment != nil {
		summary.Payment = &PaymentSummary{
			Status:   order.Payment.Status,
			Amount:   order.Payment.Amount,
			Currency: order.Payment.Currency,
			Method:   order.Payment.Method,
		}
	}
	return summary
}

// 顯示名稱fallback: 快照 -> 目錄 -> productID後4碼
func resolveProductName(item model.OrderItem) string {
	if item.Snapshot.Name != "" {
		return item.Snapshot.Name
	}
	if item.Product != nil && item.Product.Name != "" {
		return item.Product.Name
	}
	id := item.ProductID.String()
	return "Producto " + id[len(id)-4:]
}

func resolveProductImage(item model.OrderItem) string {
	if item.Snapshot.Image != "" {
		return item.Snapshot.Image
	}
	if item.Product != nil {
		return item.Product.Image
	}
	return ""
}

var _ IOrderService = (*OrderService)(nil)
