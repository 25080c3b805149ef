package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/FacundoGArg/empanadora/internal/domain/model"
	"github.com/FacundoGArg/empanadora/internal/infra/repository/db"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type IPromotionService interface {
	GetPromotions(ctx context.Context, menuID *uuid.UUID, includeInactive bool) ([]model.Promotion, error)
	ConsiderPromotions(ctx context.Context, input ConsiderPromotionsInput) (*PromotionAdvice, error)
}

type PromotionService struct {
	promotionRepo db.IPromotionRepository
	orderRepo     db.IOrderRepository
	productRepo   db.IProductRepository
	menuService   IMenuService
	logger        zerolog.Logger
}

func NewPromotionService(
	promotionRepo db.IPromotionRepository,
	orderRepo db.IOrderRepository,
	productRepo db.IProductRepository,
	menuService IMenuService,
	logger zerolog.Logger,
) *PromotionService {
	return &PromotionService{
		promotionRepo: promotionRepo,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		menuService:   menuService,
		logger:        logger,
	}
}

// RequestedItem 客人口頭想加的品項，尚未入庫。
// ProductID與ProductType至少要有一個，兩個都沒有的品項會被整個略過。
type RequestedItem struct {
	ProductID        *uuid.UUID
	Label            string
	ProductType      model.ProductType
	Quantity         int
	EmpanadaCategory *model.EmpanadaCategory
	BeverageCategory *model.BeverageCategory
}

type ConsiderPromotionsInput struct {
	ConversationID string
	MenuID         *uuid.UUID
	RequestedItems []RequestedItem
}

type MissingRequirement struct {
	Requirement     string `json:"requirement"`
	MissingQuantity int    `json:"missing_quantity"`
}

type PromotionEvaluation struct {
	PromotionID         uuid.UUID            `json:"promotion_id"`
	Name                string               `json:"name"`
	AppliesNow          bool                 `json:"applies_now"`
	BundlesPossible     int                  `json:"bundles_possible,omitempty"`
	MissingRequirements []MissingRequirement `json:"missing_requirements,omitempty"`
	MissingQuantity     int                  `json:"missing_quantity,omitempty"`
	Notes               string               `json:"notes"`
}

// PromotionAdvice 投機評估結果，純查詢不寫任何狀態
type PromotionAdvice struct {
	MenuID        *uuid.UUID            `json:"menu_id,omitempty"`
	AnalyzedItems []model.PromoItem     `json:"analyzed_items"`
	Promotions    []PromotionEvaluation `json:"promotions"`
	Summary       string                `json:"summary"`
}

func (p *PromotionService) GetPromotions(ctx context.Context, menuID *uuid.UUID, includeInactive bool) ([]model.Promotion, error) {
	return p.promotionRepo.FindPromotions(ctx, menuID, includeInactive)
}

// ConsiderPromotions 以 購物車 ∪ 要求品項 評估每個促銷是否可套用與缺什麼。
// 不mutate任何狀態，可與其他操作完全併發。
func (p *PromotionService) ConsiderPromotions(ctx context.Context, input ConsiderPromotionsInput) (*PromotionAdvice, error) {
	var (
		cartItems []model.PromoItem
		products  map[uuid.UUID]model.Product
		menuID    = input.MenuID
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, cartMenuID, err := p.loadCartContext(gctx, input.ConversationID, input.MenuID)
		if err != nil {
			return err
		}
		cartItems = items
		if menuID == nil {
			menuID = cartMenuID
		}
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = p.loadRequestedProducts(gctx, input.RequestedItems)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if menuID == nil {
		resolved, err := p.menuService.ResolveMenuID(ctx, nil)
		if err != nil {
			return nil, err
		}
		menuID = resolved
	}

	itemsForEvaluation := append(cartItems, normalizeRequestedItems(input.RequestedItems, products)...)

	promotions, err := p.promotionRepo.FindPromotions(ctx, menuID, false)
	if err != nil {
		return nil, err
	}

	advice := &PromotionAdvice{
		MenuID:        menuID,
		AnalyzedItems: itemsForEvaluation,
	}

	if len(promotions) == 0 {
		advice.Summary = "No se encontraron promociones activas para el menú seleccionado."
		return advice, nil
	}

	applicable := make([]string, 0, len(promotions))
	for _, promo := range promotions {
		evaluation := EvaluatePromotion(promo, itemsForEvaluation)
		if evaluation.AppliesNow {
			applicable = append(applicable, evaluation.Name)
		}
		advice.Promotions = append(advice.Promotions, evaluation)
	}

	if len(applicable) > 0 {
		advice.Summary = fmt.Sprintf("Se pueden aplicar %d promoción(es): %s.",
			len(applicable), strings.Join(applicable, ", "))
	} else {
		advice.Summary = "Todavía no se cumplen los requisitos para aplicar una promoción; revisa los faltantes indicados."
	}

	p.logger.Info().
		Str("conversation_id", input.ConversationID).
		Int("analyzed_items", len(itemsForEvaluation)).
		Int("applicable", len(applicable)).
		Msg("considerPromotions")

	return advice, nil
}

// 取出對話當前購物車的正規化品項與菜單
func (p *PromotionService) loadCartContext(ctx context.Context, conversationID string, preferredMenuID *uuid.UUID) ([]model.PromoItem, *uuid.UUID, error) {
	if conversationID == "" {
		return nil, preferredMenuID, nil
	}

	order, err := p.orderRepo.FindCartByConversation(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, preferredMenuID, nil
	}

	items := make([]model.PromoItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, promoItemFromOrderItem(item))
	}

	menuID := preferredMenuID
	if menuID == nil {
		menuID = order.MenuID
	}
	return items, menuID, nil
}

func (p *PromotionService) loadRequestedProducts(ctx context.Context, requested []RequestedItem) (map[uuid.UUID]model.Product, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0, len(requested))
	for _, item := range requested {
		if item.ProductID == nil {
			continue
		}
		if _, ok := seen[*item.ProductID]; ok {
			continue
		}
		seen[*item.ProductID] = struct{}{}
		ids = append(ids, *item.ProductID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	products, err := p.productRepo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]model.Product, len(products))
	for _, product := range products {
		productMap[product.ProductID] = product
	}
	return productMap, nil
}

// 要求品項補上目錄資訊，型別無法辨識的直接丟棄
func normalizeRequestedItems(requested []RequestedItem, products map[uuid.UUID]model.Product) []model.PromoItem {
	normalized := make([]model.PromoItem, 0, len(requested))
	for _, item := range requested {
		promoItem := model.PromoItem{
			Source:           model.PromoItemSourceRequested,
			ProductID:        item.ProductID,
			ProductType:      item.ProductType,
			EmpanadaCategory: item.EmpanadaCategory,
			BeverageCategory: item.BeverageCategory,
			Quantity:         item.Quantity,
			Label:            item.Label,
		}
		if item.ProductID != nil {
			if product, ok := products[*item.ProductID]; ok {
				promoItem.ProductType = product.Type
				if category := product.EmpanadaCategoryOf(); category != nil {
					promoItem.EmpanadaCategory = category
				}
				if category := product.BeverageCategoryOf(); category != nil {
					promoItem.BeverageCategory = category
				}
				if product.Name != "" {
					promoItem.Label = product.Name
				}
			}
		}
		if promoItem.ProductType == "" {
			continue
		}
		normalized = append(normalized, promoItem)
	}
	return normalized
}

func promoItemFromOrderItem(item model.OrderItem) model.PromoItem {
	productID := item.ProductID
	promoItem := model.PromoItem{
		Source:    model.PromoItemSourceCart,
		ProductID: &productID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
		Label:     item.Snapshot.Name,
	}
	if item.Product != nil {
		promoItem.ProductType = item.Product.Type
		promoItem.EmpanadaCategory = item.Product.EmpanadaCategoryOf()
		promoItem.BeverageCategory = item.Product.BeverageCategoryOf()
		if promoItem.Label == "" {
			promoItem.Label = item.Product.Name
		}
	} else {
		promoItem.ProductType = item.Snapshot.Type
	}
	return promoItem
}

// EvaluatePromotion 純函式，判斷促銷對給定品項是否可套用。
// 未知促銷型別一律降級為不可套用，不回傳錯誤。
func EvaluatePromotion(promotion model.Promotion, items []model.PromoItem) PromotionEvaluation {
	switch promotion.Type {
	case model.PromotionTypeFixedBundlePrice:
		return evaluateFixedBundlePromotion(promotion, items)
	case model.PromotionTypeQuantityDiscount:
		return evaluateQuantityDiscountPromotion(promotion, items)
	default:
		return PromotionEvaluation{
			PromotionID: promotion.PromotionID,
			Name:        promotion.Name,
			AppliesNow:  false,
			Notes:       "Tipo de promoción no soportado para evaluación automática.",
		}
	}
}

func evaluateFixedBundlePromotion(promotion model.Promotion, items []model.PromoItem) PromotionEvaluation {
	if len(promotion.Requirements) == 0 {
		return PromotionEvaluation{
			PromotionID: promotion.PromotionID,
			Name:        promotion.Name,
			AppliesNow:  false,
			Notes:       "La promoción no tiene requisitos definidos.",
		}
	}

	// bundle需要所有requirement同時滿足，AND語意取min
	bundlesPossible := -1
	missing := make([]MissingRequirement, 0)
	for _, requirement := range promotion.Requirements {
		availableQty := countMatchingQuantity(items, requirement)
		bundles := 0
		if requirement.Qty > 0 {
			bundles = availableQty / requirement.Qty
		}
		if bundlesPossible < 0 || bundles < bundlesPossible {
			bundlesPossible = bundles
		}
		if missingForFirstBundle := requirement.Qty - availableQty; missingForFirstBundle > 0 {
			missing = append(missing, MissingRequirement{
				Requirement:     describeRequirement(requirement),
				MissingQuantity: missingForFirstBundle,
			})
		}
	}

	cappedBundles := bundlesPossible
	if !promotion.Stackable && cappedBundles > 1 {
		cappedBundles = 1
	}

	evaluation := PromotionEvaluation{
		PromotionID:         promotion.PromotionID,
		Name:                promotion.Name,
		AppliesNow:          cappedBundles >= 1,
		BundlesPossible:     cappedBundles,
		MissingRequirements: missing,
	}
	if evaluation.AppliesNow {
		evaluation.Notes = fmt.Sprintf("Puedes aplicar %d vez/veces esta promo con los productos actuales.", cappedBundles)
	} else {
		evaluation.Notes = "Aún faltan productos para completar los requisitos indicados."
	}
	return evaluation
}

// QUANTITY_DISCOUNT看的是整車總數量，刻意不分商品型別(產品政策，非bug)
func evaluateQuantityDiscountPromotion(promotion model.Promotion, items []model.PromoItem) PromotionEvaluation {
	totalQuantity := 0
	for _, item := range items {
		totalQuantity += item.Quantity
	}

	appliesNow := totalQuantity >= promotion.MinQty
	missingQuantity := promotion.MinQty - totalQuantity
	if missingQuantity < 0 {
		missingQuantity = 0
	}

	evaluation := PromotionEvaluation{
		PromotionID:     promotion.PromotionID,
		Name:            promotion.Name,
		AppliesNow:      appliesNow,
		MissingQuantity: missingQuantity,
	}
	if appliesNow {
		evaluation.Notes = "La cantidad combinada alcanza el mínimo requerido."
	} else {
		evaluation.Notes = fmt.Sprintf("Necesitas %d unidad(es) más para activar esta promo.", missingQuantity)
	}
	return evaluation
}

// DiscountCandidate 計算單一促銷的候選折扣金額。
// 所有促銷互斥，呼叫端取所有候選的max，不是加總。
func DiscountCandidate(promotion model.Promotion, items []model.PromoItem) decimal.Decimal {
	switch promotion.Type {
	case model.PromotionTypeQuantityDiscount:
		return quantityDiscountCandidate(promotion, items)
	case model.PromotionTypeFixedBundlePrice:
		return fixedBundleDiscountCandidate(promotion, items)
	default:
		return decimal.Zero
	}
}

func quantityDiscountCandidate(promotion model.Promotion, items []model.PromoItem) decimal.Decimal {
	totalQuantity := 0
	subtotal := decimal.Zero
	for _, item := range items {
		totalQuantity += item.Quantity
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if promotion.MinQty <= 0 || totalQuantity < promotion.MinQty {
		return decimal.Zero
	}

	switch promotion.DiscountKind {
	case model.DiscountKindPercent:
		// DiscountValue是小數比例，0.1 = 10%
		return subtotal.Mul(promotion.DiscountValue)
	case model.DiscountKindAmount:
		return promotion.DiscountValue
	default:
		return decimal.Zero
	}
}

// fixedBundleDiscountCandidate 把bundle實際吃掉的品項價值隔離出來，
// 換成bundle固定價，差額就是折扣。bundle不會送出超過它取代的價值，
// 也永遠不會算出負折扣。
func fixedBundleDiscountCandidate(promotion model.Promotion, items []model.PromoItem) decimal.Decimal {
	if len(promotion.Requirements) == 0 || promotion.FixedPrice.IsZero() {
		return decimal.Zero
	}

	maxBundles := -1
	for _, requirement := range promotion.Requirements {
		availableQty := countMatchingQuantity(items, requirement)
		bundles := 0
		if requirement.Qty > 0 {
			bundles = availableQty / requirement.Qty
		}
		if maxBundles < 0 || bundles < maxBundles {
			maxBundles = bundles
		}
	}
	if maxBundles <= 0 {
		return decimal.Zero
	}

	bundlesToApply := maxBundles
	if !promotion.Stackable {
		bundlesToApply = 1
	}

	one := decimal.NewFromInt(1)
	bundleValue := decimal.Zero
	for _, requirement := range promotion.Requirements {
		totalEligibleQty := 0
		totalEligibleValue := decimal.Zero
		for _, item := range items {
			if !promoItemMatchesRequirement(item, requirement) {
				continue
			}
			totalEligibleQty += item.Quantity
			totalEligibleValue = totalEligibleValue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		if totalEligibleQty == 0 {
			continue
		}

		qtyNeeded := bundlesToApply * requirement.Qty
		proportion := decimal.NewFromInt(int64(qtyNeeded)).Div(decimal.NewFromInt(int64(totalEligibleQty)))
		if proportion.GreaterThan(one) {
			proportion = one
		}
		bundleValue = bundleValue.Add(totalEligibleValue.Mul(proportion))
	}

	promoPrice := promotion.FixedPrice.Mul(decimal.NewFromInt(int64(bundlesToApply)))
	candidate := bundleValue.Sub(promoPrice)
	if candidate.IsNegative() {
		return decimal.Zero
	}
	return candidate
}

func countMatchingQuantity(items []model.PromoItem, requirement model.PromotionRequirement) int {
	total := 0
	for _, item := range items {
		if promoItemMatchesRequirement(item, requirement) {
			total += item.Quantity
		}
	}
	return total
}

func promoItemMatchesRequirement(item model.PromoItem, requirement model.PromotionRequirement) bool {
	if item.ProductType == "" || item.ProductType != requirement.ProductType {
		return false
	}

	if requirement.ProductType == model.ProductTypeEmpanada && requirement.EmpanadaCategory != nil {
		if item.EmpanadaCategory == nil || *item.EmpanadaCategory != *requirement.EmpanadaCategory {
			return false
		}
	}

	if requirement.ProductType == model.ProductTypeBeverage && len(requirement.BeverageCategories) > 0 {
		// 空列表代表任意飲料，有列表就必須命中
		if item.BeverageCategory == nil {
			return false
		}
		matched := false
		for _, category := range requirement.BeverageCategories {
			if category == *item.BeverageCategory {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

func describeRequirement(requirement model.PromotionRequirement) string {
	baseQty := fmt.Sprintf("%dx", requirement.Qty)

	switch requirement.ProductType {
	case model.ProductTypeEmpanada:
		if requirement.EmpanadaCategory != nil {
			return fmt.Sprintf("%s empanadas %s", baseQty, strings.ToLower(string(*requirement.EmpanadaCategory)))
		}
		return fmt.Sprintf("%s empanadas", baseQty)
	case model.ProductTypeBeverage:
		if len(requirement.BeverageCategories) > 0 {
			categories := make([]string, 0, len(requirement.BeverageCategories))
			for _, category := range requirement.BeverageCategories {
				categories = append(categories, string(category))
			}
			return fmt.Sprintf("%s bebidas (%s)", baseQty, strings.Join(categories, ", "))
		}
		return fmt.Sprintf("%s bebidas", baseQty)
	default:
		return fmt.Sprintf("%s %s", baseQty, strings.ToLower(string(requirement.ProductType)))
	}
}

var _ IPromotionService = (*PromotionService)(nil)
