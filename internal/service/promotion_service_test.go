package service

import (
	"context"
	"testing"

	"github.com/FacundoGArg/empanadora/internal/domain/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func classicCategory() *model.EmpanadaCategory {
	c := model.EmpanadaCategoryClassic
	return &c
}

func specialCategory() *model.EmpanadaCategory {
	c := model.EmpanadaCategorySpecial
	return &c
}

func waterCategory() *model.BeverageCategory {
	c := model.BeverageCategoryWater
	return &c
}

func beerCategory() *model.BeverageCategory {
	c := model.BeverageCategoryBeer
	return &c
}

func cartEmpanadaItem(qty int, unitPrice float64, category *model.EmpanadaCategory) model.PromoItem {
	id := uuid.New()
	return model.PromoItem{
		Source:           model.PromoItemSourceCart,
		ProductID:        &id,
		ProductType:      model.ProductTypeEmpanada,
		EmpanadaCategory: category,
		Quantity:         qty,
		UnitPrice:        decimal.NewFromFloat(unitPrice),
	}
}

func cartBeverageItem(qty int, unitPrice float64, category *model.BeverageCategory) model.PromoItem {
	id := uuid.New()
	return model.PromoItem{
		Source:           model.PromoItemSourceCart,
		ProductID:        &id,
		ProductType:      model.ProductTypeBeverage,
		BeverageCategory: category,
		Quantity:         qty,
		UnitPrice:        decimal.NewFromFloat(unitPrice),
	}
}

// 3x empanada CLASSIC + 1x bebida(WATER/SOFT_DRINK) 固定價促銷
func fixedBundlePromo(fixedPrice float64, stackable bool) model.Promotion {
	return model.Promotion{
		PromotionID: uuid.New(),
		MenuID:      uuid.New(),
		Name:        "Promo 3 clásicas + bebida",
		Type:        model.PromotionTypeFixedBundlePrice,
		Active:      true,
		Stackable:   stackable,
		FixedPrice:  decimal.NewFromFloat(fixedPrice),
		Currency:    "ARS",
		Requirements: []model.PromotionRequirement{
			{
				RequirementID:    uuid.New(),
				Qty:              3,
				ProductType:      model.ProductTypeEmpanada,
				EmpanadaCategory: classicCategory(),
			},
			{
				RequirementID:      uuid.New(),
				Qty:                1,
				ProductType:        model.ProductTypeBeverage,
				BeverageCategories: []model.BeverageCategory{model.BeverageCategoryWater, model.BeverageCategorySoftDrink},
			},
		},
	}
}

func quantityDiscountPromo(minQty int, kind model.DiscountKind, value float64) model.Promotion {
	return model.Promotion{
		PromotionID:   uuid.New(),
		MenuID:        uuid.New(),
		Name:          "Descuento por docena",
		Type:          model.PromotionTypeQuantityDiscount,
		Active:        true,
		MinQty:        minQty,
		DiscountKind:  kind,
		DiscountValue: decimal.NewFromFloat(value),
		Currency:      "ARS",
	}
}

func TestEvaluateFixedBundlePromotion(t *testing.T) {
	tests := []struct {
		name            string
		promotion       model.Promotion
		items           []model.PromoItem
		wantApplies     bool
		wantBundles     int
		wantMissingReqs int
	}{
		{
			name:      "完整湊齊一組bundle",
			promotion: fixedBundlePromo(8200, false),
			items: []model.PromoItem{
				cartEmpanadaItem(3, 2000, classicCategory()),
				cartBeverageItem(1, 2700, waterCategory()),
			},
			wantApplies: true,
			wantBundles: 1,
		},
		{
			name:      "stackable允許多組",
			promotion: fixedBundlePromo(8200, true),
			items: []model.PromoItem{
				cartEmpanadaItem(6, 2000, classicCategory()),
				cartBeverageItem(2, 2700, waterCategory()),
			},
			wantApplies: true,
			wantBundles: 2,
		},
		{
			name:      "非stackable超量仍只算一組",
			promotion: fixedBundlePromo(8200, false),
			items: []model.PromoItem{
				cartEmpanadaItem(6, 2000, classicCategory()),
				cartBeverageItem(2, 2700, waterCategory()),
			},
			wantApplies: true,
			wantBundles: 1,
		},
		{
			name:      "缺飲料不成組",
			promotion: fixedBundlePromo(8200, false),
			items: []model.PromoItem{
				cartEmpanadaItem(3, 2000, classicCategory()),
			},
			wantApplies:     false,
			wantBundles:     0,
			wantMissingReqs: 1,
		},
		{
			name:      "分類不符的empanada不計入",
			promotion: fixedBundlePromo(8200, false),
			items: []model.PromoItem{
				cartEmpanadaItem(3, 2500, specialCategory()),
				cartBeverageItem(1, 2700, waterCategory()),
			},
			wantApplies:     false,
			wantBundles:     0,
			wantMissingReqs: 1,
		},
		{
			name:      "飲料分類不在白名單內不計入",
			promotion: fixedBundlePromo(8200, false),
			items: []model.PromoItem{
				cartEmpanadaItem(3, 2000, classicCategory()),
				cartBeverageItem(1, 3500, beerCategory()),
			},
			wantApplies:     false,
			wantBundles:     0,
			wantMissingReqs: 1,
		},
		{
			name:      "兩項都缺回報兩筆faltante",
			promotion: fixedBundlePromo(8200, false),
			items: []model.PromoItem{
				cartEmpanadaItem(1, 2000, classicCategory()),
			},
			wantApplies:     false,
			wantBundles:     0,
			wantMissingReqs: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluation := EvaluatePromotion(tt.promotion, tt.items)

			require.Equal(t, tt.wantApplies, evaluation.AppliesNow)
			require.Equal(t, tt.wantBundles, evaluation.BundlesPossible)
			require.Len(t, evaluation.MissingRequirements, tt.wantMissingReqs)
			require.NotEmpty(t, evaluation.Notes)
		})
	}
}

func TestEvaluateQuantityDiscountPromotion(t *testing.T) {
	tests := []struct {
		name        string
		minQty      int
		items       []model.PromoItem
		wantApplies bool
		wantMissing int
	}{
		{
			name:   "跨型別總量達標",
			minQty: 12,
			items: []model.PromoItem{
				cartEmpanadaItem(10, 2000, classicCategory()),
				cartBeverageItem(2, 2700, waterCategory()),
			},
			wantApplies: true,
		},
		{
			name:   "總量不足回報缺額",
			minQty: 12,
			items: []model.PromoItem{
				cartEmpanadaItem(10, 2000, classicCategory()),
			},
			wantApplies: false,
			wantMissing: 2,
		},
		{
			name:        "空車缺整個mínimo",
			minQty:      12,
			items:       nil,
			wantApplies: false,
			wantMissing: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promo := quantityDiscountPromo(tt.minQty, model.DiscountKindPercent, 0.1)
			evaluation := EvaluatePromotion(promo, tt.items)

			require.Equal(t, tt.wantApplies, evaluation.AppliesNow)
			require.Equal(t, tt.wantMissing, evaluation.MissingQuantity)
		})
	}
}

func TestEvaluatePromotion_UnknownTypeDegrades(t *testing.T) {
	promo := model.Promotion{
		PromotionID: uuid.New(),
		Name:        "Promo misteriosa",
		Type:        "HAPPY_HOUR",
		Active:      true,
	}

	evaluation := EvaluatePromotion(promo, []model.PromoItem{cartEmpanadaItem(3, 2000, classicCategory())})

	require.False(t, evaluation.AppliesNow)
	require.Equal(t, "Tipo de promoción no soportado para evaluación automática.", evaluation.Notes)
}

func TestFixedBundleDiscountCandidate(t *testing.T) {
	tests := []struct {
		name         string
		promotion    model.Promotion
		items        []model.PromoItem
		wantDiscount string
	}{
		{
			// bundle價值 3*2000 + 2700 = 8700, 固定價8200 → 折500
			name:      "一組bundle的差額",
			promotion: fixedBundlePromo(8200, false),
			items: []model.PromoItem{
				cartEmpanadaItem(3, 2000, classicCategory()),
				cartBeverageItem(1, 2700, waterCategory()),
			},
			wantDiscount: "500",
		},
		{
			// stackable兩組: 2*8700 - 2*8200 = 1000
			name:      "stackable兩組翻倍",
			promotion: fixedBundlePromo(8200, true),
			items: []model.PromoItem{
				cartEmpanadaItem(6, 2000, classicCategory()),
				cartBeverageItem(2, 2700, waterCategory()),
			},
			wantDiscount: "1000",
		},
		{
			// 非stackable超量: 只隔離一組的比例價值
			// empanadas 3/6 * 12000 = 6000, bebida 1/2 * 5400 = 2700 → 8700 - 8200 = 500
			name:      "非stackable只折一組",
			promotion: fixedBundlePromo(8200, false),
			items: []model.PromoItem{
				cartEmpanadaItem(6, 2000, classicCategory()),
				cartBeverageItem(2, 2700, waterCategory()),
			},
			wantDiscount: "500",
		},
		{
			// 固定價高於bundle價值時不倒貼
			name:      "折扣不為負",
			promotion: fixedBundlePromo(99999, false),
			items: []model.PromoItem{
				cartEmpanadaItem(3, 2000, classicCategory()),
				cartBeverageItem(1, 2700, waterCategory()),
			},
			wantDiscount: "0",
		},
		{
			name:      "湊不齊不折",
			promotion: fixedBundlePromo(8200, false),
			items: []model.PromoItem{
				cartEmpanadaItem(2, 2000, classicCategory()),
			},
			wantDiscount: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount := DiscountCandidate(tt.promotion, tt.items)
			require.True(t, discount.Equal(decimal.RequireFromString(tt.wantDiscount)),
				"want %s got %s", tt.wantDiscount, discount)
		})
	}
}

func TestQuantityDiscountCandidate(t *testing.T) {
	items := []model.PromoItem{
		cartEmpanadaItem(10, 2000, classicCategory()),
		cartBeverageItem(2, 2700, waterCategory()),
	}
	// subtotal = 20000 + 5400 = 25400

	t.Run("PERCENT以小計計算", func(t *testing.T) {
		promo := quantityDiscountPromo(12, model.DiscountKindPercent, 0.1)
		discount := DiscountCandidate(promo, items)
		require.True(t, discount.Equal(decimal.NewFromInt(2540)), "got %s", discount)
	})

	t.Run("AMOUNT為固定金額", func(t *testing.T) {
		promo := quantityDiscountPromo(12, model.DiscountKindAmount, 1500)
		discount := DiscountCandidate(promo, items)
		require.True(t, discount.Equal(decimal.NewFromInt(1500)), "got %s", discount)
	})

	t.Run("未達門檻無折扣", func(t *testing.T) {
		promo := quantityDiscountPromo(13, model.DiscountKindPercent, 0.1)
		discount := DiscountCandidate(promo, items)
		require.True(t, discount.IsZero(), "got %s", discount)
	})
}

type PromotionServiceTestSuite struct {
	suite.Suite
	store            *memStore
	menuService      IMenuService
	promotionService IPromotionService
	orderService     IOrderService
	menuID           uuid.UUID
	classicProductID uuid.UUID
	waterProductID   uuid.UUID
}

func (s *PromotionServiceTestSuite) SetupTest() {
	s.store = newMemStore()
	logger := zerolog.Nop()
	s.menuService = NewMenuService(s.store)
	s.promotionService = NewPromotionService(s.store, s.store, s.store, s.menuService, logger)
	s.orderService = NewOrderService(s.store, s.store, s.menuService, nil, logger, "ARS")

	ctx := context.Background()

	s.menuID = uuid.New()
	require.NoError(s.T(), s.store.CreateMenu(ctx, &model.Menu{
		MenuID:   s.menuID,
		Name:     "Carta principal",
		Active:   true,
		Currency: "ARS",
	}))

	s.classicProductID = uuid.New()
	require.NoError(s.T(), s.store.CreateProduct(ctx, &model.Product{
		ProductID: s.classicProductID,
		Name:      "Empanada de carne",
		Type:      model.ProductTypeEmpanada,
		Empanada: &model.Empanada{
			ProductID: s.classicProductID,
			Category:  model.EmpanadaCategoryClassic,
		},
	}))
	require.NoError(s.T(), s.store.UpsertInventory(ctx, &model.Inventory{
		ProductID: s.classicProductID,
		Quantity:  100,
	}))

	s.waterProductID = uuid.New()
	require.NoError(s.T(), s.store.CreateProduct(ctx, &model.Product{
		ProductID: s.waterProductID,
		Name:      "Agua mineral",
		Type:      model.ProductTypeBeverage,
		Beverage: &model.Beverage{
			ProductID: s.waterProductID,
			Category:  model.BeverageCategoryWater,
		},
	}))
	require.NoError(s.T(), s.store.UpsertInventory(ctx, &model.Inventory{
		ProductID: s.waterProductID,
		Quantity:  100,
	}))
}

func (s *PromotionServiceTestSuite) createBundlePromo(fixedPrice float64) model.Promotion {
	promo := fixedBundlePromo(fixedPrice, false)
	promo.MenuID = s.menuID
	require.NoError(s.T(), s.store.CreatePromotion(context.Background(), &promo))
	return promo
}

// 購物車已有empanadas，客人口頭問「si agrego un agua?」
func (s *PromotionServiceTestSuite) TestConsiderPromotions_CartPlusRequested() {
	ctx := context.Background()
	s.createBundlePromo(8200)

	cart, err := s.orderService.GetOrCreateActiveCart(ctx, "conv-1", EnsureCartOptions{})
	require.NoError(s.T(), err)
	_, err = s.orderService.AddOrUpdateItem(ctx, AddOrUpdateItemInput{
		OrderID:   cart.OrderID,
		ProductID: s.classicProductID,
		Quantity:  3,
		UnitPrice: decimal.NewFromInt(2000),
	})
	require.NoError(s.T(), err)

	waterID := s.waterProductID
	advice, err := s.promotionService.ConsiderPromotions(ctx, ConsiderPromotionsInput{
		ConversationID: "conv-1",
		RequestedItems: []RequestedItem{
			{ProductID: &waterID, Quantity: 1},
		},
	})

	require.NoError(s.T(), err)
	require.Len(s.T(), advice.Promotions, 1)
	require.True(s.T(), advice.Promotions[0].AppliesNow)
	require.Equal(s.T(), 1, advice.Promotions[0].BundlesPossible)
	require.Len(s.T(), advice.AnalyzedItems, 2)
	require.Contains(s.T(), advice.Summary, "promoción")
}

// 只有購物車，缺飲料 → 回報faltante
func (s *PromotionServiceTestSuite) TestConsiderPromotions_ReportsMissing() {
	ctx := context.Background()
	s.createBundlePromo(8200)

	cart, err := s.orderService.GetOrCreateActiveCart(ctx, "conv-2", EnsureCartOptions{})
	require.NoError(s.T(), err)
	_, err = s.orderService.AddOrUpdateItem(ctx, AddOrUpdateItemInput{
		OrderID:   cart.OrderID,
		ProductID: s.classicProductID,
		Quantity:  3,
		UnitPrice: decimal.NewFromInt(2000),
	})
	require.NoError(s.T(), err)

	advice, err := s.promotionService.ConsiderPromotions(ctx, ConsiderPromotionsInput{
		ConversationID: "conv-2",
	})

	require.NoError(s.T(), err)
	require.Len(s.T(), advice.Promotions, 1)
	require.False(s.T(), advice.Promotions[0].AppliesNow)
	require.Len(s.T(), advice.Promotions[0].MissingRequirements, 1)
	require.Equal(s.T(), 1, advice.Promotions[0].MissingRequirements[0].MissingQuantity)
}

// 沒對話沒購物車，純投機查詢也要能跑
func (s *PromotionServiceTestSuite) TestConsiderPromotions_NoCart() {
	ctx := context.Background()
	s.createBundlePromo(8200)

	advice, err := s.promotionService.ConsiderPromotions(ctx, ConsiderPromotionsInput{
		RequestedItems: []RequestedItem{
			{ProductType: model.ProductTypeEmpanada, Quantity: 3, EmpanadaCategory: classicCategory(), Label: "empanadas clásicas"},
		},
	})

	require.NoError(s.T(), err)
	require.NotNil(s.T(), advice.MenuID)
	require.Equal(s.T(), s.menuID, *advice.MenuID)
	require.Len(s.T(), advice.Promotions, 1)
	require.False(s.T(), advice.Promotions[0].AppliesNow)
}

// 辨識不出型別的要求品項直接略過，不影響其他品項
func (s *PromotionServiceTestSuite) TestConsiderPromotions_DropsUnresolvableItems() {
	ctx := context.Background()
	s.createBundlePromo(8200)

	advice, err := s.promotionService.ConsiderPromotions(ctx, ConsiderPromotionsInput{
		RequestedItems: []RequestedItem{
			{Label: "algo rico", Quantity: 2},
			{ProductType: model.ProductTypeEmpanada, Quantity: 3, EmpanadaCategory: classicCategory()},
		},
	})

	require.NoError(s.T(), err)
	require.Len(s.T(), advice.AnalyzedItems, 1)
}

func (s *PromotionServiceTestSuite) TestGetPromotions_FiltersInactive() {
	ctx := context.Background()
	s.createBundlePromo(8200)

	inactive := quantityDiscountPromo(12, model.DiscountKindPercent, 0.1)
	inactive.MenuID = s.menuID
	inactive.Active = false
	require.NoError(s.T(), s.store.CreatePromotion(ctx, &inactive))

	active, err := s.promotionService.GetPromotions(ctx, &s.menuID, false)
	require.NoError(s.T(), err)
	require.Len(s.T(), active, 1)

	all, err := s.promotionService.GetPromotions(ctx, &s.menuID, true)
	require.NoError(s.T(), err)
	require.Len(s.T(), all, 2)
}

func TestPromotionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PromotionServiceTestSuite))
}
