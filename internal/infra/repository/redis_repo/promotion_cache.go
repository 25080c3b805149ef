package redis_repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/FacundoGArg/empanadora/internal/domain/model"
	"github.com/FacundoGArg/empanadora/internal/infra/repository/db"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultPromotionTTL = 5 * time.Minute

// CachedPromotionRepo 促銷定義是讀多寫少的參考資料，
// 對active清單做read-through快取，TTL到期自然失效
type CachedPromotionRepo struct {
	cache  *redis.Client
	source db.IPromotionRepository
	ttl    time.Duration
}

func NewCachedPromotionRepo(cache *redis.Client, source db.IPromotionRepository, ttl time.Duration) *CachedPromotionRepo {
	if ttl <= 0 {
		ttl = defaultPromotionTTL
	}
	return &CachedPromotionRepo{cache: cache, source: source, ttl: ttl}
}

func generatePromotionsKey(menuID *uuid.UUID) string {
	if menuID == nil {
		return "promotions:all"
	}
	return fmt.Sprintf("promotions:%s", menuID.String())
}

func (r *CachedPromotionRepo) CreatePromotion(ctx context.Context, promotion *model.Promotion) error {
	if err := r.source.CreatePromotion(ctx, promotion); err != nil {
		return err
	}
	// 寫入後讓對應快取失效，下次讀取回源
	r.cache.Del(ctx, generatePromotionsKey(&promotion.MenuID), generatePromotionsKey(nil))
	return nil
}

func (r *CachedPromotionRepo) FindPromotions(ctx context.Context, menuID *uuid.UUID, includeInactive bool) ([]model.Promotion, error) {
	// inactive查詢是後台用途，不走快取
	if includeInactive {
		return r.source.FindPromotions(ctx, menuID, includeInactive)
	}

	key := generatePromotionsKey(menuID)
	cached, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var promotions []model.Promotion
		if err := json.Unmarshal([]byte(cached), &promotions); err == nil {
			return promotions, nil
		}
		// 快取內容壞掉就刪掉回源
		r.cache.Del(ctx, key)
	}

	promotions, err := r.source.FindPromotions(ctx, menuID, includeInactive)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(promotions); err == nil {
		// 快取寫入失敗不影響回傳
		r.cache.Set(ctx, key, payload, r.ttl)
	}
	return promotions, nil
}

var _ db.IPromotionRepository = (*CachedPromotionRepo)(nil)
