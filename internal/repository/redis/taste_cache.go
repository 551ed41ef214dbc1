package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"homeMatch/business/recommend"
	"homeMatch/business/taste"
	"homeMatch/domain"
	"homeMatch/pkg/logger"
)

// Store is the postgres taste repository the cache decorates.
type Store interface {
	FindByTraits(ctx context.Context, profile domain.TasteProfile) (*domain.TasteConfig, error)
	FindByTraitsIgnoringPriority(ctx context.Context, profile domain.TasteProfile) (*domain.TasteConfig, error)
	FindAllActive(ctx context.Context) ([]domain.TasteConfig, error)
	FindByID(ctx context.Context, tasteID uint64) (*domain.TasteConfig, error)
	UpdateRecommendedProducts(ctx context.Context, tasteID uint64, products map[string][]uint64, scores map[string][]int) error
}

// TasteConfigCache is a read-through decorator. Single-row lookups are
// cached by taste_id and by trait tuple; the batch write invalidates
// both keys so readers never see a stale precomputed mapping.
type TasteConfigCache struct {
	store  Store
	client *redis.Client
	ttl    time.Duration
}

var (
	_ taste.TasteConfigRepository = (*TasteConfigCache)(nil)
	_ recommend.TasteConfigWriter = (*TasteConfigCache)(nil)
)

func NewTasteConfigCache(store Store, client *redis.Client, ttl time.Duration) *TasteConfigCache {
	return &TasteConfigCache{store: store, client: client, ttl: ttl}
}

func idKey(tasteID uint64) string {
	return fmt.Sprintf("taste_config:id:%d", tasteID)
}

func traitsKey(p domain.TasteProfile) string {
	return fmt.Sprintf("taste_config:traits:%s|%d|%t|%s|%s",
		p.Vibe, p.HouseholdSize, p.HasPet, p.Priority, p.BudgetLevel)
}

func (c *TasteConfigCache) FindByTraits(ctx context.Context, profile domain.TasteProfile) (*domain.TasteConfig, error) {
	key := traitsKey(profile)
	if cached := c.get(ctx, key); cached != nil {
		return cached, nil
	}

	config, err := c.store.FindByTraits(ctx, profile)
	if err != nil {
		return nil, err
	}
	c.set(ctx, config, key, idKey(config.TasteID))

	return config, nil
}

// FindByTraitsIgnoringPriority is not cached: the four-attribute match
// is a fallback path and caching it would shadow newly added exact
// rows for the whole TTL.
func (c *TasteConfigCache) FindByTraitsIgnoringPriority(ctx context.Context, profile domain.TasteProfile) (*domain.TasteConfig, error) {
	return c.store.FindByTraitsIgnoringPriority(ctx, profile)
}

func (c *TasteConfigCache) FindAllActive(ctx context.Context) ([]domain.TasteConfig, error) {
	return c.store.FindAllActive(ctx)
}

func (c *TasteConfigCache) FindByID(ctx context.Context, tasteID uint64) (*domain.TasteConfig, error) {
	key := idKey(tasteID)
	if cached := c.get(ctx, key); cached != nil {
		return cached, nil
	}

	config, err := c.store.FindByID(ctx, tasteID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, config, key)

	return config, nil
}

// UpdateRecommendedProducts writes through to the store and drops the
// cached copies of the archetype.
func (c *TasteConfigCache) UpdateRecommendedProducts(ctx context.Context, tasteID uint64, products map[string][]uint64, scores map[string][]int) error {
	if err := c.store.UpdateRecommendedProducts(ctx, tasteID, products, scores); err != nil {
		return err
	}
	c.invalidate(ctx, tasteID)

	return nil
}

func (c *TasteConfigCache) get(ctx context.Context, key string) *domain.TasteConfig {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Debug("taste cache read failed", "key", key, "error", err)
		}
		return nil
	}

	var config domain.TasteConfig
	if err := json.Unmarshal(payload, &config); err != nil {
		logger.Warn("taste cache payload corrupt, dropping", "key", key, "error", err)
		c.client.Del(ctx, key)
		return nil
	}

	return &config
}

func (c *TasteConfigCache) set(ctx context.Context, config *domain.TasteConfig, keys ...string) {
	payload, err := json.Marshal(config)
	if err != nil {
		logger.Warn("taste cache marshal failed", "taste_id", config.TasteID, "error", err)
		return
	}

	for _, key := range keys {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			logger.Debug("taste cache write failed", "key", key, "error", err)
		}
	}
}

func (c *TasteConfigCache) invalidate(ctx context.Context, tasteID uint64) {
	config, err := c.store.FindByID(ctx, tasteID)

	keys := []string{idKey(tasteID)}
	if err == nil {
		keys = append(keys, traitsKey(config.Traits()))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Debug("taste cache invalidation failed", "taste_id", tasteID, "error", err)
	}
}
