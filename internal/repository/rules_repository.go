package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shipping-quote-service/internal/engine"
	"shipping-quote-service/internal/models"
)

const rulesCacheKey = "shipping:rules:snapshot"

// RulesRepository assembles the shipping reference tables into one coherent
// RuleSet snapshot. The engine never touches the database or cache itself;
// this layer owns snapshot freshness.
type RulesRepository struct {
	db       *gorm.DB
	redis    *redis.Client // optional, snapshot cache disabled when nil
	cacheTTL time.Duration
}

// NewRulesRepository creates a new rules repository
func NewRulesRepository(db *gorm.DB, redisClient *redis.Client, cacheTTL time.Duration) *RulesRepository {
	return &RulesRepository{
		db:       db,
		redis:    redisClient,
		cacheTTL: cacheTTL,
	}
}

// LoadRuleSet returns the current reference-table snapshot, from the Redis
// cache when fresh, otherwise from the database in one pass. All eight
// tables are loaded together so the snapshot stays internally consistent.
func (r *RulesRepository) LoadRuleSet(ctx context.Context) (*engine.RuleSet, error) {
	if cached := r.loadCached(ctx); cached != nil {
		return cached, nil
	}

	var rules engine.RuleSet

	if err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&rules.Zones).Error; err != nil {
		return nil, fmt.Errorf("failed to load shipping zones: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("country_code ASC").Find(&rules.ZoneCountries).Error; err != nil {
		return nil, fmt.Errorf("failed to load zone countries: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&rules.SizeClasses).Error; err != nil {
		return nil, fmt.Errorf("failed to load size classes: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&rules.Methods).Error; err != nil {
		return nil, fmt.Errorf("failed to load shipping methods: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&rules.Options).Error; err != nil {
		return nil, fmt.Errorf("failed to load shipping options: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("priority ASC, id ASC").Find(&rules.RateRules).Error; err != nil {
		return nil, fmt.Errorf("failed to load rate rules: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rules.FreeThresholds).Error; err != nil {
		return nil, fmt.Errorf("failed to load free shipping thresholds: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rules.OptionPrices).Error; err != nil {
		return nil, fmt.Errorf("failed to load option prices: %w", err)
	}

	r.storeCached(ctx, &rules)
	return &rules, nil
}

// InvalidateRuleSet drops the cached snapshot so the next quote sees fresh
// reference data before the TTL expires.
func (r *RulesRepository) InvalidateRuleSet(ctx context.Context) error {
	if r.redis == nil {
		return nil
	}
	return r.redis.Del(ctx, rulesCacheKey).Err()
}

func (r *RulesRepository) loadCached(ctx context.Context) *engine.RuleSet {
	if r.redis == nil {
		return nil
	}
	payload, err := r.redis.Get(ctx, rulesCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var rules engine.RuleSet
	if err := json.Unmarshal(payload, &rules); err != nil {
		log.Printf("Failed to decode cached rule set, reloading from database: %v", err)
		return nil
	}
	return &rules
}

func (r *RulesRepository) storeCached(ctx context.Context, rules *engine.RuleSet) {
	if r.redis == nil {
		return
	}
	payload, err := json.Marshal(rules)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, rulesCacheKey, payload, r.cacheTTL).Err(); err != nil {
		log.Printf("Failed to cache rule set: %v", err)
	}
}

// ListActiveZones returns the active zones with their country mappings,
// ordered for display
func (r *RulesRepository) ListActiveZones(ctx context.Context) ([]models.ShippingZone, error) {
	var zones []models.ShippingZone
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Preload("Countries").
		Order("sort_order ASC").
		Find(&zones).Error
	if err != nil {
		return nil, err
	}
	return zones, nil
}

// ListActiveMethods returns the active shipping methods ordered for display
func (r *RulesRepository) ListActiveMethods(ctx context.Context) ([]models.ShippingMethod, error) {
	var methods []models.ShippingMethod
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("sort_order ASC").
		Find(&methods).Error
	if err != nil {
		return nil, err
	}
	return methods, nil
}

// ListActiveOptions returns the active shipping add-on options
func (r *RulesRepository) ListActiveOptions(ctx context.Context) ([]models.ShippingOption, error) {
	var options []models.ShippingOption
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("code ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

// ListActiveSizeClasses returns the active size classes
func (r *RulesRepository) ListActiveSizeClasses(ctx context.Context) ([]models.SizeClass, error) {
	var classes []models.SizeClass
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("weight_points ASC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}
