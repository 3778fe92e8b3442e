// Package classification predicts a spending category from a merchant name.
package classification

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Veraticus/paysnap/internal/common"
	"github.com/Veraticus/paysnap/internal/model"
)

// KeywordSet maps a category to the substrings that select it.
type KeywordSet struct {
	Category string
	Keywords []string
}

// OverrideStore persists explicit user corrections.
type OverrideStore interface {
	SaveVendor(ctx context.Context, vendor *model.Vendor) error
	GetAllVendors(ctx context.Context) ([]model.Vendor, error)
}

// Classifier is a keyword classifier with a sticky merchant cache. The first
// answer for a merchant is kept until Override replaces it.
type Classifier struct {
	store           OverrideStore
	cache           map[string]string
	defaultCategory string
	sets            []KeywordSet
	mu              sync.RWMutex
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithOverrideStore persists overrides through store.
func WithOverrideStore(store OverrideStore) Option {
	return func(c *Classifier) {
		c.store = store
	}
}

// WithDefaultCategory changes the fallback category.
func WithDefaultCategory(category string) Option {
	return func(c *Classifier) {
		c.defaultCategory = category
	}
}

// New creates a classifier evaluating sets in the given order.
func New(sets []KeywordSet, opts ...Option) *Classifier {
	c := &Classifier{
		sets:            sets,
		cache:           make(map[string]string),
		defaultCategory: model.CategoryOther,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDefault creates a classifier with the built-in keyword table.
func NewDefault(opts ...Option) *Classifier {
	return New(DefaultKeywordSets(), opts...)
}

// Classify returns the cached category of merchant or computes, caches and
// returns it. It is total over every input, including the empty string.
func (c *Classifier) Classify(merchant string) string {
	c.mu.RLock()
	category, ok := c.cache[merchant]
	c.mu.RUnlock()
	if ok {
		return category
	}

	computed := c.match(merchant)

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have classified or overridden in between.
	if existing, ok := c.cache[merchant]; ok {
		return existing
	}
	c.cache[merchant] = computed
	return computed
}

func (c *Classifier) match(merchant string) string {
	if merchant == "" {
		return c.defaultCategory
	}
	for _, set := range c.sets {
		for _, kw := range set.Keywords {
			if kw != "" && strings.Contains(merchant, kw) {
				return set.Category
			}
		}
	}
	return c.defaultCategory
}

// Override replaces the cached category of merchant. When a store is
// configured the correction is persisted as well; the in-memory mapping is
// updated even if persisting fails.
func (c *Classifier) Override(ctx context.Context, merchant, category string) error {
	c.mu.Lock()
	c.cache[merchant] = category
	c.mu.Unlock()

	if c.store == nil || strings.TrimSpace(merchant) == "" {
		return nil
	}

	err := c.store.SaveVendor(ctx, &model.Vendor{
		Name:     merchant,
		Category: category,
		Source:   model.SourceManual,
	})
	if err != nil {
		return fmt.Errorf("failed to persist override for %q: %w", merchant, err)
	}
	return nil
}

// LoadOverrides seeds the cache with the persisted manual corrections.
func (c *Classifier) LoadOverrides(ctx context.Context) (int, error) {
	if c.store == nil {
		return 0, nil
	}

	vendors, err := c.store.GetAllVendors(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load overrides: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	loaded := 0
	for _, v := range vendors {
		if v.Source != model.SourceManual {
			continue
		}
		c.cache[v.Name] = v.Category
		loaded++
	}

	common.LogDebug("Loaded category overrides", common.Fields{"count": loaded})
	return loaded, nil
}

// Lookup returns the cached category without classifying.
func (c *Classifier) Lookup(merchant string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	category, ok := c.cache[merchant]
	return category, ok
}

// Cached returns a copy of the cache sorted by merchant, for display.
func (c *Classifier) Cached() []model.Vendor {
	c.mu.RLock()
	out := make([]model.Vendor, 0, len(c.cache))
	for name, category := range c.cache {
		out = append(out, model.Vendor{Name: name, Category: category})
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// KeywordSets returns the ordered table the classifier evaluates.
func (c *Classifier) KeywordSets() []KeywordSet {
	out := make([]KeywordSet, len(c.sets))
	copy(out, c.sets)
	return out
}
