// Package catalog holds the read-only item snapshot the ranking pipeline
// works against. The snapshot is loaded once at startup and only replaced by
// an explicit Refresh.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
)

// Source supplies the full item set, typically the Postgres repository.
type Source interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
}

// Provider is an in-memory catalog snapshot. Reads may run concurrently;
// Refresh swaps the whole snapshot under the write lock.
type Provider struct {
	mu     sync.RWMutex
	items  []domain.Item
	byID   map[string]domain.Item
	byPop  []domain.Item
	source Source
	logger zerolog.Logger
}

func NewProvider(source Source, logger zerolog.Logger) *Provider {
	return &Provider{
		source: source,
		byID:   map[string]domain.Item{},
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// NewStaticProvider wraps a fixed item set; used by tests and tools that
// have no database behind them.
func NewStaticProvider(items []domain.Item) *Provider {
	p := &Provider{byID: map[string]domain.Item{}, logger: zerolog.Nop()}
	p.install(items)
	return p
}

// Refresh reloads the snapshot from the source.
func (p *Provider) Refresh(ctx context.Context) error {
	if p.source == nil {
		return fmt.Errorf("catalog has no source")
	}
	items, err := p.source.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	p.install(items)
	p.logger.Info().Int("items", len(items)).Msg("catalog snapshot loaded")
	return nil
}

func (p *Provider) install(items []domain.Item) {
	byID := make(map[string]domain.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	byPop := make([]domain.Item, len(items))
	copy(byPop, items)
	sort.SliceStable(byPop, func(i, j int) bool {
		return byPop[i].Popularity > byPop[j].Popularity
	})

	p.mu.Lock()
	p.items = items
	p.byID = byID
	p.byPop = byPop
	p.mu.Unlock()
}

// ItemByID looks up a single item.
func (p *Provider) ItemByID(id string) (domain.Item, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	it, ok := p.byID[id]
	return it, ok
}

// ItemsByCategory returns all items whose category equals the filter,
// case-insensitively.
func (p *Provider) ItemsByCategory(category string) []domain.Item {
	want := strings.ToLower(category)
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []domain.Item
	for _, it := range p.items {
		if strings.ToLower(it.Category) == want {
			out = append(out, it)
		}
	}
	return out
}

// TopByPopularity returns the n most popular items.
func (p *Provider) TopByPopularity(n int) []domain.Item {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if n > len(p.byPop) {
		n = len(p.byPop)
	}
	out := make([]domain.Item, n)
	copy(out, p.byPop[:n])
	return out
}

// Size reports the number of items in the current snapshot.
func (p *Provider) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}
