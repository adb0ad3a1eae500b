// internal/catalog/catalog.go
package catalog

import (
	"cardwise/internal/domain"
	"cardwise/internal/metrics"
	"cardwise/internal/storage"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot is an immutable version of the catalog. Accessors hand out copies.
type Snapshot struct {
	version  int64
	loadedAt time.Time
	cards    []domain.CardDefinition
	programs domain.MilestonePrograms
}

func NewSnapshot(version int64, c domain.Catalog) *Snapshot {
	cards := make([]domain.CardDefinition, len(c.Cards))
	for i, card := range c.Cards {
		cards[i] = card.Clone()
	}
	return &Snapshot{
		version:  version,
		loadedAt: time.Now(),
		cards:    cards,
		programs: c.Programs.Clone(),
	}
}

func (s *Snapshot) Version() int64      { return s.version }
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }
func (s *Snapshot) Len() int            { return len(s.cards) }

func (s *Snapshot) Cards() []domain.CardDefinition {
	out := make([]domain.CardDefinition, len(s.cards))
	for i, card := range s.cards {
		out[i] = card.Clone()
	}
	return out
}

func (s *Snapshot) Card(id string) (domain.CardDefinition, bool) {
	for _, card := range s.cards {
		if card.ID == id {
			return card.Clone(), true
		}
	}
	return domain.CardDefinition{}, false
}

// Programs returns the tier table; it satisfies domain.MilestoneLookup.
func (s *Snapshot) Programs() domain.MilestonePrograms {
	return s.programs.Clone()
}

// Program serves lookups during scoring without copying the whole table.
func (s *Snapshot) Program(id string) (domain.MilestoneProgram, bool) {
	return s.programs.Program(id)
}

var ErrNoSource = errors.New("catalog source not configured")

// Catalog holds the current snapshot. Refresh swaps it whole, so a scoring
// pass that grabbed a snapshot never sees a partially updated catalog.
type Catalog struct {
	source   storage.CatalogSource
	overlay  domain.MilestonePrograms
	current  atomic.Pointer[Snapshot]
	version  atomic.Int64
	refreshM sync.Mutex
}

// New starts with an empty snapshot; call Refresh to load from source.
// Overlay programs take precedence over the ones the source returns.
func New(source storage.CatalogSource, overlay domain.MilestonePrograms) *Catalog {
	c := &Catalog{source: source, overlay: overlay}
	c.current.Store(NewSnapshot(0, domain.Catalog{}))
	return c
}

func (c *Catalog) Snapshot() *Snapshot {
	return c.current.Load()
}

// Replace installs a catalog directly, bypassing the source.
func (c *Catalog) Replace(data domain.Catalog) *Snapshot {
	c.refreshM.Lock()
	defer c.refreshM.Unlock()
	return c.install(data)
}

func (c *Catalog) Refresh(ctx context.Context) (*Snapshot, error) {
	if c.source == nil {
		return nil, ErrNoSource
	}

	c.refreshM.Lock()
	defer c.refreshM.Unlock()

	data, err := c.source.LoadCatalog(ctx)
	if err != nil {
		metrics.CatalogRefreshes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if data == nil {
		data = &domain.Catalog{}
	}

	snap := c.install(*data)
	metrics.CatalogRefreshes.WithLabelValues("ok").Inc()
	slog.Info("Catalog refreshed", "cards", snap.Len(), "programs", len(snap.programs), "version", snap.Version())
	return snap, nil
}

func (c *Catalog) install(data domain.Catalog) *Snapshot {
	programs := make(domain.MilestonePrograms, len(data.Programs)+len(c.overlay))
	for id, p := range data.Programs {
		programs[id] = p
	}
	for id, p := range c.overlay {
		programs[id] = p
	}
	data.Programs = programs

	snap := NewSnapshot(c.version.Add(1), data)
	c.current.Store(snap)
	metrics.CatalogCards.Set(float64(snap.Len()))
	return snap
}

// Run refreshes on every tick until ctx is done. Failed refreshes keep the
// previous snapshot.
func (c *Catalog) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := c.Refresh(ctx); err != nil {
				slog.Error("Catalog refresh failed", "error", err)
			}
		}
	}
}
