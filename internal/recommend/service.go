// internal/recommend/service.go
package recommend

import (
	"cardwise/internal/catalog"
	"cardwise/internal/domain"
	"cardwise/internal/metrics"
	"cardwise/internal/scoring"
	"log/slog"
	"time"
)

type SnapshotSource interface {
	Snapshot() *catalog.Snapshot
}

type Result struct {
	CatalogVersion int64                  `json:"catalog_version"`
	FiltersApplied bool                   `json:"filters_applied"`
	Results        []domain.CardValuation `json:"results"`
}

type Service struct {
	catalog      SnapshotSource
	defaultLimit int
}

func NewService(c SnapshotSource, defaultLimit int) *Service {
	if defaultLimit <= 0 {
		defaultLimit = scoring.DefaultLimit
	}
	return &Service{catalog: c, defaultLimit: defaultLimit}
}

func (s *Service) DefaultLimit() int {
	return s.defaultLimit
}

// Recommend ranks the current snapshot. The snapshot is read once, so a
// concurrent refresh does not affect this pass. limit <= 0 uses the default.
func (s *Service) Recommend(profile domain.SpendProfile, limit int) Result {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	snap := s.catalog.Snapshot()
	start := time.Now()
	ranked := scoring.NewEngine(snap).Rank(snap.Cards(), profile, limit)
	metrics.RankDuration.Observe(time.Since(start).Seconds())

	mode := "filtered"
	if profile.IsEmpty() {
		mode = "fallback"
	}
	metrics.RecommendationsServed.WithLabelValues(mode).Inc()
	slog.Debug("Recommendations ranked", "mode", mode, "catalog_version", snap.Version(), "results", len(ranked))

	return Result{
		CatalogVersion: snap.Version(),
		FiltersApplied: !profile.IsEmpty(),
		Results:        ranked,
	}
}
