// internal/storage/storage.go
package storage

import (
	"cardwise/internal/domain"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// CatalogSource materializes the whole catalog before a scoring pass starts.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) (*domain.Catalog, error)
}

type CardStorage interface {
	ListCards(ctx context.Context) ([]domain.CardDefinition, error)
	GetCard(ctx context.Context, id string) (*domain.CardDefinition, error)
	UpsertCard(ctx context.Context, card domain.CardDefinition) error
	DeleteCard(ctx context.Context, id string) error
}

type MilestoneStorage interface {
	ListPrograms(ctx context.Context) (domain.MilestonePrograms, error)
	UpsertProgram(ctx context.Context, program domain.MilestoneProgram) error
}
