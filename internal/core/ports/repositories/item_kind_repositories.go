package repositories

import (
	"context"

	"github.com/ifd3f/DERP/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ItemKindRepository defines operations for item-kind reference data.
// Item kinds are immutable once created, so there is no update.
type ItemKindRepository interface {
	// FindItemKindByID retrieves an item kind by id.
	FindItemKindByID(ctx context.Context, itemKindID int64) (*domain.ItemKind, error)

	// FindItemKindByNameInTx retrieves an item kind by its exact name.
	// Returns ErrNotFound when no such kind exists.
	FindItemKindByNameInTx(ctx context.Context, tx pgx.Tx, name string) (*domain.ItemKind, error)

	// SaveItemKindInTx inserts a new item kind and sets the assigned id on it.
	SaveItemKindInTx(ctx context.Context, tx pgx.Tx, kind *domain.ItemKind) error
}
