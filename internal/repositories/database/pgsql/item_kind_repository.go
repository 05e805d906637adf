package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ifd3f/DERP/internal/apperrors"
	"github.com/ifd3f/DERP/internal/core/domain"
	portsrepo "github.com/ifd3f/DERP/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxItemKindRepository struct {
	pool *pgxpool.Pool
}

// newPgxItemKindRepository creates a new repository for item-kind data.
func newPgxItemKindRepository(pool *pgxpool.Pool) portsrepo.ItemKindRepository {
	return &PgxItemKindRepository{pool: pool}
}

// Ensure PgxItemKindRepository implements portsrepo.ItemKindRepository
var _ portsrepo.ItemKindRepository = (*PgxItemKindRepository)(nil)

// FindItemKindByID retrieves an item kind by its ID.
func (r *PgxItemKindRepository) FindItemKindByID(ctx context.Context, itemKindID int64) (*domain.ItemKind, error) {
	query := `SELECT item_kind_id, name, description FROM item_kinds WHERE item_kind_id = $1;`
	var kind domain.ItemKind
	err := r.pool.QueryRow(ctx, query, itemKindID).Scan(&kind.ItemKindID, &kind.Name, &kind.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item kind %d: %w", itemKindID, err)
	}
	return &kind, nil
}

// FindItemKindByNameInTx retrieves an item kind by its exact name.
func (r *PgxItemKindRepository) FindItemKindByNameInTx(ctx context.Context, tx pgx.Tx, name string) (*domain.ItemKind, error) {
	query := `SELECT item_kind_id, name, description FROM item_kinds WHERE name = $1;`
	var kind domain.ItemKind
	err := tx.QueryRow(ctx, query, name).Scan(&kind.ItemKindID, &kind.Name, &kind.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item kind %q: %w", name, err)
	}
	return &kind, nil
}

// SaveItemKindInTx inserts a new item kind and sets the assigned id on it.
func (r *PgxItemKindRepository) SaveItemKindInTx(ctx context.Context, tx pgx.Tx, kind *domain.ItemKind) error {
	query := `INSERT INTO item_kinds (name, description) VALUES ($1, $2) RETURNING item_kind_id;`
	err := tx.QueryRow(ctx, query, kind.Name, kind.Description).Scan(&kind.ItemKindID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: item kind %q already exists", apperrors.ErrDuplicate, kind.Name)
		}
		return fmt.Errorf("failed to save item kind %q: %w", kind.Name, err)
	}
	return nil
}
