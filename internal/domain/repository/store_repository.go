package repository

import (
	"context"

	"github.com/diillson/aws-cost-by-group-go/internal/domain/entity"
)

// CostStore is the durable sink for persisted cost rows.
type CostStore interface {
	EnsureSchema(ctx context.Context) error
	InsertCostRow(ctx context.Context, row entity.PersistedRow) error
	CountRows(ctx context.Context) (int, error)
	Close() error
}

// StoreOpener abre o banco de dados nomeado por path.
type StoreOpener func(ctx context.Context, path string) (CostStore, error)
