// Package sqlite grava as linhas de custo em um arquivo SQLite local.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/diillson/aws-cost-by-group-go/internal/domain/entity"
	"github.com/diillson/aws-cost-by-group-go/internal/domain/repository"
	"github.com/diillson/aws-cost-by-group-go/internal/shared/types"

	_ "modernc.org/sqlite"
)

// TableName é a tabela de destino. Ela não é criada automaticamente.
const TableName = "awscostdata"

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS awscostdata (
		account         TEXT NOT NULL,
		TimePeriodStart TEXT NOT NULL,
		USAGE_TYPE      TEXT NOT NULL,
		Service         TEXT NOT NULL,
		Amount          TEXT NOT NULL
	)`

const insertRowSQL = `INSERT INTO awscostdata(account,TimePeriodStart,USAGE_TYPE,Service,Amount)
	VALUES(?,?,?,?,?)`

// CostStoreImpl implementa o repository.CostStore sobre database/sql.
type CostStoreImpl struct {
	db     *sql.DB
	path   string
	mu     sync.Mutex
	closed bool
}

// OpenCostStore abre (ou cria) o arquivo SQLite em path e verifica a conexão.
func OpenCostStore(ctx context.Context, path string) (repository.CostStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", types.ErrStoreUnavailable, path, err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to connect to %s: %v", types.ErrStoreUnavailable, path, err)
	}

	return &CostStoreImpl{db: db, path: path}, nil
}

// EnsureSchema cria a tabela awscostdata se ela ainda não existir.
func (s *CostStoreImpl) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", TableName, err)
	}
	return nil
}

// InsertCostRow grava uma linha. Sem transação explícita, cada insert é
// confirmado individualmente pelo autocommit do SQLite.
func (s *CostStoreImpl) InsertCostRow(ctx context.Context, row entity.PersistedRow) error {
	_, err := s.db.ExecContext(ctx, insertRowSQL,
		row.Account,
		row.TimePeriodStart,
		row.UsageType,
		row.Service,
		row.Amount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cost row (%s, %s, %s): %w", row.TimePeriodStart, row.UsageType, row.Service, err)
	}
	return nil
}

// CountRows retorna o número de linhas atualmente na tabela.
func (s *CostStoreImpl) CountRows(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+TableName).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", TableName, err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *CostStoreImpl) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
