package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/diillson/aws-cost-by-group-go/internal/domain/entity"
	"github.com/diillson/aws-cost-by-group-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*CostStoreImpl, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.db")
	store, err := OpenCostStore(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store.(*CostStoreImpl), path
}

var sampleRow = entity.PersistedRow{
	Account:         "account",
	TimePeriodStart: "2022-03-01",
	UsageType:       "BoxUsage:t2.micro",
	Service:         "EC2",
	Amount:          "0.12345",
}

func TestInsertCostRow(t *testing.T) {
	ctx := context.Background()
	store, path := openTestStore(t)
	require.NoError(t, store.EnsureSchema(ctx))

	require.NoError(t, store.InsertCostRow(ctx, sampleRow))

	n, err := store.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// read back through an independent connection to prove the row was committed
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var got entity.PersistedRow
	err = db.QueryRow(`SELECT account, TimePeriodStart, USAGE_TYPE, Service, Amount FROM awscostdata`).
		Scan(&got.Account, &got.TimePeriodStart, &got.UsageType, &got.Service, &got.Amount)
	require.NoError(t, err)
	assert.Equal(t, sampleRow, got)
}

func TestInsertWithoutTableFails(t *testing.T) {
	store, _ := openTestStore(t)

	err := store.InsertCostRow(context.Background(), sampleRow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "awscostdata")
}

func TestRepeatedInsertsDuplicateRows(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)
	require.NoError(t, store.EnsureSchema(ctx))

	require.NoError(t, store.InsertCostRow(ctx, sampleRow))
	require.NoError(t, store.InsertCostRow(ctx, sampleRow))

	n, err := store.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)

	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.EnsureSchema(ctx))
}

func TestOpenCostStoreUnreachablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "data.db")

	_, err := OpenCostStore(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrStoreUnavailable)
}

func TestCloseTwice(t *testing.T) {
	store, _ := openTestStore(t)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
