package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore connects to a real MongoDB instance. The test suite is skipped
// unless MONGO_TEST_URI is set (e.g. mongodb://localhost:27017).
func newTestStore(t *testing.T) *StockStore {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set, skipping store integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := Connect(ctx, uri)
	require.NoError(t, err)

	s := New(client, "stocktracker_test", "stocks")
	require.NoError(t, s.coll.Drop(ctx))
	require.NoError(t, s.EnsureIndexes(ctx))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.coll.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return s
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stock, created, err := s.Upsert(ctx, "AAPL", "Apple", 150, 1.2)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "AAPL", stock.Symbol)
	assert.Equal(t, 150.0, stock.Price)
	firstUpdate := stock.LastUpdated

	stock, created, err = s.Upsert(ctx, "AAPL", "Apple Inc", 155, -0.5)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Apple Inc", stock.Name)
	assert.Equal(t, 155.0, stock.Price)
	assert.True(t, stock.LastUpdated.After(firstUpdate) || stock.LastUpdated.Equal(firstUpdate))

	// still one record
	stocks, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stocks, 1)
}

func TestListInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, sym := range []string{"MSFT", "AAPL", "GOOG"} {
		_, _, err := s.Upsert(ctx, sym, sym+" Corp", 1, 0)
		require.NoError(t, err)
	}

	stocks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, stocks, 3)
	assert.Equal(t, "MSFT", stocks[0].Symbol)
	assert.Equal(t, "AAPL", stocks[1].Symbol)
	assert.Equal(t, "GOOG", stocks[2].Symbol)
}

func TestFindBySymbol_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.FindBySymbol(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, _, err := s.Upsert(ctx, "AAPL", "Apple", 150, 1.2)
	require.NoError(t, err)

	stock, err := s.UpdateFields(ctx, "AAPL", 155, -0.5)
	require.NoError(t, err)
	assert.Equal(t, 155.0, stock.Price)
	assert.Equal(t, -0.5, stock.Change)
	assert.Equal(t, "Apple", stock.Name)
}

func TestUpdateFields_NotFoundDoesNotCreate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpdateFields(ctx, "AAPL", 1, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	stocks, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stocks)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, _, err := s.Upsert(ctx, "AAPL", "Apple", 150, 1.2)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "AAPL"))

	_, err = s.FindBySymbol(ctx, "AAPL")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "AAPL"), ErrNotFound)
}
