package integration

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcore/services/internal/orders/application"
	"github.com/shopcore/services/internal/orders/domain"
	orderpg "github.com/shopcore/services/internal/orders/infrastructure/postgres"
)

// requireDocker skips container-backed tests unless asked for.
func requireDocker(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("set INTEGRATION_TEST=1 to run container-backed tests")
	}
}

func TestOrderRepositoryRoundTrip(t *testing.T) {
	requireDocker(t)

	ctx := context.Background()
	env, err := Setup(ctx)
	require.NoError(t, err)
	defer env.Teardown(ctx)

	pool, err := pgxpool.New(ctx, env.PGURL)
	require.NoError(t, err)
	defer pool.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := orderpg.NewRepository(log, pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	order := domain.NewOrder(100,
		[]domain.OrderItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
		domain.Address{
			Street:     "123 Main St",
			City:       "New York",
			State:      "NY",
			PostalCode: "10001",
			Country:    "US",
		})

	saved, err := repo.SaveWithOutbox(ctx, order, "00-abc-def-01")
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	got, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, int64(100), got.UserID)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Equal(t, saved.Items, got.Items)
	assert.Equal(t, "NY", got.ShippingAddress.State)

	_, err = repo.GetByID(ctx, saved.ID+1000)
	assert.ErrorIs(t, err, application.ErrOrderNotFound)

	// second order for the same user lands first in the listing
	time.Sleep(10 * time.Millisecond)
	second := domain.NewOrder(100,
		[]domain.OrderItem{{ProductID: "p3", Quantity: 4}},
		order.ShippingAddress)
	savedSecond, err := repo.SaveWithOutbox(ctx, second, "")
	require.NoError(t, err)

	listed, err := repo.ListByUser(ctx, 100)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, savedSecond.ID, listed[0].ID)
	assert.Equal(t, saved.ID, listed[1].ID)
	for _, o := range listed {
		assert.NotEmpty(t, o.Items, "orders are never read without their items")
	}

	// the save also queued an outbox event for each order
	store := orderpg.NewOutboxStore(log, pool)
	events, err := store.LockBatch(ctx, "test-relay", 10, time.Minute)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, domain.EventTypeOrderConfirmed, events[0].Type)
}
