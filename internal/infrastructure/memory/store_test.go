package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
)

func TestUserRepo_EmailUniqueCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u-1", Email: "shop@example.co.uk", Role: entity.RoleBranch}))

	err := s.Users().Create(ctx, &entity.User{ID: "u-2", Email: "SHOP@example.co.uk"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := s.Users().GetByEmail(ctx, "Shop@Example.co.uk")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)

	missing, err := s.Users().GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepo_DeleteCascadesAndGuardsOrders(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "b-1", Email: "a@example.co.uk", Role: entity.RoleBranch}))
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "b-2", Email: "b@example.co.uk", Role: entity.RoleBranch}))
	require.NoError(t, s.Cards().Create(ctx, &entity.Card{ID: "c-1", BranchID: "b-1"}))
	require.NoError(t, s.Orders().Create(ctx, &entity.Order{ID: "o-1", BranchID: "b-2"}))

	require.NoError(t, s.Users().Delete(ctx, "b-1"))
	card, err := s.Cards().GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Nil(t, card)

	assert.ErrorIs(t, s.Users().Delete(ctx, "b-2"), domain.ErrConflict)
	assert.ErrorIs(t, s.Users().Delete(ctx, "b-9"), domain.ErrUserNotFound)
}

func TestOrderRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	o := &entity.Order{ID: "o-1", BranchID: "b-1", Items: []entity.OrderItem{{ProductName: "Milk", Quantity: 1}}}
	require.NoError(t, s.Orders().Create(ctx, o))
	assert.NotEmpty(t, o.Items[0].ID)
	assert.Equal(t, "o-1", o.Items[0].OrderID)

	got, err := s.Orders().GetByID(ctx, "o-1")
	require.NoError(t, err)
	got.Items[0].Quantity = 99

	again, err := s.Orders().GetByID(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

func TestOrderRepo_ListCreatedBetweenInclusive(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	for id, at := range map[string]time.Time{
		"first":  start,
		"last":   end,
		"before": start.Add(-time.Nanosecond),
		"after":  end.Add(time.Nanosecond),
	} {
		require.NoError(t, s.Orders().Create(ctx, &entity.Order{ID: id, CreatedAt: at}))
	}

	list, err := s.Orders().ListCreatedBetween(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "last", list[0].ID, "newest first")
	assert.Equal(t, "first", list[1].ID)
}

func TestRunOrder_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Orders().Create(ctx, &entity.Order{ID: "kept"}))

	boom := errors.New("boom")
	err := s.RunOrder(ctx, func(orders repository.OrderRepository, txs repository.TransactionRepository) error {
		require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o-2"}))
		require.NoError(t, txs.Create(ctx, &entity.Transaction{ID: "t-1", OrderID: "o-2"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	o, err := s.Orders().GetByID(ctx, "o-2")
	require.NoError(t, err)
	assert.Nil(t, o)
	assert.Empty(t, s.Transactions().ListByOrder("o-2"))

	kept, err := s.Orders().GetByID(ctx, "kept")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestRunOrder_RollbackKeepsConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	boom := errors.New("boom")
	err := s.RunOrder(ctx, func(orders repository.OrderRepository, txs repository.TransactionRepository) error {
		require.NoError(t, orders.Create(ctx, &entity.Order{ID: "mine"}))
		// another request commits while this one is still running
		require.NoError(t, s.Orders().Create(ctx, &entity.Order{ID: "theirs"}))
		require.NoError(t, s.Transactions().Create(ctx, &entity.Transaction{ID: "t-theirs", OrderID: "theirs"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	mine, err := s.Orders().GetByID(ctx, "mine")
	require.NoError(t, err)
	assert.Nil(t, mine)

	theirs, err := s.Orders().GetByID(ctx, "theirs")
	require.NoError(t, err)
	assert.NotNil(t, theirs)
	assert.Len(t, s.Transactions().ListByOrder("theirs"), 1)
}

func TestStatsRepo_Counts(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "a-1", Email: "admin@example.co.uk", Role: entity.RoleAdmin}))
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "b-1", Email: "b@example.co.uk", Role: entity.RoleBranch}))
	require.NoError(t, s.Orders().Create(ctx, &entity.Order{ID: "o-1", TotalPrice: decimal.RequireFromString("10.50")}))
	require.NoError(t, s.Orders().Create(ctx, &entity.Order{ID: "o-2", TotalPrice: decimal.RequireFromString("4.25")}))

	c, err := s.Stats().GetDashboardCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Branches)
	assert.Equal(t, 2, c.Orders)
	assert.True(t, decimal.RequireFromString("14.75").Equal(c.Sales))
}
