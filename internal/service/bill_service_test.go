package service

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupService(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store.Groups)
	ctx := context.Background()

	_, err := groups.CreateGroup(ctx, 0, "zero")
	assert.ErrorIs(t, err, ErrInvalidGroupNumber)

	g, err := groups.CreateGroup(ctx, 1, "G1")
	require.NoError(t, err)
	assert.NotZero(t, g.ID)

	list, err := groups.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "G1", list[0].Name)

	found, err := groups.GetGroup(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Number)

	_, err = groups.GetGroup(ctx, g.ID+1)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestBillService_CreateBill(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store.Groups)
	bills := NewBillService(store.Bills, store.Groups, false)
	ctx := context.Background()

	g, err := groups.CreateGroup(ctx, 1, "G1")
	require.NoError(t, err)

	bill, err := bills.CreateBill(ctx, g.ID, "lunch", decimal.RequireFromString("10.50"))
	require.NoError(t, err)
	assert.NotZero(t, bill.ID)
	assert.Equal(t, "10.5", bill.Amount)
	assert.Equal(t, "G1", bill.GroupName())

	_, err = bills.CreateBill(ctx, g.ID, "free", decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = bills.CreateBill(ctx, g.ID, "refund", decimal.NewFromInt(-3))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = bills.CreateBill(ctx, g.ID+1, "lost", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrGroupNotFound)

	all, err := store.Bills.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBillService_ListBills(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store.Groups)
	ctx := context.Background()

	g1, err := groups.CreateGroup(ctx, 1, "G1")
	require.NoError(t, err)
	g2, err := groups.CreateGroup(ctx, 2, "G2")
	require.NoError(t, err)

	filtered := NewBillService(store.Bills, store.Groups, false)
	_, err = filtered.CreateBill(ctx, g1.ID, "lunch", decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = filtered.CreateBill(ctx, g2.ID, "taxi", decimal.NewFromInt(4))
	require.NoError(t, err)

	t.Run("filtered by group", func(t *testing.T) {
		list, err := filtered.ListBills(ctx, g1.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "lunch", list[0].Description)

		none, err := filtered.ListBills(ctx, 999)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("list all", func(t *testing.T) {
		listAll := NewBillService(store.Bills, store.Groups, true)
		list, err := listAll.ListBills(ctx, 999)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}

func TestBillService_CreateBill_AmountBounds(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store.Groups)
	bills := NewBillService(store.Bills, store.Groups, false)
	ctx := context.Background()

	g, err := groups.CreateGroup(ctx, 1, "G1")
	require.NoError(t, err)

	for _, amount := range []decimal.Decimal{
		decimal.New(1, 50000000),
		decimal.New(1, -2000000000),
		decimal.RequireFromString("0.001"),
		decimal.New(1, 13),
	} {
		_, err := bills.CreateBill(ctx, g.ID, "huge", amount)
		assert.ErrorIs(t, err, ErrAmountOutOfRange)
	}

	all, err := store.Bills.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGroupService_CreateGroup_NumberRange(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store.Groups)
	ctx := context.Background()

	g, err := groups.CreateGroup(ctx, -3, "negative")
	require.NoError(t, err)
	assert.Equal(t, -3, g.Number)

	_, err = groups.CreateGroup(ctx, math.MaxInt32+1, "overflow")
	assert.ErrorIs(t, err, ErrInvalidGroupNumber)
}
