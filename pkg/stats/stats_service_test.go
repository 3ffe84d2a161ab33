package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/spendwise/internal/utils"
	"github.com/spendwise/spendwise/pkg/category"
	"github.com/spendwise/spendwise/pkg/expense"
	"github.com/spendwise/spendwise/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct {
	err error
}

func (f failingSource) ListAllExpenses(context.Context, int) ([]expense.Expense, error) {
	return nil, f.err
}

func (f failingSource) ListCategories(context.Context, int) ([]category.Category, error) {
	return nil, f.err
}

type fixture struct {
	expenses   *expense.MemoryRepository
	categories *category.MemoryRepository
	clock      *utils.MockClock
	service    *StatsServiceImpl
}

func setupFixture() fixture {
	expenses := expense.NewMemoryRepository()
	categories := category.NewMemoryRepository()
	clock := &utils.MockClock{FixedNow: now}
	return fixture{
		expenses:   expenses,
		categories: categories,
		clock:      clock,
		service:    NewStatsServiceImpl(expenses, categories, clock),
	}
}

func (f fixture) addCategory(t *testing.T, userId int, name string) category.Category {
	t.Helper()
	c, err := f.categories.StoreCategory(context.Background(), userId, category.Category{Name: name, Color: "#000", Icon: "x"})
	require.NoError(t, err)
	return c
}

func (f fixture) addExpense(t *testing.T, userId int, amount string, categoryId int, date string) {
	t.Helper()
	_, err := f.expenses.StoreExpense(context.Background(), userId, expense.Expense{
		Amount: decimal.RequireFromString(amount), Description: "x", CategoryId: categoryId, Date: date,
	})
	require.NoError(t, err)
}

func userCtx(id int) context.Context {
	return user.WithUser(context.Background(), user.User{Id: id})
}

func TestStatsServiceImpl_GetStats_IsolatesOwners(t *testing.T) {
	// given
	f := setupFixture()
	food := f.addCategory(t, 1, "Food")
	rent := f.addCategory(t, 2, "Rent")
	f.addExpense(t, 1, "10", food.Id, "2024-03-20")
	f.addExpense(t, 2, "1000", food.Id, "2024-03-20")
	f.addExpense(t, 2, "500", rent.Id, "2024-03-21")
	// expense of user 1 pointing at a category owned by user 2
	f.addExpense(t, 1, "5", rent.Id, "2024-01-01")

	// when
	stats, err := f.service.GetStats(userCtx(1))

	// then
	require.NoError(t, err)
	assertDecimal(t, "15", stats.Total)
	assertDecimal(t, "10", stats.Recent30Days)
	require.Len(t, stats.ByCategory, 1)
	assert.Equal(t, "Food", stats.ByCategory[0].CategoryName)
	assertDecimal(t, "10", stats.ByCategory[0].TotalAmount)
	assert.Len(t, stats.ByMonth, 2)
}

func TestStatsServiceImpl_GetStats_DeletedCategory(t *testing.T) {
	// given
	f := setupFixture()
	food := f.addCategory(t, 1, "Food")
	fun := f.addCategory(t, 1, "Fun")
	f.addExpense(t, 1, "40", food.Id, "2024-03-20")
	f.addExpense(t, 1, "60", fun.Id, "2024-03-20")
	_, err := f.categories.DeleteCategory(context.Background(), 1, fun.Id)
	require.NoError(t, err)

	// when
	stats, err := f.service.GetStats(userCtx(1))

	// then
	require.NoError(t, err)
	assertDecimal(t, "100", stats.Total)
	require.Len(t, stats.ByCategory, 1)
	assertDecimal(t, "40", stats.ByCategory[0].Percentage)
}

func TestStatsServiceImpl_GetStats_FollowsClock(t *testing.T) {
	// given
	f := setupFixture()
	f.addExpense(t, 1, "10", 1, "2024-03-20T00:00:00.000Z")

	// when
	before, err := f.service.GetStats(userCtx(1))
	require.NoError(t, err)
	f.clock.Advance(60 * 24 * time.Hour)
	after, err := f.service.GetStats(userCtx(1))
	require.NoError(t, err)

	// then
	assertDecimal(t, "10", before.Recent30Days)
	assert.True(t, after.Recent30Days.IsZero())
	assertDecimal(t, "10", after.Total)
}

func TestStatsServiceImpl_GetStats_Failures(t *testing.T) {
	storageErr := errors.New("connection refused")

	t.Run("should fail without user", func(t *testing.T) {
		f := setupFixture()

		_, err := f.service.GetStats(context.Background())

		assert.ErrorIs(t, err, user.ErrNoUser)
	})

	t.Run("should propagate expense read failure", func(t *testing.T) {
		service := NewStatsServiceImpl(failingSource{err: storageErr}, category.NewMemoryRepository(), nil)

		_, err := service.GetStats(userCtx(1))

		assert.ErrorIs(t, err, storageErr)
	})

	t.Run("should propagate category read failure", func(t *testing.T) {
		service := NewStatsServiceImpl(expense.NewMemoryRepository(), failingSource{err: storageErr}, nil)

		_, err := service.GetStats(userCtx(1))

		assert.ErrorIs(t, err, storageErr)
	})
}
