package stats

import (
	"context"
	"fmt"

	"github.com/spendwise/spendwise/internal/utils"
	"github.com/spendwise/spendwise/pkg/category"
	"github.com/spendwise/spendwise/pkg/expense"
	"github.com/spendwise/spendwise/pkg/user"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type ExpenseSource interface {
	ListAllExpenses(ctx context.Context, userId int) ([]expense.Expense, error)
}

type CategorySource interface {
	ListCategories(ctx context.Context, userId int) ([]category.Category, error)
}

type StatsService interface {
	GetStats(ctx context.Context) (Statistics, error)
}

type StatsServiceImpl struct {
	expenses   ExpenseSource
	categories CategorySource
	clock      utils.Clock
}

func NewStatsServiceImpl(expenses ExpenseSource, categories CategorySource, clock utils.Clock) *StatsServiceImpl {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &StatsServiceImpl{expenses: expenses, categories: categories, clock: clock}
}

// GetStats loads the current user's ledger and categories and aggregates them.
// A failure of either read fails the whole call; no partial statistics are returned.
func (s *StatsServiceImpl) GetStats(ctx context.Context) (Statistics, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Statistics{}, fmt.Errorf("failed to get current user: %w", err)
	}

	var expenses []expense.Expense
	var categories []category.Category
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListAllExpenses(gctx, userId)
		if err != nil {
			return fmt.Errorf("failed to load expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.ListCategories(gctx, userId)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Statistics{}, err
	}
	log.Tracef("Computing stats for user %d from %d expenses and %d categories", userId, len(expenses), len(categories))

	return Compute(expenses, categories, s.clock.Now()), nil
}
