package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendwise/spendwise/internal/config"
	"github.com/spendwise/spendwise/internal/event_bus"
	"github.com/spendwise/spendwise/internal/utils"
	"github.com/spendwise/spendwise/pkg/category"
	"github.com/spendwise/spendwise/pkg/expense"
	"github.com/spendwise/spendwise/pkg/stats"
	"github.com/spendwise/spendwise/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserRepo    user.Repo
	UserService user.Service
	UserHandler *user.Handler

	CategoryRepo    category.Repository
	CategoryService *category.ServiceImpl
	CategoryHandler *category.Handler

	ExpenseRepo    expense.Repository
	ExpenseService *expense.ServiceImpl
	ExpenseHandler *expense.Handler

	StatsService     *stats.StatsServiceImpl
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler
}

// BuildDependencies initializes and wires all application services and handlers.
// db is only used when cfg selects postgres storage and may be nil otherwise.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application, clock utils.Clock) *Dependencies {
	deps := &Dependencies{
		EventBus: event_bus.NewEventBus(),
		Clock:    clock,
	}

	if cfg.Storage == config.StorageMemory {
		deps.UserRepo = user.NewMemoryRepo()
		deps.CategoryRepo = category.NewMemoryRepository()
		deps.ExpenseRepo = expense.NewMemoryRepository()
	} else {
		deps.UserRepo = user.NewUserRepo(db)
		deps.CategoryRepo = category.NewRepository(db)
		deps.ExpenseRepo = expense.NewRepository(db)
	}

	deps.UserService = user.NewUserService(deps.UserRepo)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.CategoryService = category.NewService(deps.CategoryRepo, deps.EventBus)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.ExpenseService = expense.NewService(deps.ExpenseRepo, deps.EventBus)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.StatsService = stats.NewStatsServiceImpl(deps.ExpenseRepo, deps.CategoryRepo, deps.Clock)
	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer)

	SubscribeLedgerEvents(deps.EventBus, deps.ExpenseRepo)

	return deps
}
