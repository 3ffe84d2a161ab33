package expense

import (
	"context"
	"errors"
	"strings"

	"github.com/spendwise/spendwise/internal/event_bus"
	"github.com/spendwise/spendwise/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidAmount      = errors.New("amount must be a positive number")
	ErrInvalidDescription = errors.New("description is required")
	ErrInvalidDate        = errors.New("date must be an ISO-8601 date")
)

type Service interface {
	CreateExpense(ctx context.Context, expense Expense) (Expense, error)
	GetExpense(ctx context.Context, id int) (Expense, error)
	ListExpenses(ctx context.Context, filter Filter) ([]Expense, error)
	UpdateExpense(ctx context.Context, id int, update Update) (Expense, error)
	DeleteExpense(ctx context.Context, id int) (Expense, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) CreateExpense(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, err
	}
	expense.Description = strings.TrimSpace(expense.Description)
	if err := validate(expense); err != nil {
		return Expense{}, err
	}
	created, err := s.repo.StoreExpense(ctx, userId, expense)
	if err != nil {
		return Expense{}, err
	}
	s.publish(ctx, event_bus.ExpenseCreated, created)
	return created, nil
}

func (s *ServiceImpl) GetExpense(ctx context.Context, id int) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, err
	}
	return s.repo.GetExpense(ctx, userId, id)
}

func (s *ServiceImpl) ListExpenses(ctx context.Context, filter Filter) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListExpenses(ctx, userId, filter)
}

// UpdateExpense validates and applies only the fields present in update.
func (s *ServiceImpl) UpdateExpense(ctx context.Context, id int, update Update) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, err
	}
	if update.Description != nil {
		trimmed := strings.TrimSpace(*update.Description)
		update.Description = &trimmed
	}
	if err := validateUpdate(update); err != nil {
		return Expense{}, err
	}
	if update.IsEmpty() {
		return s.repo.GetExpense(ctx, userId, id)
	}
	updated, err := s.repo.UpdateExpense(ctx, userId, id, update)
	if err != nil {
		return Expense{}, err
	}
	s.publish(ctx, event_bus.ExpenseUpdated, updated)
	return updated, nil
}

func (s *ServiceImpl) DeleteExpense(ctx context.Context, id int) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, err
	}
	deleted, err := s.repo.DeleteExpense(ctx, userId, id)
	if err != nil {
		return Expense{}, err
	}
	s.publish(ctx, event_bus.ExpenseDeleted, deleted)
	return deleted, nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, e Expense) {
	if s.eventBus == nil {
		return
	}
	event := event_bus.NewEvent(ctx, eventType, event_bus.ExpenseChanged{
		Id:         e.Id,
		OwnerId:    e.OwnerId,
		CategoryId: e.CategoryId,
		Amount:     e.Amount,
		Date:       e.Date,
	})
	if err := s.eventBus.Publish(event); err != nil {
		log.Warnf("expense %d stored but subscribers failed: %v", e.Id, err)
	}
}

func validate(e Expense) error {
	return validateUpdate(Update{Amount: &e.Amount, Description: &e.Description, Date: &e.Date})
}

func validateUpdate(u Update) error {
	if u.Amount != nil && (!u.Amount.IsPositive() || u.Amount.GreaterThan(MaxAmount)) {
		return ErrInvalidAmount
	}
	if u.Description != nil && *u.Description == "" {
		return ErrInvalidDescription
	}
	if u.Date != nil && !IsValidDate(*u.Date) {
		return ErrInvalidDate
	}
	return nil
}
