package category

import (
	"context"
	"errors"
	"strings"

	"github.com/spendwise/spendwise/internal/event_bus"
	"github.com/spendwise/spendwise/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrMissingName  = errors.New("category name is required")
	ErrMissingColor = errors.New("category color is required")
	ErrMissingIcon  = errors.New("category icon is required")
)

type Service interface {
	CreateCategory(ctx context.Context, category Category) (Category, error)
	GetCategory(ctx context.Context, id int) (Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, id int, update Update) (Category, error)
	DeleteCategory(ctx context.Context, id int) (Category, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) CreateCategory(ctx context.Context, category Category) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, err
	}
	category.Name = strings.TrimSpace(category.Name)
	category.Color = strings.TrimSpace(category.Color)
	category.Icon = strings.TrimSpace(category.Icon)
	switch {
	case category.Name == "":
		return Category{}, ErrMissingName
	case category.Color == "":
		return Category{}, ErrMissingColor
	case category.Icon == "":
		return Category{}, ErrMissingIcon
	}
	return s.repo.StoreCategory(ctx, userId, category)
}

func (s *ServiceImpl) GetCategory(ctx context.Context, id int) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, err
	}
	return s.repo.GetCategory(ctx, userId, id)
}

func (s *ServiceImpl) ListCategories(ctx context.Context) ([]Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListCategories(ctx, userId)
}

// UpdateCategory changes only the fields of update holding a non-blank value.
func (s *ServiceImpl) UpdateCategory(ctx context.Context, id int, update Update) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, err
	}
	update = Update{Name: nonBlank(update.Name), Color: nonBlank(update.Color), Icon: nonBlank(update.Icon)}
	if update.IsEmpty() {
		return s.repo.GetCategory(ctx, userId, id)
	}
	return s.repo.UpdateCategory(ctx, userId, id, update)
}

func (s *ServiceImpl) DeleteCategory(ctx context.Context, id int) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, err
	}
	deleted, err := s.repo.DeleteCategory(ctx, userId, id)
	if err != nil {
		return Category{}, err
	}
	if s.eventBus != nil {
		event := event_bus.NewEvent(ctx, event_bus.CategoryDeleted, event_bus.CategoryRemoved{
			Id:      deleted.Id,
			OwnerId: deleted.OwnerId,
			Name:    deleted.Name,
		})
		if err := s.eventBus.Publish(event); err != nil {
			log.Warnf("category %d deleted but subscribers failed: %v", deleted.Id, err)
		}
	}
	return deleted, nil
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
