package category

import (
	"context"
	"testing"

	"github.com/spendwise/spendwise/internal/event_bus"
	"github.com/spendwise/spendwise/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService() (*ServiceImpl, *event_bus.EventBus, context.Context) {
	bus := event_bus.NewEventBus()
	service := NewService(NewMemoryRepository(), bus)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Uid: "uid-1"})
	return service, bus, ctx
}

func TestServiceImpl_CreateCategory(t *testing.T) {
	service, _, ctx := setupService()

	t.Run("should trim and store category for current user", func(t *testing.T) {
		created, err := service.CreateCategory(ctx, Category{Name: "  Food ", Color: "#f00", Icon: "utensils"})

		require.NoError(t, err)
		assert.Equal(t, "Food", created.Name)
		assert.Equal(t, 1, created.OwnerId)
	})

	t.Run("should require every field", func(t *testing.T) {
		_, err := service.CreateCategory(ctx, Category{Name: " ", Color: "#f00", Icon: "x"})
		assert.ErrorIs(t, err, ErrMissingName)
		_, err = service.CreateCategory(ctx, Category{Name: "Food", Icon: "x"})
		assert.ErrorIs(t, err, ErrMissingColor)
		_, err = service.CreateCategory(ctx, Category{Name: "Food", Color: "#f00"})
		assert.ErrorIs(t, err, ErrMissingIcon)
	})

	t.Run("should fail without user", func(t *testing.T) {
		_, err := service.CreateCategory(context.Background(), Category{Name: "Food", Color: "#f00", Icon: "x"})
		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestServiceImpl_UpdateCategory(t *testing.T) {
	// given
	service, _, ctx := setupService()
	stored, err := service.CreateCategory(ctx, Category{Name: "Food", Color: "#f00", Icon: "utensils"})
	require.NoError(t, err)
	blank := "  "
	color := "#0f0"

	// when
	updated, err := service.UpdateCategory(ctx, stored.Id, Update{Name: &blank, Color: &color})

	// then
	require.NoError(t, err)
	assert.Equal(t, "Food", updated.Name)
	assert.Equal(t, "#0f0", updated.Color)
}

func TestServiceImpl_ListCategories_IsolatesOwners(t *testing.T) {
	// given
	service, _, ctx := setupService()
	otherCtx := user.WithUser(context.Background(), user.User{Id: 2, Uid: "uid-2"})
	_, err := service.CreateCategory(ctx, Category{Name: "Food", Color: "#f00", Icon: "utensils"})
	require.NoError(t, err)
	_, err = service.CreateCategory(otherCtx, Category{Name: "Rent", Color: "#0f0", Icon: "home"})
	require.NoError(t, err)

	// when
	categories, err := service.ListCategories(ctx)

	// then
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Food", categories[0].Name)
}

func TestServiceImpl_DeleteCategory_PublishesEvent(t *testing.T) {
	// given
	service, bus, ctx := setupService()
	stored, err := service.CreateCategory(ctx, Category{Name: "Food", Color: "#f00", Icon: "utensils"})
	require.NoError(t, err)
	var received []event_bus.CategoryRemoved
	event_bus.SubscribeTyped(bus, event_bus.CategoryDeleted, func(e event_bus.EventT[event_bus.CategoryRemoved]) error {
		received = append(received, e.Data)
		return nil
	})

	// when
	deleted, err := service.DeleteCategory(ctx, stored.Id)

	// then
	require.NoError(t, err)
	assert.Equal(t, stored.Id, deleted.Id)
	require.Len(t, received, 1)
	assert.Equal(t, event_bus.CategoryRemoved{Id: stored.Id, OwnerId: 1, Name: "Food"}, received[0])

	_, err = service.DeleteCategory(ctx, stored.Id)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Len(t, received, 1)
}
