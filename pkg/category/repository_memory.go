package category

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository keeps categories in process memory. It is used by the memory storage
// mode and by tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextId int
	data   map[int]Category
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: map[int]Category{}, now: func() time.Time { return time.Now().UTC() }}
}

func (m *MemoryRepository) StoreCategory(_ context.Context, userId int, category Category) (Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextId++
	category.Id = m.nextId
	category.OwnerId = userId
	category.CreatedAt = m.now()
	m.data[category.Id] = category
	return category, nil
}

func (m *MemoryRepository) GetCategory(_ context.Context, userId int, id int) (Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.data[id]
	if !ok || c.OwnerId != userId {
		return Category{}, ErrCategoryNotFound
	}
	return c, nil
}

func (m *MemoryRepository) ListCategories(_ context.Context, userId int) ([]Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	categories := make([]Category, 0, len(m.data))
	for _, c := range m.data {
		if c.OwnerId == userId {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].CreatedAt.Equal(categories[j].CreatedAt) {
			return categories[i].CreatedAt.After(categories[j].CreatedAt)
		}
		return categories[i].Id > categories[j].Id
	})
	return categories, nil
}

func (m *MemoryRepository) UpdateCategory(_ context.Context, userId int, id int, update Update) (Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.data[id]
	if !ok || c.OwnerId != userId {
		return Category{}, ErrCategoryNotFound
	}
	c = update.apply(c)
	m.data[id] = c
	return c, nil
}

func (m *MemoryRepository) DeleteCategory(_ context.Context, userId int, id int) (Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.data[id]
	if !ok || c.OwnerId != userId {
		return Category{}, ErrCategoryNotFound
	}
	delete(m.data, id)
	return c, nil
}
