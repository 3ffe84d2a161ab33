package expense

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository keeps expenses in process memory. It is used by the memory storage
// mode and by tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextId int
	data   map[int]Expense
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: map[int]Expense{}}
}

func (m *MemoryRepository) StoreExpense(_ context.Context, userId int, expense Expense) (Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextId++
	expense.Id = m.nextId
	expense.OwnerId = userId
	expense.CreatedAt = time.Now().UTC()
	m.data[expense.Id] = expense
	return expense, nil
}

func (m *MemoryRepository) GetExpense(_ context.Context, userId int, id int) (Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[id]
	if !ok || e.OwnerId != userId {
		return Expense{}, ErrExpenseNotFound
	}
	return e, nil
}

func (m *MemoryRepository) ListExpenses(_ context.Context, userId int, filter Filter) ([]Expense, error) {
	all := m.ownedBy(userId, filter.matches)
	if filter.Offset >= len(all) {
		return []Expense{}, nil
	}
	end := min(filter.Offset+filter.Limit, len(all))
	return all[filter.Offset:end], nil
}

func (m *MemoryRepository) ListAllExpenses(_ context.Context, userId int) ([]Expense, error) {
	return m.ownedBy(userId, func(Expense) bool { return true }), nil
}

func (m *MemoryRepository) ownedBy(userId int, keep func(Expense) bool) []Expense {
	m.mu.RLock()
	defer m.mu.RUnlock()
	expenses := make([]Expense, 0, len(m.data))
	for _, e := range m.data {
		if e.OwnerId == userId && keep(e) {
			expenses = append(expenses, e)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		if expenses[i].Date != expenses[j].Date {
			return expenses[i].Date > expenses[j].Date
		}
		return expenses[i].Id > expenses[j].Id
	})
	return expenses
}

func (m *MemoryRepository) UpdateExpense(_ context.Context, userId int, id int, update Update) (Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[id]
	if !ok || e.OwnerId != userId {
		return Expense{}, ErrExpenseNotFound
	}
	e = update.apply(e)
	m.data[id] = e
	return e, nil
}

func (m *MemoryRepository) DeleteExpense(_ context.Context, userId int, id int) (Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[id]
	if !ok || e.OwnerId != userId {
		return Expense{}, ErrExpenseNotFound
	}
	delete(m.data, id)
	return e, nil
}

func (m *MemoryRepository) CountByCategory(_ context.Context, userId int, categoryId int) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, e := range m.data {
		if e.OwnerId == userId && e.CategoryId == categoryId {
			count++
		}
	}
	return count, nil
}
