package user

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo keeps users in process memory.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextId int
	byUid  map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUid: map[string]User{}}
}

func (m *MemoryRepo) CreateUser(_ context.Context, user User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextId++
	user.Id = m.nextId
	user.CreatedAt = time.Now().UTC()
	m.byUid[user.Uid] = user
	return user, nil
}

func (m *MemoryRepo) GetUserByUid(_ context.Context, uid string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.byUid[uid]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (m *MemoryRepo) IsUsernameAvailable(_ context.Context, username string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.byUid {
		if u.Username == username {
			return false, nil
		}
	}
	return true, nil
}
