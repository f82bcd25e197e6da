package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"gudang/internal/apperrors"
	"gudang/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
// Uniqueness of usernames is enforced under the lock, mirroring the
// unique index the SQL-backed store relies on.
type MockUserRepository struct {
	users      map[string]models.User
	byUsername map[string]string
	mu         sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:      make(map[string]models.User),
		byUsername: make(map[string]string),
	}
}

// Create adds a new user, assigning an ID if unset.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[user.Username]; taken {
		return apperrors.Conflict("username already exists")
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	r.byUsername[user.Username] = user.ID
	return nil
}

// FindByUsername returns a user by username, or (nil, nil) if absent.
func (r *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, nil
	}
	user := r.users[id]
	return &user, nil
}

// FindByID returns a user by ID, or (nil, nil) if absent.
func (r *MockUserRepository) FindByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// Update modifies an existing user.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return apperrors.NotFound(fmt.Sprintf("user with ID %s not found for update", user.ID))
	}
	if existing.Username != user.Username {
		if _, taken := r.byUsername[user.Username]; taken {
			return apperrors.Conflict("username already exists")
		}
		delete(r.byUsername, existing.Username)
		r.byUsername[user.Username] = user.ID
	}
	r.users[user.ID] = *user
	return nil
}

// Delete removes a user by ID.
func (r *MockUserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperrors.NotFound(fmt.Sprintf("user with ID %s not found for deletion", id))
	}
	delete(r.byUsername, user.Username)
	delete(r.users, id)
	return nil
}
