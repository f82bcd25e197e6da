package repositories

import "gudang/internal/models"

// UserRepository defines the interface for user data access.
// Lookups return (nil, nil) when no record matches.
type UserRepository interface {
	Create(user *models.User) error
	FindByUsername(username string) (*models.User, error)
	FindByID(id string) (*models.User, error)
	Update(user *models.User) error
	Delete(id string) error
}
