package repositories

import "gudang/internal/models"

// ProductRepository defines the interface for product data access.
// Lookups return (nil, nil) when no record matches. FindAll returns
// products ordered by creation time descending, newest first.
type ProductRepository interface {
	Create(product *models.Product) error
	FindByID(id string) (*models.Product, error)
	FindBySKU(sku string) (*models.Product, error)
	FindAll(limit, offset int) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id string) error
	Count() (int64, error)
}
