package repositories

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"gudang/internal/apperrors"
	"gudang/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// SKU uniqueness is enforced under the lock, mirroring the unique index the
// SQL-backed store relies on.
type MockProductRepository struct {
	products map[string]models.Product
	bySKU    map[string]string
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
		bySKU:    make(map[string]string),
	}
}

// Create adds a new product, assigning an ID if unset.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.bySKU[product.SKU]; taken {
		return apperrors.Conflict("product with this sku already exists")
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	r.bySKU[product.SKU] = product.ID
	return nil
}

// FindByID returns a product by its ID, or (nil, nil) if absent.
func (r *MockProductRepository) FindByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// FindBySKU returns a product by its SKU, or (nil, nil) if absent.
func (r *MockProductRepository) FindBySKU(sku string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySKU[sku]
	if !ok {
		return nil, nil
	}
	product := r.products[id]
	return &product, nil
}

// FindAll returns a page of products ordered by creation time descending.
// Ties on creation time fall back to ID order to keep pages stable.
func (r *MockProductRepository) FindAll(limit, offset int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	if offset >= len(all) {
		return []models.Product{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return apperrors.NotFound(fmt.Sprintf("product with ID %s not found for update", product.ID))
	}
	if existing.SKU != product.SKU {
		if _, taken := r.bySKU[product.SKU]; taken {
			return apperrors.Conflict("product with this sku already exists")
		}
		delete(r.bySKU, existing.SKU)
		r.bySKU[product.SKU] = product.ID
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return apperrors.NotFound(fmt.Sprintf("product with ID %s not found for deletion", id))
	}
	delete(r.bySKU, product.SKU)
	delete(r.products, id)
	return nil
}

// Count returns the total number of products.
func (r *MockProductRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.products)), nil
}
