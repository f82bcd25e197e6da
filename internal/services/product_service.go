package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gudang/internal/apperrors"
	"gudang/internal/models"
	"gudang/internal/repositories"
)

// EventPublisher publishes inventory events to a message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// ProductService handles the product workflows: create, paginated listing
// and quantity updates.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewProductService creates a new ProductService. events may be nil, in
// which case no events are published.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// CreateProductInput carries the raw arguments for product creation.
// Quantity and Price are pointers so an absent field is distinguishable
// from a zero value.
type CreateProductInput struct {
	Name        string
	Type        string
	SKU         string
	ImageURL    string
	Description string
	Quantity    *int
	Price       *float64
}

// Create validates the input, checks SKU uniqueness and persists a new
// product. The store's unique constraint remains the authoritative guard
// against concurrent inserts of the same SKU.
func (s *ProductService) Create(input CreateProductInput) (map[string]interface{}, error) {
	if input.Name == "" || input.Type == "" || input.SKU == "" || input.Quantity == nil || input.Price == nil {
		return nil, apperrors.Validation("name, type, sku, quantity and price are required")
	}
	if *input.Quantity < 0 {
		return nil, apperrors.Validation("quantity must be a non-negative number")
	}
	if *input.Price < 0 {
		return nil, apperrors.Validation("price must be a non-negative number")
	}
	if len(input.SKU) < 3 {
		return nil, apperrors.Validation("sku must be at least 3 characters long")
	}

	existing, err := s.repo.FindBySKU(input.SKU)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sku: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("product with this sku already exists")
	}

	now := time.Now()
	product := &models.Product{
		Name:        input.Name,
		Type:        input.Type,
		SKU:         input.SKU,
		ImageURL:    input.ImageURL,
		Description: input.Description,
		Quantity:    *input.Quantity,
		PriceCents:  models.ToCents(*input.Price),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publish("inventory.product.created", product)

	return product.Map(), nil
}

// List returns a page of products, newest first. page starts at 1 and
// limit is capped at 100.
func (s *ProductService) List(page, limit int) ([]map[string]interface{}, error) {
	if page < 1 {
		return nil, apperrors.Validation("page must be a positive number")
	}
	if limit < 1 || limit > 100 {
		return nil, apperrors.Validation("limit must be between 1 and 100")
	}

	offset := (page - 1) * limit
	products, err := s.repo.FindAll(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	result := make([]map[string]interface{}, 0, len(products))
	for i := range products {
		result = append(result, products[i].Map())
	}
	return result, nil
}

// UpdateQuantity sets a product's quantity, refreshing its updated-at
// timestamp. The creation timestamp is left untouched.
func (s *ProductService) UpdateQuantity(id string, quantity int) (map[string]interface{}, error) {
	if id == "" {
		return nil, apperrors.Validation("product id is required")
	}
	if quantity < 0 {
		return nil, apperrors.Validation("quantity must be a non-negative number")
	}

	product, err := s.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product %s: %w", id, err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product not found")
	}

	product.Quantity = quantity
	product.UpdatedAt = time.Now()
	if err := s.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}

	s.publish("inventory.product.quantity_updated", product)

	return product.Map(), nil
}

// publish sends a stock event. Publishing is best effort: failures are
// logged and never fail the workflow.
func (s *ProductService) publish(routingKey string, product *models.Product) {
	if s.events == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
		"quantity":   product.Quantity,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for product %s: %v", routingKey, product.ID, err)
		return
	}

	if err := s.events.Publish("inventory", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for product %s: %v", routingKey, product.ID, err)
	}
}
