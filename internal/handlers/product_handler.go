package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"gudang/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	productService *services.ProductService
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Get("/", h.HandleList)
	productRoutes.Put("/:id/quantity", h.HandleUpdateQuantity)
}

// CreateProductRequest represents the request body for product creation.
// Quantity and Price are pointers so missing fields can be told apart from
// zero values.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Type        string   `json:"type" validate:"required"`
	SKU         string   `json:"sku" validate:"required"`
	ImageURL    string   `json:"imageUrl"`
	Description string   `json:"description"`
	Quantity    *int     `json:"quantity" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
}

// HandleCreate handles product creation.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.productService.Create(services.CreateProductInput{
		Name:        req.Name,
		Type:        req.Type,
		SKU:         req.SKU,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return errorResponse(c, "Could not create product", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"data":    product,
	})
}

// HandleList handles paginated product listing.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	products, err := h.productService.List(page, limit)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return errorResponse(c, "Could not list products", err)
	}

	return c.JSON(fiber.Map{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// UpdateQuantityRequest represents the request body for a quantity update.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// HandleUpdateQuantity handles updating a product's quantity.
func (h *ProductHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update quantity request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.productService.UpdateQuantity(id, *req.Quantity)
	if err != nil {
		log.Printf("Error updating quantity for product %s: %v", id, err)
		return errorResponse(c, "Could not update product quantity", err)
	}

	return c.JSON(fiber.Map{
		"message": "Product quantity updated successfully",
		"data":    product,
	})
}
