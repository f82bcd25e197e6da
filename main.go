package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gudang/internal/handlers"
	"gudang/internal/middleware"
	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"
	"gudang/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "gudang.db")
	viper.SetDefault("JWT_EXPIRES_IN", "24h")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// A missing signing secret is a deployment misconfiguration; fail fast
	// instead of rejecting every login at runtime.
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	issuer := services.NewIssuer(jwtSecret, viper.GetString("JWT_EXPIRES_IN"))

	// --- Initialize Repositories ---
	userRepo, productRepo, err := buildRepositories(
		viper.GetString("DATABASE_DRIVER"),
		viper.GetString("DATABASE_DSN"),
	)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var events services.EventPublisher
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, stock events disabled")
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, issuer)
	productService := services.NewProductService(productRepo, events)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Authentication routes (public)
	authHandler.RegisterRoutes(apiV1)

	// Product routes (require a valid session token)
	protected := apiV1.Group("", middleware.AuthRequired(issuer))
	productHandler.RegisterRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start Stock Event Consumer ---
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for stock events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received stock event (%s): %s", msg.RoutingKey, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeInventoryEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// buildRepositories wires the configured storage backend. The "memory"
// driver uses the in-process stores, which is handy for local development
// without a database.
func buildRepositories(driver, dsn string) (repositories.UserRepository, repositories.ProductRepository, error) {
	if driver == "memory" {
		return repositories.NewMockUserRepository(), repositories.NewMockProductRepository(), nil
	}

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	// TranslateError maps driver-specific unique-constraint failures onto
	// gorm.ErrDuplicatedKey, which the repositories turn into conflicts.
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repositories.NewGORMUserRepository(db), repositories.NewGORMProductRepository(db), nil
}
