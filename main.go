package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wtwr/internal/apperrors"
	"wtwr/internal/config"
	"wtwr/internal/handlers"
	"wtwr/internal/middleware"
	"wtwr/internal/models"
	"wtwr/internal/repositories"
	"wtwr/internal/services"
	"wtwr/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// Missing production secret is a fatal startup error, never a
	// request-time one.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Repositories ---
	userRepo, itemRepo, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// --- RabbitMQ client (optional collaborator) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	itemService := services.NewItemService(itemRepo, publisher)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	itemHandler := handlers.NewItemHandler(itemService)

	// --- Fiber app ---
	// All errors flow through the one terminal normalizer.
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	// --- Middleware ---
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(middleware.RateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow))

	// --- Routes ---
	authRequired := middleware.AuthRequired(authService)
	authHandler.RegisterRoutes(app)
	userHandler.RegisterRoutes(app, authRequired)
	itemHandler.RegisterRoutes(app, authRequired)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Catch-all for undefined routes.
	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Requested resource not found.")
	})

	// --- Catalog event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for catalog events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received catalog event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeCatalogEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
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

// buildRepositories opens the configured database, or falls back to the
// in-memory repositories when no DATABASE_URL is set (development).
func buildRepositories(cfg *config.Config) (repositories.UserRepository, repositories.ItemRepository, error) {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, using in-memory repositories")
		userRepo := repositories.NewMockUserRepository()
		itemRepo := repositories.NewMockItemRepository(userRepo)
		return userRepo, itemRepo, nil
	}

	// TranslateError is required so duplicate emails surface as
	// gorm.ErrDuplicatedKey and map to Conflict.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrate(&models.User{}, &models.ClothingItem{}); err != nil {
		return nil, nil, err
	}
	return repositories.NewGORMUserRepository(db), repositories.NewGORMItemRepository(db), nil
}
