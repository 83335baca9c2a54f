package config

import (
	"os"
	"time"

	"warranty-hub-backend/internal/api/handlers"
	"warranty-hub-backend/internal/api/routes"
	"warranty-hub-backend/internal/middleware"
	"warranty-hub-backend/internal/utils"
	"warranty-hub-backend/internal/utils/storage"
	"warranty-hub-backend/pkg/jwt"
	"warranty-hub-backend/pkg/reminder"
	"warranty-hub-backend/pkg/user"
	"warranty-hub-backend/pkg/warranty"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	warrantyRepository := warranty.NewWarrantyRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, s3)
	warrantyService := warranty.NewWarrantyService(warrantyRepository, userRepository, s3)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	warrantyHandler := handlers.NewWarrantyHandler(warrantyService, validator)
	customerHandler := handlers.NewCustomerHandler(warrantyService, validator)

	// daily expiry reminders
	reminderService := reminder.NewReminderService(warrantyRepository)
	reminderService.StartScheduler()

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		WarrantyHandler: warrantyHandler,
		CustomerHandler: customerHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
