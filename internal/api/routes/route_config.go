package routes

import (
	"warranty-hub-backend/domain"
	"warranty-hub-backend/internal/api/handlers"
	"warranty-hub-backend/internal/middleware"
	"warranty-hub-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	WarrantyHandler handlers.WarrantyHandler
	CustomerHandler handlers.CustomerHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Store()
	c.Customer()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
	}
}

func (c *Config) Store() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	storeOnly := c.Middleware.RequireRole(domain.RoleStore)

	store := c.App.Group("/api/v1/stores", auth, storeOnly)
	store.Get("/dashboard", c.WarrantyHandler.GetDashboardStats)
	store.Get("/profile", c.UserHandler.GetStoreProfile)
	store.Patch("/profile", c.UserHandler.UpdateStoreProfile)
	store.Post("/profile/logo", c.UserHandler.UploadStoreLogo)

	warranties := c.App.Group("/api/v1/warranties", auth)
	// certificate download is shared: the service checks store ownership or
	// the customer link depending on the caller's role
	warranties.Get("/:id/pdf", c.WarrantyHandler.DownloadCertificate)

	warranties.Post("", storeOnly, c.WarrantyHandler.CreateWarranty)
	warranties.Get("", storeOnly, c.WarrantyHandler.GetWarranties)
	warranties.Get("/:id", storeOnly, c.WarrantyHandler.GetWarrantyDetails)
	warranties.Patch("/:id", storeOnly, c.WarrantyHandler.UpdateWarranty)
	warranties.Delete("/:id", storeOnly, c.WarrantyHandler.DeleteWarranty)

	warranties.Post("/:id/items", storeOnly, c.WarrantyHandler.AddItem)
	warranties.Patch("/items/:itemId", storeOnly, c.WarrantyHandler.UpdateItem)
	warranties.Delete("/items/:itemId", storeOnly, c.WarrantyHandler.DeleteItem)
	warranties.Post("/items/:itemId/images", storeOnly, c.WarrantyHandler.UploadItemImage)
	warranties.Delete("/items/:itemId/images/:imageId", storeOnly, c.WarrantyHandler.DeleteItemImage)
}

func (c *Config) Customer() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	customerOnly := c.Middleware.RequireRole(domain.RoleCustomer)

	customer := c.App.Group("/api/v1/customers", auth, customerOnly)
	customer.Get("/warranties", c.CustomerHandler.GetWarranties)
	customer.Get("/warranties/:id", c.CustomerHandler.GetWarrantyDetails)
	customer.Patch("/warranties/items/:itemId/note", c.CustomerHandler.UpdateCustomerNote)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
