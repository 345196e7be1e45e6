package routes

import (
	"Expiry-Reminder/internal/api/handlers"
	"Expiry-Reminder/internal/middleware"
	"Expiry-Reminder/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App                 *fiber.App
	ReceiptHandler      handlers.ReceiptHandler
	ItemHandler         handlers.ItemHandler
	UserHandler         handlers.UserHandler
	NotificationHandler handlers.NotificationHandler
	Middleware          middleware.Middleware
	TokenVerifier       jwt.TokenVerifier
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Receipts()
	c.Items()
	c.User()
	c.Notifications()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})

	gatherer := c.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/v1/receipts", c.Middleware.AuthMiddleware(c.TokenVerifier))
	receipts.Post("", c.ReceiptHandler.UploadReceipt)
	receipts.Get("/:id", c.ReceiptHandler.GetReceipt)
}

func (c *Config) Items() {
	items := c.App.Group("/api/v1/items", c.Middleware.AuthMiddleware(c.TokenVerifier))
	items.Get("", c.ItemHandler.GetItems)
	items.Get("/:id", c.ItemHandler.GetItemDetails)
	items.Put("/:id", c.ItemHandler.UpdateItem)
	items.Delete("/:id", c.ItemHandler.DeleteItem)
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users", c.Middleware.AuthMiddleware(c.TokenVerifier))
	user.Get("/me", c.UserHandler.Me)
	user.Put("/me/push-token", c.UserHandler.UpdatePushToken)
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.TokenVerifier))
	notifications.Post("/sweep", c.NotificationHandler.RunSweep)
}
