package main

import (
	"log"

	"slotbook/config"
	"slotbook/database"
	adminRoutes "slotbook/routers/adminRoutes"
	auditLogRoutes "slotbook/routers/auditLogRoutes"
	authRoutes "slotbook/routers/authRoutes"
	bookingRoutes "slotbook/routers/bookingRoutes"
	profileRoutes "slotbook/routers/profileRoutes"
	slotManagementRoutes "slotbook/routers/slotManagementRoutes"
	slotRoutes "slotbook/routers/slotRoutes"
	userManagementRoutes "slotbook/routers/userManagementRoutes"
	"slotbook/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.CorsOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK"})
	})

	authRoutes.SetupAuthRoutes(app)
	slotRoutes.SetupSlotRoutes(app)
	bookingRoutes.SetupBookingRoutes(app)
	profileRoutes.SetupProfileRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	slotManagementRoutes.SetupSlotManagementRoutes(app)
	userManagementRoutes.SetupUserManagementRoutes(app)
	auditLogRoutes.SetupAuditLogRoutes(app)

	// Materialize recurring rules now and on the daily schedule.
	utils.StartRuleScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
