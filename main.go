package main

import (
	"learninglife/config"
	"learninglife/database"
	authRoutes "learninglife/routers/authRoutes"
	courseRoutes "learninglife/routers/courseRoutes"
	userRoutes "learninglife/routers/userRoutes"
	"learninglife/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	utils.InitMediaStore()

	app := fiber.New(fiber.Config{
		BodyLimit: config.AppConfig.MaxUploadBytes,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Health route, also probes the media store
	app.Get("/", func(c *fiber.Ctx) error {
		if err := utils.PingMediaStore(c.UserContext()); err != nil {
			log.Printf("Media store probe failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).SendString("LearningLife server is running, media store unreachable")
		}
		return c.SendString("LearningLife server is running")
	})

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)

	// Hourly cleanup of enrollments whose course has been deleted
	utils.StartEnrollmentSweeper()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
