package userRoutes

import (
	courseControllers "learninglife/controllers/course"
	userControllers "learninglife/controllers/user"
	"learninglife/middleware"
	courseValidators "learninglife/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/home", middleware.JWTMiddleware, userControllers.Home)
	userGroup.Get("/profile", middleware.JWTMiddleware, userControllers.Profile)
	userGroup.Get("/enrollments", middleware.JWTMiddleware, courseValidators.GetUserEnrollments(), courseControllers.GetEnrollments)
}
