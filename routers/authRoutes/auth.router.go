package authRoutes

import (
	authControllers "learninglife/controllers/auth"
	"learninglife/middleware"
	authValidators "learninglife/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/adminlogin", authValidators.Login(), authControllers.AdminLogin)
	authGroup.Put("/change/password", authValidators.ChangePassword(), middleware.JWTMiddleware, authControllers.ChangePassword)
}
