package courseRoutes

import (
	controllers "learninglife/controllers/course"
	"learninglife/middleware"
	validators "learninglife/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog browsing
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)

	// Enrollment ledger
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)
	courseGroup.Post("/:id/start", middleware.JWTMiddleware, validators.CourseID(), controllers.StartCourse)

	// Player, only served when the course has video content
	courseGroup.Get("/:id/player", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCoursePlayer)
}
