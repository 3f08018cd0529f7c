package courseRoutes

import (
	controllers "learninglife/controllers/course"
	"learninglife/middleware"
	validators "learninglife/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up course management for the admin role
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Get("/courses", validators.AdminCourseList(), controllers.AdminGetAllCourses)
	adminGroup.Post("/course", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Delete("/course/:id", validators.CourseID(), controllers.AdminDeleteCourse)
}
