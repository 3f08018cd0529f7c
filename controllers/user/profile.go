package userController

import (
	"learninglife/database"
	"learninglife/middleware"
	"learninglife/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Home returns the authenticated identity for the landing view
func Home(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Welcome back!", fiber.Map{
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// Profile returns the user together with their enrolled courses, in the order
// they enrolled
func Profile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", userID, false).
		Preload("Enrollments", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("created_at asc, id asc")
		}).
		Preload("Enrollments.Course").
		First(&user).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}
