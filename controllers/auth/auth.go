package authController

import (
	"errors"
	"log"
	"time"

	"learninglife/database"
	"learninglife/middleware"
	"learninglife/models"
	"learninglife/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Hash Password before first persistence. The plaintext never reaches the database.
	hashedPassword, err := utils.HashPassword(reqData.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	// Prepare User Struct for DB Entry
	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: hashedPassword,
	}

	// Create User. The unique index on email is the single authority on
	// duplicates, so two concurrent registrations cannot both get through.
	if err := db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	utils.SendWelcomeEmail(newUser.Email, newUser.Name)

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	return login(c, false)
}

// AdminLogin is the admin entry point. The admin account is seeded from
// configuration at startup; rejection stays generic so the endpoint never
// reveals whether the email, the password or the role was the problem.
func AdminLogin(c *fiber.Ctx) error {
	return login(c, true)
}

func login(c *fiber.Ctx, adminOnly bool) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	result := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !utils.CheckPassword(reqData.Password, user.Password) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if adminOnly && user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	user.LastLogin = time.Now()
	database.Database.Db.Model(&user).Update("last_login", user.LastLogin)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": token,
		"user":  user,
	})
}

func ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedChangePassword").(*struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if !utils.CheckPassword(reqData.OldPassword, user.Password) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Re-hash once before save, same policy as registration
	hashedPassword, err := utils.HashPassword(reqData.NewPassword)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("password", hashedPassword).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password updated successfully!", nil)
}
