package controllers

import (
	"learninglife/database"
	"learninglife/middleware"
	"learninglife/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// EnrollInCourse records that the user wants to take the course. Enrolling is
// idempotent: the insert goes through ON CONFLICT DO NOTHING against the
// (user_id, course_id) unique index, so a repeated or concurrent enroll leaves
// exactly one row and reports success either way.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated course ID
	courseID := c.Locals("courseID").(int)

	// Check if course exists
	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	enrollment := models.Enrollment{
		UserID:   userID,
		CourseID: uint(courseID),
		Status:   models.EnrollmentNotStarted,
	}

	result := database.Database.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&enrollment)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	if result.RowsAffected == 0 {
		// Already enrolled, nothing changed
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled in this course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the user's enrollments joined with course data, in
// enrollment order
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated pagination request
	reqData, ok := c.Locals("validatedEnrollmentList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		// Fetch all enrollments without pagination
		var enrollments []models.Enrollment
		if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Preload("Course").Order("created_at asc, id asc").Find(&enrollments).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
		}
		response := map[string]interface{}{
			"enrollments": enrollments,
			"pagination": map[string]interface{}{
				"total": int64(len(enrollments)),
				"page":  1,
				"limit": len(enrollments),
			},
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", response)
	}

	// Set default pagination
	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	// Fetch enrollments with pagination
	var enrollments []models.Enrollment
	db := database.Database.Db.Model(&models.Enrollment{}).Where("user_id = ? AND is_deleted = ?", userID, false).Preload("Course")

	// Get total count
	var total int64
	db.Count(&total)

	// Fetch paginated data
	if err := db.Offset(offset).Limit(limit).Order("created_at asc, id asc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	// Prepare response
	response := map[string]interface{}{
		"enrollments": enrollments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", response)
}

// StartCourse moves an enrollment from NOT_STARTED to IN_PROGRESS. The
// transition is a single conditional update so two concurrent starts cannot
// both claim it. A course with no videos reports "no content" and never
// transitions; starting without an enrollment changes nothing.
func StartCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !course.HasContent() {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No videos available for this course!", nil)
	}

	result := database.Database.Db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
			userID, courseID, models.EnrollmentNotStarted, false).
		Update("status", models.EnrollmentInProgress)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start course!", nil)
	}

	if result.RowsAffected == 0 {
		var enrollment models.Enrollment
		err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error
		if err != nil {
			// No enrollment exists; deliberately not created here
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Not enrolled in this course, nothing to start.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course already in progress!", enrollment)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course started!", fiber.Map{
		"course_id": course.ID,
		"status":    models.EnrollmentInProgress,
	})
}

// GetCoursePlayer returns the playable course content, or "no content" when
// the course has no videos
func GetCoursePlayer(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !course.HasContent() {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No videos available for this course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content fetched successfully!", course)
}
