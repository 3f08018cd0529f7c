package courseValidator

import (
	"strconv"
	"strings"

	"learninglife/middleware"
	"learninglife/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse validates the admin course form: required name, a non-negative
// time estimate, at most one image and at most ten videos
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name         string `json:"name"`
			TimeRequired int64  `json:"time_required"`
		})

		errors := make(map[string]string)

		// Validate Name
		name := strings.TrimSpace(c.FormValue("name"))
		if name == "" {
			errors["name"] = "Name is required!"
		}
		reqData.Name = name

		// Validate TimeRequired
		timeStr := strings.TrimSpace(c.FormValue("time_required"))
		if timeStr == "" {
			errors["time_required"] = "Time required is required!"
		} else {
			timeRequired, err := strconv.ParseInt(timeStr, 10, 64)
			if err != nil || timeRequired < 0 {
				errors["time_required"] = "Time required must be a non-negative number!"
			}
			reqData.TimeRequired = timeRequired
		}

		// Validate uploaded files
		form, err := c.MultipartForm()
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid multipart form!", nil)
		}

		// The image is optional, a course may be created without one
		if len(form.File["image"]) > utils.MaxCourseImages {
			errors["image"] = "Only one course image is allowed!"
		}

		if len(form.File["videos"]) > utils.MaxCourseVideos {
			errors["videos"] = "At most 10 videos are allowed per course!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CourseID validates the :id route parameter shared by the enroll, start,
// player and delete routes
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		// Validate CourseID is a valid integer
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CourseList validates optional pagination for the user catalog listing
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("page") == "" && c.Query("limit") == "" {
			// No pagination requested, controllers fall back to a full listing
			return c.Next()
		}

		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		// Validate Page
		if reqData.Page == nil || *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		// Validate Limit
		if reqData.Limit == nil || *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// GetUserEnrollments validates optional pagination for the enrollment listing
func GetUserEnrollments() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("page") == "" && c.Query("limit") == "" {
			return c.Next()
		}

		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page == nil || *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit == nil || *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnrollmentList", reqData)
		return c.Next()
	}
}

// AdminCourseList validates optional pagination for the admin dashboard
func AdminCourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("page") == "" && c.Query("limit") == "" {
			return c.Next()
		}

		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("validatedAdminList", reqData)
		return c.Next()
	}
}
