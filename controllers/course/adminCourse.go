package controllers

import (
	"context"
	"io"
	"log"
	"mime/multipart"

	"learninglife/database"
	"learninglife/middleware"
	"learninglife/models"
	"learninglife/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminCreateCourse creates a course from a multipart form carrying the course
// fields plus an optional image and up to ten videos. Media ingestion runs
// first and the record is only persisted once every upload has succeeded, so a
// course is never saved with a missing or partial video list.
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Name         string `json:"name"`
		TimeRequired int64  `json:"time_required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid multipart form!", nil)
	}

	var imagePayload *utils.MediaPayload
	if images := form.File["image"]; len(images) > 0 {
		imagePayload, err = readFormPayload(images[0])
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read image upload!", nil)
		}
	}

	videoPayloads := make([]utils.MediaPayload, 0, len(form.File["videos"]))
	for _, fh := range form.File["videos"] {
		p, err := readFormPayload(fh)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read video upload!", nil)
		}
		videoPayloads = append(videoPayloads, *p)
	}

	store := utils.MediaStoreClient()

	imageURL, videoURLs, err := utils.IngestCourseMedia(c.UserContext(), store, imagePayload, videoPayloads)
	if err != nil {
		log.Printf("Course media ingestion failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to upload course media!", fiber.Map{
			"error": err.Error(),
		})
	}

	course := models.Course{
		Name:         reqData.Name,
		TimeRequired: reqData.TimeRequired,
		ImageURL:     imageURL,
		VideoURLs:    datatypes.NewJSONSlice(videoURLs),
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		// The uploads have no owning record now, remove them again
		cleanupURLs(store, append([]string{imageURL}, videoURLs...))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminGetAllCourses lists all courses for the admin dashboard
func AdminGetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAdminList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if ok && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if ok && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	var courses []models.Course
	var total int64

	db := database.Database.Db.Model(&models.Course{}).Where("is_deleted = ?", false)
	db.Count(&total)

	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminDeleteCourse soft deletes a course and cascades over its enrollments in
// the same transaction, so no ledger entry keeps pointing at a dead course
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&course).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.Enrollment{}).
			Where("course_id = ? AND is_deleted = ?", courseID, false).
			Update("is_deleted", true).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// readFormPayload buffers one multipart file into memory for ingestion
func readFormPayload(fh *multipart.FileHeader) (*utils.MediaPayload, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	return &utils.MediaPayload{Data: data, Filename: fh.Filename}, nil
}

func cleanupURLs(store utils.ObjectStore, urls []string) {
	ctx := context.Background()
	for _, u := range urls {
		if err := store.Delete(ctx, u); err != nil {
			log.Printf("Failed to clean up uploaded object %s: %v", u, err)
		}
	}
}
