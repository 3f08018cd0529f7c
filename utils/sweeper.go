package utils

import (
	"fmt"
	"log"
	"time"

	"learninglife/database"
	"learninglife/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// logSweeper logs sweeper events with timestamp
func logSweeper(message string) {
	log.Printf("[ENROLLMENT-SWEEPER %s] %s", time.Now().Format(time.RFC3339), message)
}

// PurgeOrphanEnrollments marks enrollments deleted when their course no longer
// exists. Course deletion already cascades over its enrollments in the same
// transaction; the sweeper catches rows that predate the cascade or were left
// behind by an interrupted delete.
func PurgeOrphanEnrollments(db *gorm.DB) (int64, error) {
	live := db.Model(&models.Course{}).Select("id").Where("is_deleted = ?", false)

	res := db.Model(&models.Enrollment{}).
		Where("is_deleted = ?", false).
		Where("course_id NOT IN (?)", live).
		Update("is_deleted", true)

	return res.RowsAffected, res.Error
}

// StartEnrollmentSweeper schedules the hourly orphan cleanup
func StartEnrollmentSweeper() {
	c := cron.New()

	_, err := c.AddFunc("@hourly", func() {
		purged, err := PurgeOrphanEnrollments(database.Database.Db)
		if err != nil {
			logSweeper("Error purging orphan enrollments: " + err.Error())
			return
		}
		if purged > 0 {
			logSweeper(fmt.Sprintf("Purged %d orphan enrollment(s)", purged))
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule enrollment sweeper: %v", err)
	}

	c.Start()
	logSweeper("Enrollment sweeper scheduled (@hourly)")
}
