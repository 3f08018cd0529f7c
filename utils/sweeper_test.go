package utils

import (
	"fmt"
	"testing"

	"learninglife/config"
	"learninglife/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func sweeperTestDb(t *testing.T) *gorm.DB {
	t.Helper()
	config.LoadConfig()

	dsn := fmt.Sprintf("file:sweeper_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.Enrollment{}))
	return db
}

func TestPurgeOrphanEnrollments(t *testing.T) {
	db := sweeperTestDb(t)

	user := models.User{Name: "alice", Email: "a@x.com", Password: "irrelevant"}
	require.NoError(t, db.Create(&user).Error)

	live := models.Course{Name: "Live", TimeRequired: 5}
	gone := models.Course{Name: "Gone", TimeRequired: 5, IsDeleted: true}
	require.NoError(t, db.Create(&live).Error)
	require.NoError(t, db.Create(&gone).Error)

	keep := models.Enrollment{UserID: user.ID, CourseID: live.ID, Status: models.EnrollmentNotStarted}
	orphan := models.Enrollment{UserID: user.ID, CourseID: gone.ID, Status: models.EnrollmentNotStarted}
	require.NoError(t, db.Create(&keep).Error)
	require.NoError(t, db.Create(&orphan).Error)

	purged, err := PurgeOrphanEnrollments(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var after models.Enrollment
	require.NoError(t, db.First(&after, keep.ID).Error)
	assert.False(t, after.IsDeleted)

	after = models.Enrollment{}
	require.NoError(t, db.First(&after, orphan.ID).Error)
	assert.True(t, after.IsDeleted)
}

func TestPurgeOrphanEnrollmentsNothingToDo(t *testing.T) {
	db := sweeperTestDb(t)

	purged, err := PurgeOrphanEnrollments(db)
	require.NoError(t, err)
	assert.Zero(t, purged)
}
