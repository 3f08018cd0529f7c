package database

import (
	"fmt"
	"testing"

	"learninglife/config"
	"learninglife/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func seedTestDb(t *testing.T) *gorm.DB {
	t.Helper()
	config.LoadConfig()

	dsn := fmt.Sprintf("file:seed_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.Enrollment{}))
	return db
}

func TestSeedAdminUser(t *testing.T) {
	db := seedTestDb(t)

	config.AppConfig.AdminEmail = "admin@learninglife.test"
	config.AppConfig.AdminPassword = "admin-secret"
	defer func() {
		config.AppConfig.AdminEmail = ""
		config.AppConfig.AdminPassword = ""
	}()

	require.NoError(t, SeedAdminUser(db))

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@learninglife.test").First(&admin).Error)

	assert.Equal(t, "ADMIN", admin.Role)
	assert.NotEqual(t, "admin-secret", admin.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin-secret")))

	// Seeding again must not duplicate the account
	require.NoError(t, SeedAdminUser(db))

	var count int64
	db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSeedAdminUserSkipsWhenUnconfigured(t *testing.T) {
	db := seedTestDb(t)

	config.AppConfig.AdminEmail = ""
	config.AppConfig.AdminPassword = ""

	require.NoError(t, SeedAdminUser(db))

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}
