package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"learninglife/config"
	"learninglife/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	// Build the PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.AppConfig.DBHost,
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBName,
		config.AppConfig.DBPort,
	)

	// Open database connection
	// TranslateError maps driver unique-violation errors to gorm.ErrDuplicatedKey
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)                  // Maximum open connections
	sqlDB.SetMaxIdleConns(5)                   // Maximum idle connections
	sqlDB.SetConnMaxLifetime(time.Hour)        // Recycle connections hourly
	sqlDB.SetConnMaxIdleTime(10 * time.Minute) // Drop idle connections

	// Run database migrations
	runMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}

	// Ensure the configured admin account exists
	if err := SeedAdminUser(db); err != nil {
		log.Printf("Failed to seed admin account: %v", err)
	}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// SeedAdminUser creates the admin account from ADMIN_EMAIL/ADMIN_PASSWORD if it
// does not exist yet. The credential is hashed like any other user password, so
// no hard-coded or plaintext admin credential exists anywhere.
func SeedAdminUser(db *gorm.DB) error {
	email := config.AppConfig.AdminEmail
	password := config.AppConfig.AdminPassword
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Role:     "ADMIN",
		Password: string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin account %s", email)
	return nil
}
