package db

import (
	"log"
	"os"

	"cargolink/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=cargolink port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedAdmin()
}

// Migrate runs the schema migration for every model. Shared with the test
// setup so the in-memory schema matches production.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Transit{},
		&models.Proposal{},
		&models.Notification{},
		&models.ShipPost{},
		&models.Container{},
		&models.ContainerItem{},
		&models.HelpRequest{},
	)
}

func seedAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		return
	}

	var count int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		log.Println("Admin already seeded, skipping")
		return
	}

	// Password hash is provided pre-computed to keep secrets out of the DB
	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	if hash == "" {
		log.Println("ADMIN_PASSWORD_HASH not set, skipping admin seed")
		return
	}

	admin := models.User{
		Username: "admin",
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to create admin user: %v", err)
		return
	}
	log.Println("Initial admin user created successfully")
}
