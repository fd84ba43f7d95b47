package services

import (
	"fmt"
	"strings"
	"testing"

	"cargolink/internal/db"
	"cargolink/internal/models"
	"cargolink/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package-global connection at a fresh in-memory
// database carrying the production schema.
func setupTestDB(t *testing.T) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	gdb, err := gorm.Open(
		sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	db.DB = gdb

	// User IDs restart at 1 per database; stale unseen counts keyed by a
	// previous test's IDs must not survive into this one
	utils.GetCache().Purge()
}

func createTestUser(t *testing.T, role, country string) *models.User {
	t.Helper()

	user := models.User{
		Username: fmt.Sprintf("%s-%s", strings.ToLower(role), uuid.NewString()[:8]),
		Email:    uuid.NewString() + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
		Country:  country,
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return &user
}

func createTestPost(t *testing.T, owner *models.User, quantity int) *models.Post {
	t.Helper()

	post := models.Post{
		Pid:      uuid.NewString(),
		UserID:   owner.ID,
		Product:  "Dates",
		Quantity: quantity,
		Unity:    "kg",
		From:     "Biskra",
		To:       "Marseille",
		Lists:    models.ListingSell,
	}
	require.NoError(t, db.DB.Create(&post).Error)
	return &post
}

func createTestTransit(t *testing.T, owner *models.User) *models.Transit {
	t.Helper()

	transit := models.Transit{
		UserID: owner.ID,
		Title:  "Alger - Marseille weekly",
		From:   "Alger",
		To:     "Marseille",
		Price:  120,
	}
	require.NoError(t, db.DB.Create(&transit).Error)
	return &transit
}

func unseen(t *testing.T, userID uint) int64 {
	t.Helper()

	count, err := UnseenCount(userID)
	require.NoError(t, err)
	return count
}
