// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"restaurant_backend/database"
	"restaurant_backend/internal/auth"
	"restaurant_backend/internal/logger"
	"restaurant_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory sqlite store with the full schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Init("test")

	db, err := gorm.Open(sqlite.Open("file::memory:"), database.GormConfig())
	require.NoError(t, err)

	// one connection keeps the in-memory database alive and private
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateUser inserts an active user with password "password123".
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		Email:        fmt.Sprintf("%s-%d@example.com", name, time.Now().UnixNano()),
		PasswordHash: hash,
		Name:         name,
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateRestaurant inserts a restaurant and makes owner its owner BusinessUser.
func CreateRestaurant(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		Name:    name,
		Slug:    fmt.Sprintf("%s-%d", name, time.Now().UnixNano()),
		City:    "Lyon",
		OwnerID: owner.ID,
	}
	require.NoError(t, db.Create(restaurant).Error)
	AddStaff(t, db, owner, restaurant, models.BusinessRoleOwner)
	return restaurant
}

func AddStaff(t *testing.T, db *gorm.DB, user *models.User, restaurant *models.Restaurant, role models.BusinessRole) {
	t.Helper()
	require.NoError(t, db.Create(&models.BusinessUser{
		UserID:       user.ID,
		RestaurantID: restaurant.ID,
		Role:         role,
	}).Error)
}
