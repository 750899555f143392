package repositories

import (
	"errors"

	"restaurant_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBusinessUserNotFound = errors.New("business user not found")
	ErrBusinessUserExists   = errors.New("user already has a role in this restaurant")
)

type BusinessUserRepository interface {
	Create(db *gorm.DB, bu *models.BusinessUser) error
	FindRole(db *gorm.DB, userID, restaurantID string) (*models.BusinessUser, error)
	ListByRestaurant(db *gorm.DB, restaurantID string) ([]models.BusinessUser, error)
	ListByUser(db *gorm.DB, userID string) ([]models.BusinessUser, error)
	StaffUserIDs(db *gorm.DB, restaurantID string) ([]string, error)
	Delete(db *gorm.DB, userID, restaurantID string) error
}

type BusinessUserRepositoryImpl struct{}

func NewBusinessUserRepository() BusinessUserRepository {
	return &BusinessUserRepositoryImpl{}
}

func (r *BusinessUserRepositoryImpl) Create(db *gorm.DB, bu *models.BusinessUser) error {
	if err := db.Create(bu).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrBusinessUserExists
		}
		return err
	}
	return nil
}

func (r *BusinessUserRepositoryImpl) FindRole(db *gorm.DB, userID, restaurantID string) (*models.BusinessUser, error) {
	var bu models.BusinessUser
	err := db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).First(&bu).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessUserNotFound
		}
		return nil, err
	}
	return &bu, nil
}

func (r *BusinessUserRepositoryImpl) ListByRestaurant(db *gorm.DB, restaurantID string) ([]models.BusinessUser, error) {
	var staff []models.BusinessUser
	err := db.Preload("User").
		Where("restaurant_id = ?", restaurantID).
		Order("role DESC").Order("created_at ASC").
		Find(&staff).Error
	return staff, err
}

func (r *BusinessUserRepositoryImpl) ListByUser(db *gorm.DB, userID string) ([]models.BusinessUser, error) {
	var roles []models.BusinessUser
	err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&roles).Error
	return roles, err
}

func (r *BusinessUserRepositoryImpl) StaffUserIDs(db *gorm.DB, restaurantID string) ([]string, error) {
	var ids []string
	err := db.Model(&models.BusinessUser{}).
		Where("restaurant_id = ?", restaurantID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *BusinessUserRepositoryImpl) Delete(db *gorm.DB, userID, restaurantID string) error {
	if !validID(userID, restaurantID) {
		return ErrBusinessUserNotFound
	}
	result := db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).Delete(&models.BusinessUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBusinessUserNotFound
	}
	return nil
}
