package repositories

import (
	"restaurant_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository interface {
	Follow(db *gorm.DB, userID, restaurantID string) error
	Unfollow(db *gorm.DB, userID, restaurantID string) error
	IsFollowing(db *gorm.DB, userID, restaurantID string) (bool, error)
	RestaurantIDs(db *gorm.DB, userID string) ([]string, error)
	CountFollowers(db *gorm.DB, restaurantID string) (int64, error)
}

type FollowRepositoryImpl struct{}

func NewFollowRepository() FollowRepository {
	return &FollowRepositoryImpl{}
}

// Follow is idempotent
func (r *FollowRepositoryImpl) Follow(db *gorm.DB, userID, restaurantID string) error {
	follow := &models.Follow{UserID: userID, RestaurantID: restaurantID}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error
}

func (r *FollowRepositoryImpl) Unfollow(db *gorm.DB, userID, restaurantID string) error {
	return db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).Delete(&models.Follow{}).Error
}

func (r *FollowRepositoryImpl) IsFollowing(db *gorm.DB, userID, restaurantID string) (bool, error) {
	var count int64
	err := db.Model(&models.Follow{}).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Count(&count).Error
	return count > 0, err
}

func (r *FollowRepositoryImpl) RestaurantIDs(db *gorm.DB, userID string) ([]string, error) {
	ids := []string{}
	err := db.Model(&models.Follow{}).Where("user_id = ?", userID).Pluck("restaurant_id", &ids).Error
	return ids, err
}

func (r *FollowRepositoryImpl) CountFollowers(db *gorm.DB, restaurantID string) (int64, error) {
	var count int64
	err := db.Model(&models.Follow{}).Where("restaurant_id = ?", restaurantID).Count(&count).Error
	return count, err
}
