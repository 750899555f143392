package repositories

import (
	"errors"
	"math"

	"restaurant_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this restaurant")
)

// RatingAggregate is the denormalized summary written onto a restaurant.
type RatingAggregate struct {
	AverageRating float64 `json:"averageRating"`
	NumReviews    int     `json:"numReviews"`
}

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id string) (*models.Review, error)
	FindActive(db *gorm.DB, userID, restaurantID string) (*models.Review, error)
	ListByRestaurant(db *gorm.DB, restaurantID string, page, pageSize int) ([]models.Review, int64, error)
	ListByUser(db *gorm.DB, userID string, page, pageSize int) ([]models.Review, int64, error)
	Delete(db *gorm.DB, id string) error
	CalculateRating(db *gorm.DB, restaurantID string) (*RatingAggregate, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	if err := db.Create(review).Error; err != nil {
		// partial unique index on (user_id, restaurant_id) where not deleted
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	if !validID(id) {
		return nil, ErrReviewNotFound
	}
	var review models.Review
	if err := db.Preload("User").First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindActive(db *gorm.DB, userID, restaurantID string) (*models.Review, error) {
	var review models.Review
	err := db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) ListByRestaurant(db *gorm.DB, restaurantID string, page, pageSize int) ([]models.Review, int64, error) {
	return r.list(db.Where("restaurant_id = ?", restaurantID), page, pageSize)
}

func (r *ReviewRepositoryImpl) ListByUser(db *gorm.DB, userID string, page, pageSize int) ([]models.Review, int64, error) {
	return r.list(db.Where("user_id = ?", userID), page, pageSize)
}

func (r *ReviewRepositoryImpl) list(query *gorm.DB, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	query = query.Model(&models.Review{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").Order("created_at DESC").
		Scopes(Paginate(page, pageSize)).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepositoryImpl) Delete(db *gorm.DB, id string) error {
	if !validID(id) {
		return ErrReviewNotFound
	}
	result := db.Delete(&models.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// CalculateRating rescans the non-deleted reviews of a restaurant.
// The mean is rounded to one decimal; no reviews gives 0.
func (r *ReviewRepositoryImpl) CalculateRating(db *gorm.DB, restaurantID string) (*RatingAggregate, error) {
	var row struct {
		Count int64
		Avg   float64
	}
	err := db.Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Where("restaurant_id = ?", restaurantID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &RatingAggregate{
		AverageRating: RoundRating(row.Avg),
		NumReviews:    int(row.Count),
	}, nil
}

// RoundRating rounds to one decimal place, half away from zero.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
