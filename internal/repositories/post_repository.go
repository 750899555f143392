package repositories

import (
	"errors"

	"restaurant_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound      = errors.New("post not found")
	ErrPostStateConflict = errors.New("post is not pending")
)

type PostFilter struct {
	State         models.PostState
	RestaurantID  string
	RestaurantIDs []string // feed of followed restaurants
	AuthorUserID  string
	Page          int
	PageSize      int
}

type PostRepository interface {
	Create(db *gorm.DB, post *models.Post) error
	FindByID(db *gorm.DB, id string) (*models.Post, error)
	List(db *gorm.DB, filter PostFilter) ([]models.Post, int64, error)
	UpdateStateFromPending(db *gorm.DB, id string, target models.PostState) error
	Delete(db *gorm.DB, id string) error
}

type PostRepositoryImpl struct{}

func NewPostRepository() PostRepository {
	return &PostRepositoryImpl{}
}

func (r *PostRepositoryImpl) Create(db *gorm.DB, post *models.Post) error {
	return db.Create(post).Error
}

func (r *PostRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Post, error) {
	if !validID(id) {
		return nil, ErrPostNotFound
	}
	var post models.Post
	err := db.Preload("Author").Preload("Restaurant").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepositoryImpl) List(db *gorm.DB, filter PostFilter) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := db.Model(&models.Post{})
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}
	if filter.RestaurantID != "" {
		query = query.Where("author_restaurant_id = ?", filter.RestaurantID)
	}
	if filter.RestaurantIDs != nil {
		if len(filter.RestaurantIDs) == 0 {
			return []models.Post{}, 0, nil
		}
		query = query.Where("author_restaurant_id IN ?", filter.RestaurantIDs)
	}
	if filter.AuthorUserID != "" {
		query = query.Where("author_user_id = ?", filter.AuthorUserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").Preload("Restaurant").
		Order("created_at DESC").
		Scopes(Paginate(filter.Page, filter.PageSize)).
		Find(&posts).Error
	return posts, total, err
}

// UpdateStateFromPending is the guarded moderation update.
func (r *PostRepositoryImpl) UpdateStateFromPending(db *gorm.DB, id string, target models.PostState) error {
	if !validID(id) {
		return ErrPostNotFound
	}
	result := db.Model(&models.Post{}).
		Where("id = ? AND state = ?", id, models.PostPending).
		Update("state", target)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostStateConflict
	}
	return nil
}

func (r *PostRepositoryImpl) Delete(db *gorm.DB, id string) error {
	if !validID(id) {
		return ErrPostNotFound
	}
	result := db.Delete(&models.Post{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}
