package repositories

import (
	"errors"
	"strings"

	"restaurant_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
)

// RestaurantFilter - public listing criteria
type RestaurantFilter struct {
	City      string
	Cuisine   string
	Query     string
	MinRating float64
	SortBy    string // "rating" or "newest"
	Page      int
	PageSize  int
}

type RestaurantRepository interface {
	Create(db *gorm.DB, restaurant *models.Restaurant) error
	FindByID(db *gorm.DB, id string) (*models.Restaurant, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Restaurant, error)
	FindByIDs(db *gorm.DB, ids []string) ([]models.Restaurant, error)
	List(db *gorm.DB, filter RestaurantFilter) ([]models.Restaurant, int64, error)
	Update(db *gorm.DB, restaurant *models.Restaurant) error
	Delete(db *gorm.DB, id string) error
	SlugExists(db *gorm.DB, slug string) (bool, error)
	UpdateRating(db *gorm.DB, restaurantID string, averageRating float64, numReviews int) error

	// Menu
	CreateMenuItem(db *gorm.DB, item *models.MenuItem) error
	FindMenuItem(db *gorm.DB, restaurantID, itemID string) (*models.MenuItem, error)
	ListMenu(db *gorm.DB, restaurantID string, onlyAvailable bool) ([]models.MenuItem, error)
	UpdateMenuItem(db *gorm.DB, item *models.MenuItem) error
	DeleteMenuItem(db *gorm.DB, restaurantID, itemID string) error
}

type RestaurantRepositoryImpl struct{}

func NewRestaurantRepository() RestaurantRepository {
	return &RestaurantRepositoryImpl{}
}

func (r *RestaurantRepositoryImpl) Create(db *gorm.DB, restaurant *models.Restaurant) error {
	return db.Create(restaurant).Error
}

func (r *RestaurantRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Restaurant, error) {
	if !validID(id) {
		return nil, ErrRestaurantNotFound
	}
	var restaurant models.Restaurant
	if err := db.First(&restaurant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func (r *RestaurantRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := db.Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func (r *RestaurantRepositoryImpl) FindByIDs(db *gorm.DB, ids []string) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if len(ids) == 0 {
		return restaurants, nil
	}
	err := db.Where("id IN ?", ids).Order("name ASC").Find(&restaurants).Error
	return restaurants, err
}

func (r *RestaurantRepositoryImpl) List(db *gorm.DB, filter RestaurantFilter) ([]models.Restaurant, int64, error) {
	var restaurants []models.Restaurant
	var total int64

	query := db.Model(&models.Restaurant{})
	if filter.City != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(filter.City))
	}
	if filter.Query != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(filter.Query))+"%")
	}
	if filter.Cuisine != "" {
		// cuisines is a JSON array; a quoted match works on both jsonb text and sqlite
		query = query.Where("LOWER(CAST(cuisines AS TEXT)) LIKE ? ESCAPE '\\'", "%\""+escapeLike(strings.ToLower(filter.Cuisine))+"\"%")
	}
	if filter.MinRating > 0 {
		query = query.Where("average_rating >= ?", filter.MinRating)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.SortBy {
	case "newest":
		query = query.Order("created_at DESC")
	default:
		query = query.Order("average_rating DESC").Order("num_reviews DESC")
	}

	err := query.Scopes(Paginate(filter.Page, filter.PageSize)).Find(&restaurants).Error
	return restaurants, total, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *RestaurantRepositoryImpl) Update(db *gorm.DB, restaurant *models.Restaurant) error {
	if !validID(restaurant.ID) {
		return ErrRestaurantNotFound
	}
	result := db.Model(&models.Restaurant{}).Where("id = ?", restaurant.ID).
		Select("name", "description", "address", "city", "phone", "cuisines", "price_range", "opening_hours", "image_url").
		Updates(restaurant)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

func (r *RestaurantRepositoryImpl) Delete(db *gorm.DB, id string) error {
	if !validID(id) {
		return ErrRestaurantNotFound
	}
	result := db.Delete(&models.Restaurant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

func (r *RestaurantRepositoryImpl) SlugExists(db *gorm.DB, slug string) (bool, error) {
	var count int64
	// Unscoped: soft-deleted rows still hold the unique index
	err := db.Unscoped().Model(&models.Restaurant{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *RestaurantRepositoryImpl) UpdateRating(db *gorm.DB, restaurantID string, averageRating float64, numReviews int) error {
	result := db.Model(&models.Restaurant{}).Where("id = ?", restaurantID).
		Updates(map[string]interface{}{
			"average_rating": averageRating,
			"num_reviews":    numReviews,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

// Menu

func (r *RestaurantRepositoryImpl) CreateMenuItem(db *gorm.DB, item *models.MenuItem) error {
	return db.Create(item).Error
}

func (r *RestaurantRepositoryImpl) FindMenuItem(db *gorm.DB, restaurantID, itemID string) (*models.MenuItem, error) {
	if !validID(restaurantID, itemID) {
		return nil, ErrMenuItemNotFound
	}
	var item models.MenuItem
	err := db.Where("id = ? AND restaurant_id = ?", itemID, restaurantID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *RestaurantRepositoryImpl) ListMenu(db *gorm.DB, restaurantID string, onlyAvailable bool) ([]models.MenuItem, error) {
	var items []models.MenuItem
	query := db.Where("restaurant_id = ?", restaurantID)
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}
	err := query.Order("category ASC").Order("name ASC").Find(&items).Error
	return items, err
}

func (r *RestaurantRepositoryImpl) UpdateMenuItem(db *gorm.DB, item *models.MenuItem) error {
	result := db.Model(&models.MenuItem{}).
		Where("id = ? AND restaurant_id = ?", item.ID, item.RestaurantID).
		Select("name", "description", "price", "category", "image_url", "available").
		Updates(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (r *RestaurantRepositoryImpl) DeleteMenuItem(db *gorm.DB, restaurantID, itemID string) error {
	if !validID(restaurantID, itemID) {
		return ErrMenuItemNotFound
	}
	result := db.Where("id = ? AND restaurant_id = ?", itemID, restaurantID).Delete(&models.MenuItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}
