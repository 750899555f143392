package repositories

import (
	"errors"
	"time"

	"restaurant_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrReservationStateConflict - the guarded update matched no row
	ErrReservationStateConflict = errors.New("reservation state does not allow this transition")
)

type ReservationFilter struct {
	State    models.ReservationState
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

type ReservationRepository interface {
	Create(db *gorm.DB, reservation *models.Reservation) error
	FindByID(db *gorm.DB, id string) (*models.Reservation, error)
	ListByUser(db *gorm.DB, userID string, filter ReservationFilter) ([]models.Reservation, int64, error)
	ListByRestaurant(db *gorm.DB, restaurantID string, filter ReservationFilter) ([]models.Reservation, int64, error)
	Transition(db *gorm.DB, id string, target models.ReservationState) error
	FindIDsForSweep(db *gorm.DB, state models.ReservationState, before time.Time) ([]string, error)
}

type ReservationRepositoryImpl struct{}

func NewReservationRepository() ReservationRepository {
	return &ReservationRepositoryImpl{}
}

func (r *ReservationRepositoryImpl) Create(db *gorm.DB, reservation *models.Reservation) error {
	return db.Create(reservation).Error
}

func (r *ReservationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Reservation, error) {
	if !validID(id) {
		return nil, ErrReservationNotFound
	}
	var reservation models.Reservation
	if err := db.Preload("Restaurant").First(&reservation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *ReservationRepositoryImpl) ListByUser(db *gorm.DB, userID string, filter ReservationFilter) ([]models.Reservation, int64, error) {
	return r.list(db.Where("user_id = ?", userID), filter, true)
}

func (r *ReservationRepositoryImpl) ListByRestaurant(db *gorm.DB, restaurantID string, filter ReservationFilter) ([]models.Reservation, int64, error) {
	return r.list(db.Where("restaurant_id = ?", restaurantID), filter, false)
}

func (r *ReservationRepositoryImpl) list(query *gorm.DB, filter ReservationFilter, withRestaurant bool) ([]models.Reservation, int64, error) {
	var reservations []models.Reservation
	var total int64

	query = query.Model(&models.Reservation{})
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}
	if filter.From != nil {
		query = query.Where("date_reservation >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date_reservation <= ?", *filter.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if withRestaurant {
		query = query.Preload("Restaurant")
	}
	err := query.Order("date_reservation DESC").Order("time DESC").
		Scopes(Paginate(filter.Page, filter.PageSize)).
		Find(&reservations).Error
	return reservations, total, err
}

// Transition moves the reservation to target only if its current state is one
// of the allowed sources. Zero matched rows means the guard failed.
func (r *ReservationRepositoryImpl) Transition(db *gorm.DB, id string, target models.ReservationState) error {
	if !validID(id) {
		return ErrReservationNotFound
	}
	sources := models.ReservationSourceStates(target)
	if len(sources) == 0 {
		return ErrReservationStateConflict
	}

	result := db.Model(&models.Reservation{}).
		Where("id = ? AND state IN ?", id, sources).
		Update("state", target)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationStateConflict
	}
	return nil
}

// FindIDsForSweep returns reservations in state whose date is strictly before `before`.
func (r *ReservationRepositoryImpl) FindIDsForSweep(db *gorm.DB, state models.ReservationState, before time.Time) ([]string, error) {
	var ids []string
	err := db.Model(&models.Reservation{}).
		Where("state = ? AND date_reservation < ?", state, before).
		Limit(500).
		Pluck("id", &ids).Error
	return ids, err
}
