package workers

import (
	"testing"
	"time"

	"restaurant_backend/internal/email"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/services"
	"restaurant_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_SweepReservations(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, "owner")
	guest := testutil.CreateUser(t, db, "guest")
	restaurant := testutil.CreateRestaurant(t, db, owner, "bistro")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	stale := &models.Reservation{
		RestaurantID:    restaurant.ID,
		UserID:          guest.ID,
		DateReservation: now.AddDate(0, 0, -2),
		Time:            "19:00",
		NumberOfGuests:  2,
		CustomerName:    "Guest",
		PhoneNumber:     "0600000000",
		State:           models.ReservationPending,
	}
	require.NoError(t, db.Create(stale).Error)

	reservationRepo := repositories.NewReservationRepository()
	restaurantRepo := repositories.NewRestaurantRepository()
	businessUserRepo := repositories.NewBusinessUserRepository()
	access := services.NewAccessService(restaurantRepo, repositories.NewPostRepository(), reservationRepo, businessUserRepo)
	reservations := services.NewReservationService(reservationRepo, restaurantRepo, businessUserRepo,
		repositories.NewUserRepository(), access, nil, email.NewMockProvider())
	notifications := services.NewNotificationService(repositories.NewNotificationRepository())

	scheduler := NewScheduler(db, reservations, notifications, Schedule{ReservationSweep: "@hourly"})
	scheduler.now = func() time.Time { return now }
	scheduler.SweepReservations()

	var reloaded models.Reservation
	require.NoError(t, db.First(&reloaded, "id = ?", stale.ID).Error)
	assert.Equal(t, models.ReservationCancelled, reloaded.State)
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	db := testutil.NewTestDB(t)
	scheduler := NewScheduler(db, nil, nil, Schedule{ReservationSweep: "every tuesday"})
	assert.Error(t, scheduler.Start())
}
