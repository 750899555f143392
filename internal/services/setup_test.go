package services

import (
	"testing"
	"time"

	"restaurant_backend/internal/auth"
	"restaurant_backend/internal/cache"
	"restaurant_backend/internal/email"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/testutil"

	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	mailer   *email.MockProvider
	notifier *AsyncNotificationEmitter
	svc      *ServiceContainer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	userRepo := repositories.NewUserRepository()
	restaurantRepo := repositories.NewRestaurantRepository()
	businessUserRepo := repositories.NewBusinessUserRepository()
	reservationRepo := repositories.NewReservationRepository()
	postRepo := repositories.NewPostRepository()
	reviewRepo := repositories.NewReviewRepository()
	followRepo := repositories.NewFollowRepository()
	notificationRepo := repositories.NewNotificationRepository()

	notifier := NewNotificationEmitter(db, notificationRepo, nil)
	t.Cleanup(notifier.Wait)

	mailer := email.NewMockProvider()
	access := NewAccessService(restaurantRepo, postRepo, reservationRepo, businessUserRepo)
	restaurants := NewRestaurantService(restaurantRepo, businessUserRepo, followRepo, userRepo, cache.NewNoop(), time.Minute, notifier)

	return &testEnv{
		db:       db,
		mailer:   mailer,
		notifier: notifier,
		svc: &ServiceContainer{
			AccessService:       access,
			AuthService:         NewAuthService(userRepo, auth.NewTokenManager("test-secret", 0)),
			ProfileService:      NewProfileService(userRepo),
			RestaurantService:   restaurants,
			ReservationService:  NewReservationService(reservationRepo, restaurantRepo, businessUserRepo, userRepo, access, notifier, mailer),
			PostService:         NewPostService(postRepo, restaurantRepo, followRepo, businessUserRepo, access, notifier),
			ReviewService:       NewReviewService(reviewRepo, restaurantRepo, restaurants, notifier),
			NotificationService: NewNotificationService(notificationRepo),
			EmailService:        mailer,
			Notifier:            notifier,
		},
	}
}
