package services

import (
	"testing"
	"time"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services/dto"
	"restaurant_backend/internal/testutil"
	"restaurant_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reservationRequest(restaurantID string) *dto.CreateReservationRequest {
	return &dto.CreateReservationRequest{
		RestaurantID:   restaurantID,
		Date:           time.Now().AddDate(0, 0, 3).Format(dto.DateLayout),
		Time:           "19:30",
		NumberOfGuests: 2,
		CustomerName:   "Ana",
		PhoneNumber:    "+33 6 00 00 00 00",
	}
}

func TestCreateReservation_CustomerGetsPending(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	customer := testutil.CreateUser(t, env.db, "customer")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")

	res, err := env.svc.ReservationService.CreateReservation(env.db, customer.ID, reservationRequest(restaurant.ID))
	require.NoError(t, err)
	assert.Equal(t, string(models.ReservationPending), res.State)
	assert.Equal(t, "bistro", res.RestaurantName)

	env.notifier.Wait()
	count, err := env.svc.NotificationService.GetUnreadCount(env.db, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Count, "staff are told about the request")
}

func TestCreateReservation_StaffGetsConfirmed(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	operator := testutil.CreateUser(t, env.db, "operator")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")
	testutil.AddStaff(t, env.db, operator, restaurant, models.BusinessRoleOperator)

	for _, user := range []*models.User{owner, operator} {
		res, err := env.svc.ReservationService.CreateReservation(env.db, user.ID, reservationRequest(restaurant.ID))
		require.NoError(t, err)
		assert.Equal(t, string(models.ReservationConfirmed), res.State)
	}
}

func TestCreateReservation_UnknownRestaurant(t *testing.T) {
	env := newTestEnv(t)
	customer := testutil.CreateUser(t, env.db, "customer")

	_, err := env.svc.ReservationService.CreateReservation(env.db, customer.ID, reservationRequest("8d2f5c7e-6a0b-4e8e-9d55-000000000000"))
	assert.ErrorIs(t, err, apperrors.ErrRestaurantNotFound)
}

func TestConfirmReservation_OnlyFromPending(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	customer := testutil.CreateUser(t, env.db, "customer")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")

	res, err := env.svc.ReservationService.CreateReservation(env.db, customer.ID, reservationRequest(restaurant.ID))
	require.NoError(t, err)

	confirmed, err := env.svc.ReservationService.ConfirmReservation(env.db, res.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ReservationConfirmed), confirmed.State)

	_, err = env.svc.ReservationService.ConfirmReservation(env.db, res.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)

	_, err = env.svc.ReservationService.RejectReservation(env.db, res.ID)
	assert.ErrorIs(t, err, apperrors.ErrReservationConflict)

	assert.Eventually(t, func() bool { return len(env.mailer.Messages()) == 1 }, time.Second, 10*time.Millisecond)
}

func TestTransition_UnknownReservationIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ReservationService.ConfirmReservation(env.db, "8d2f5c7e-6a0b-4e8e-9d55-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)
}

func TestCancelReservation_TerminalStatesConflict(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	customer := testutil.CreateUser(t, env.db, "customer")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")
	rs := env.svc.ReservationService

	// completed
	res, err := rs.CreateReservation(env.db, customer.ID, reservationRequest(restaurant.ID))
	require.NoError(t, err)
	_, err = rs.ConfirmReservation(env.db, res.ID)
	require.NoError(t, err)
	_, err = rs.CompleteReservation(env.db, res.ID)
	require.NoError(t, err)
	_, err = rs.CancelReservation(env.db, customer.ID, res.ID)
	assert.ErrorIs(t, err, apperrors.ErrReservationConflict)

	// already cancelled
	res, err = rs.CreateReservation(env.db, customer.ID, reservationRequest(restaurant.ID))
	require.NoError(t, err)
	cancelled, err := rs.CancelReservation(env.db, customer.ID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ReservationCancelled), cancelled.State)
	_, err = rs.CancelReservation(env.db, customer.ID, res.ID)
	assert.ErrorIs(t, err, apperrors.ErrReservationConflict)
}

func TestCancelReservation_StrangerForbidden(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	customer := testutil.CreateUser(t, env.db, "customer")
	stranger := testutil.CreateUser(t, env.db, "stranger")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")

	res, err := env.svc.ReservationService.CreateReservation(env.db, customer.ID, reservationRequest(restaurant.ID))
	require.NoError(t, err)

	_, err = env.svc.ReservationService.CancelReservation(env.db, stranger.ID, res.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotStaff)

	cancelled, err := env.svc.ReservationService.CancelReservation(env.db, owner.ID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ReservationCancelled), cancelled.State)
}

func TestGetReservation_Visibility(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	customer := testutil.CreateUser(t, env.db, "customer")
	stranger := testutil.CreateUser(t, env.db, "stranger")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")

	res, err := env.svc.ReservationService.CreateReservation(env.db, customer.ID, reservationRequest(restaurant.ID))
	require.NoError(t, err)

	_, err = env.svc.ReservationService.GetReservation(env.db, customer.ID, res.ID)
	assert.NoError(t, err)
	_, err = env.svc.ReservationService.GetReservation(env.db, owner.ID, res.ID)
	assert.NoError(t, err)
	_, err = env.svc.ReservationService.GetReservation(env.db, stranger.ID, res.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestSweepStale(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	customer := testutil.CreateUser(t, env.db, "customer")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")
	rs := env.svc.ReservationService

	stale, err := rs.CreateReservation(env.db, customer.ID, reservationRequest(restaurant.ID))
	require.NoError(t, err)
	done, err := rs.CreateReservation(env.db, customer.ID, reservationRequest(restaurant.ID))
	require.NoError(t, err)
	_, err = rs.ConfirmReservation(env.db, done.ID)
	require.NoError(t, err)
	upcoming, err := rs.CreateReservation(env.db, customer.ID, reservationRequest(restaurant.ID))
	require.NoError(t, err)

	// both reservations are three days out; sweep a week later
	result, err := rs.SweepStale(env.db, time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Cancelled, "both pending requests expired")
	assert.Equal(t, 1, result.Completed)

	got, err := rs.GetReservation(env.db, customer.ID, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ReservationCancelled), got.State)

	got, err = rs.GetReservation(env.db, customer.ID, done.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ReservationCompleted), got.State)

	got, err = rs.GetReservation(env.db, customer.ID, upcoming.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ReservationCancelled), got.State)
}

func TestReservationListing(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	customer := testutil.CreateUser(t, env.db, "customer")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")
	rs := env.svc.ReservationService

	for i := 0; i < 3; i++ {
		_, err := rs.CreateReservation(env.db, customer.ID, reservationRequest(restaurant.ID))
		require.NoError(t, err)
	}

	mine, err := rs.GetMyReservations(env.db, customer.ID, &dto.ReservationListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), mine.Total)

	pending, err := rs.GetRestaurantReservations(env.db, restaurant.ID, &dto.ReservationListQuery{State: "pending"})
	require.NoError(t, err)
	assert.Len(t, pending.Items, 3)

	confirmed, err := rs.GetRestaurantReservations(env.db, restaurant.ID, &dto.ReservationListQuery{State: "confirmed"})
	require.NoError(t, err)
	assert.Empty(t, confirmed.Items)
}
