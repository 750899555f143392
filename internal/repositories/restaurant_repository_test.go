package repositories

import (
	"testing"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_QueryWildcardsMatchLiterally(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, "owner")
	repo := NewRestaurantRepository()

	for _, name := range []string{"100% Vegan", "1000 Vegan", "Bar_Tabac", "Bar Tabac"} {
		require.NoError(t, db.Create(&models.Restaurant{Name: name, Slug: name, City: "Lyon", OwnerID: owner.ID}).Error)
	}

	names := func(filter RestaurantFilter) []string {
		restaurants, _, err := repo.List(db, filter)
		require.NoError(t, err)
		out := make([]string, 0, len(restaurants))
		for _, r := range restaurants {
			out = append(out, r.Name)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"100% Vegan"}, names(RestaurantFilter{Query: "100%"}))
	assert.ElementsMatch(t, []string{"Bar_Tabac"}, names(RestaurantFilter{Query: "bar_"}))
	assert.Empty(t, names(RestaurantFilter{Query: "%"}))
	assert.Empty(t, names(RestaurantFilter{Cuisine: "_"}))
	assert.Len(t, names(RestaurantFilter{Query: "vegan"}), 2)
}

func TestMalformedIDsNeverReachTheStore(t *testing.T) {
	db := testutil.NewTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// any statement that reaches the store now fails with "database is closed"
	require.NoError(t, sqlDB.Close())

	const bad = "abc"
	const good = "5a1d7f4e-3b7c-4f43-9a55-8a0f1f7b2c11"

	_, err = NewRestaurantRepository().FindByID(db, bad)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
	_, err = NewRestaurantRepository().FindByID(db, good)
	assert.NotErrorIs(t, err, ErrRestaurantNotFound)

	assert.ErrorIs(t, NewRestaurantRepository().Delete(db, bad), ErrRestaurantNotFound)
	_, err = NewRestaurantRepository().FindMenuItem(db, good, bad)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
	assert.ErrorIs(t, NewRestaurantRepository().DeleteMenuItem(db, bad, good), ErrMenuItemNotFound)

	_, err = NewReservationRepository().FindByID(db, bad)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.ErrorIs(t, NewReservationRepository().Transition(db, bad, models.ReservationConfirmed), ErrReservationNotFound)

	_, err = NewPostRepository().FindByID(db, bad)
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.ErrorIs(t, NewPostRepository().UpdateStateFromPending(db, bad, models.PostAccepted), ErrPostNotFound)
	assert.ErrorIs(t, NewPostRepository().Delete(db, bad), ErrPostNotFound)

	_, err = NewReviewRepository().FindByID(db, bad)
	assert.ErrorIs(t, err, ErrReviewNotFound)
	assert.ErrorIs(t, NewReviewRepository().Delete(db, bad), ErrReviewNotFound)

	assert.ErrorIs(t, NewNotificationRepository().MarkAsRead(db, bad, good), ErrNotificationNotFound)
	_, err = NewUserRepository().FindByID(db, bad)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = NewUploadRepository().FindByID(db, bad)
	assert.ErrorIs(t, err, ErrUploadNotFound)
	assert.ErrorIs(t, NewBusinessUserRepository().Delete(db, bad, good), ErrBusinessUserNotFound)
}
