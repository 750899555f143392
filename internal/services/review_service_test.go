package services

import (
	"testing"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services/dto"
	"restaurant_backend/internal/testutil"
	"restaurant_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview_AggregateIsRoundedMean(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")

	var last *dto.ReviewMutationResponse
	for i, rating := range []int{5, 5, 4} {
		reviewer := testutil.CreateUser(t, env.db, "reviewer")
		resp, err := env.svc.ReviewService.CreateReview(env.db, reviewer.ID, restaurant.ID, &dto.CreateReviewRequest{Rating: rating})
		require.NoError(t, err, "review %d", i)
		last = resp
	}

	assert.Equal(t, 4.7, last.Rating.AverageRating)
	assert.Equal(t, 3, last.Rating.NumReviews)

	var stored models.Restaurant
	require.NoError(t, env.db.First(&stored, "id = ?", restaurant.ID).Error)
	assert.Equal(t, 4.7, stored.AverageRating)
	assert.Equal(t, 3, stored.NumReviews)
}

func TestCreateReview_SecondActiveReviewConflicts(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	reviewer := testutil.CreateUser(t, env.db, "reviewer")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")

	_, err := env.svc.ReviewService.CreateReview(env.db, reviewer.ID, restaurant.ID, &dto.CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	_, err = env.svc.ReviewService.CreateReview(env.db, reviewer.ID, restaurant.ID, &dto.CreateReviewRequest{Rating: 2})
	require.ErrorIs(t, err, apperrors.ErrReviewAlreadyExists)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 409, appErr.HTTPCode)

	var stored models.Restaurant
	require.NoError(t, env.db.First(&stored, "id = ?", restaurant.ID).Error)
	assert.Equal(t, 1, stored.NumReviews, "failed write leaves the aggregate untouched")
}

func TestDeleteReview_OnlyReviewResetsAggregate(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	reviewer := testutil.CreateUser(t, env.db, "reviewer")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")

	created, err := env.svc.ReviewService.CreateReview(env.db, reviewer.ID, restaurant.ID, &dto.CreateReviewRequest{Rating: 3})
	require.NoError(t, err)

	resp, err := env.svc.ReviewService.DeleteReview(env.db, reviewer.ID, false, restaurant.ID, created.Review.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Rating.AverageRating)
	assert.Equal(t, 0, resp.Rating.NumReviews)

	var stored models.Restaurant
	require.NoError(t, env.db.First(&stored, "id = ?", restaurant.ID).Error)
	assert.Equal(t, 0.0, stored.AverageRating)
	assert.Equal(t, 0, stored.NumReviews)

	// a deleted review no longer blocks a new one
	_, err = env.svc.ReviewService.CreateReview(env.db, reviewer.ID, restaurant.ID, &dto.CreateReviewRequest{Rating: 5})
	assert.NoError(t, err)
}

func TestDeleteReview_Permissions(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	reviewer := testutil.CreateUser(t, env.db, "reviewer")
	other := testutil.CreateUser(t, env.db, "other")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")

	created, err := env.svc.ReviewService.CreateReview(env.db, reviewer.ID, restaurant.ID, &dto.CreateReviewRequest{Rating: 3})
	require.NoError(t, err)

	_, err = env.svc.ReviewService.DeleteReview(env.db, other.ID, false, restaurant.ID, created.Review.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	_, err = env.svc.ReviewService.DeleteReview(env.db, other.ID, true, restaurant.ID, created.Review.ID)
	assert.NoError(t, err, "admins may delete any review")

	_, err = env.svc.ReviewService.DeleteReview(env.db, reviewer.ID, false, restaurant.ID, created.Review.ID)
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
}

func TestCreateReview_NotifiesOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	reviewer := testutil.CreateUser(t, env.db, "reviewer")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")

	_, err := env.svc.ReviewService.CreateReview(env.db, reviewer.ID, restaurant.ID, &dto.CreateReviewRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	env.notifier.Wait()

	list, err := env.svc.NotificationService.GetUserNotifications(env.db, owner.ID, &dto.NotificationListQuery{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, string(models.NotificationNewReview), list.Items[0].Type)
}
