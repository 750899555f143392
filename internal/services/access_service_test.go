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

const missingID = "8d2f5c7e-6a0b-4e8e-9d55-000000000000"

func TestAuthorize_ResolvesEveryResourceKind(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	customer := testutil.CreateUser(t, env.db, "customer")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")

	res, err := env.svc.ReservationService.CreateReservation(env.db, customer.ID, reservationRequest(restaurant.ID))
	require.NoError(t, err)
	post, err := env.svc.PostService.CreatePost(env.db, customer.ID, &dto.CreatePostRequest{RestaurantID: restaurant.ID, Content: "hi"})
	require.NoError(t, err)

	cases := []struct {
		kind ResourceKind
		id   string
	}{
		{ResourceRestaurant, restaurant.ID},
		{ResourceReservation, res.ID},
		{ResourcePost, post.ID},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			access, err := env.svc.AccessService.Authorize(env.db, owner.ID, tc.kind, tc.id)
			require.NoError(t, err)
			assert.Equal(t, restaurant.ID, access.RestaurantID)
			assert.Equal(t, models.BusinessRoleOwner, access.Role)
			assert.Equal(t, tc.id, access.ResourceID)

			_, err = env.svc.AccessService.Authorize(env.db, customer.ID, tc.kind, tc.id)
			assert.ErrorIs(t, err, apperrors.ErrNotStaff)
		})
	}
}

func TestAuthorize_UnknownResourceIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")

	_, err := env.svc.AccessService.Authorize(env.db, owner.ID, ResourceRestaurant, missingID)
	assert.ErrorIs(t, err, apperrors.ErrRestaurantNotFound)
	_, err = env.svc.AccessService.Authorize(env.db, owner.ID, ResourcePost, missingID)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	_, err = env.svc.AccessService.Authorize(env.db, owner.ID, ResourceReservation, missingID)
	assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)
}

func TestAuthorize_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	operator := testutil.CreateUser(t, env.db, "operator")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")
	testutil.AddStaff(t, env.db, operator, restaurant, models.BusinessRoleOperator)

	_, err := env.svc.AccessService.Authorize(env.db, operator.ID, ResourceRestaurant, restaurant.ID, models.BusinessRoleOwner)
	assert.ErrorIs(t, err, apperrors.ErrOwnerOnly)

	access, err := env.svc.AccessService.Authorize(env.db, operator.ID, ResourceRestaurant, restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BusinessRoleOperator, access.Role)
}
