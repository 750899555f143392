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

func TestCreateRestaurant_CreatorBecomesOwner(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "chef")
	rs := env.svc.RestaurantService

	first, err := rs.CreateRestaurant(env.db, user.ID, &dto.CreateRestaurantRequest{
		Name: "Chez Léon", Address: "1 rue Mercière", City: "Lyon", Cuisines: []string{"French", " french ", "Wine"},
	})
	require.NoError(t, err)
	assert.Equal(t, "chez-leon", first.Slug)
	assert.Equal(t, []string{"french", "wine"}, first.Cuisines)
	assert.Equal(t, 2, first.PriceRange)

	second, err := rs.CreateRestaurant(env.db, user.ID, &dto.CreateRestaurantRequest{Name: "Chez Leon", Address: "2 quai", City: "Lyon"})
	require.NoError(t, err)
	assert.Equal(t, "chez-leon-2", second.Slug)

	mine, err := rs.ListStaffRestaurants(env.db, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, string(models.BusinessRoleOwner), mine[0].Role)

	bySlug, err := rs.GetRestaurantBySlug(env.db, "chez-leon-2")
	require.NoError(t, err)
	assert.Equal(t, second.ID, bySlug.ID)
}

func TestListRestaurants_Filters(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "chef")
	rs := env.svc.RestaurantService

	for _, req := range []dto.CreateRestaurantRequest{
		{Name: "Sushi Bar", Address: "a", City: "Paris", Cuisines: []string{"japanese"}},
		{Name: "Trattoria", Address: "b", City: "Paris", Cuisines: []string{"italian"}},
		{Name: "Bouchon", Address: "c", City: "Lyon", Cuisines: []string{"french"}},
	} {
		req := req
		_, err := rs.CreateRestaurant(env.db, user.ID, &req)
		require.NoError(t, err)
	}

	paris, err := rs.ListRestaurants(env.db, &dto.RestaurantListQuery{City: "paris"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), paris.Total)

	italian, err := rs.ListRestaurants(env.db, &dto.RestaurantListQuery{Cuisine: "Italian"})
	require.NoError(t, err)
	require.Len(t, italian.Items, 1)
	assert.Equal(t, "Trattoria", italian.Items[0].Name)

	named, err := rs.ListRestaurants(env.db, &dto.RestaurantListQuery{Q: "bouch"})
	require.NoError(t, err)
	assert.Len(t, named.Items, 1)
}

func TestOperators_OwnerManagesStaff(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	operator := testutil.CreateUser(t, env.db, "operator")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")
	rs := env.svc.RestaurantService

	added, err := rs.AddOperator(env.db, restaurant.ID, &dto.AddOperatorRequest{Email: operator.Email})
	require.NoError(t, err)
	assert.Equal(t, string(models.BusinessRoleOperator), added.Role)

	_, err = rs.AddOperator(env.db, restaurant.ID, &dto.AddOperatorRequest{Email: operator.Email})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyStaff)

	_, err = rs.AddOperator(env.db, restaurant.ID, &dto.AddOperatorRequest{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	staff, err := rs.ListStaff(env.db, restaurant.ID)
	require.NoError(t, err)
	assert.Len(t, staff, 2)

	assert.ErrorIs(t, rs.RemoveOperator(env.db, restaurant.ID, owner.ID), apperrors.ErrCannotRemoveOwner)
	assert.NoError(t, rs.RemoveOperator(env.db, restaurant.ID, operator.ID))

	env.notifier.Wait()
	count, err := env.svc.NotificationService.GetUnreadCount(env.db, operator.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Count)
}

func TestMenuAndFollow(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	fan := testutil.CreateUser(t, env.db, "fan")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "bistro")
	rs := env.svc.RestaurantService

	hidden := false
	_, err := rs.CreateMenuItem(env.db, restaurant.ID, &dto.MenuItemRequest{Name: "Quenelle", Price: 18.5, Category: "mains"})
	require.NoError(t, err)
	item, err := rs.CreateMenuItem(env.db, restaurant.ID, &dto.MenuItemRequest{Name: "Special", Price: 30, Available: &hidden})
	require.NoError(t, err)

	public, err := rs.GetMenu(env.db, restaurant.ID, false)
	require.NoError(t, err)
	assert.Len(t, public, 1)

	price := 25.0
	updated, err := rs.UpdateMenuItem(env.db, restaurant.ID, item.ID, &dto.UpdateMenuItemRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 25.0, updated.Price)

	require.NoError(t, rs.DeleteMenuItem(env.db, restaurant.ID, item.ID))
	assert.ErrorIs(t, rs.DeleteMenuItem(env.db, restaurant.ID, item.ID), apperrors.ErrMenuItemNotFound)

	state, err := rs.Follow(env.db, fan.ID, restaurant.ID)
	require.NoError(t, err)
	assert.True(t, state.Following)
	state, err = rs.Follow(env.db, fan.ID, restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), state.Followers)

	followed, err := rs.ListFollowed(env.db, fan.ID)
	require.NoError(t, err)
	assert.Len(t, followed, 1)

	state, err = rs.Unfollow(env.db, fan.ID, restaurant.ID)
	require.NoError(t, err)
	assert.False(t, state.Following)
}

func TestCreateMenuItem_StoresUnavailableFlag(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner")
	restaurant := testutil.CreateRestaurant(t, env.db, owner, "brasserie")
	rs := env.svc.RestaurantService

	hidden := false
	created, err := rs.CreateMenuItem(env.db, restaurant.ID, &dto.MenuItemRequest{Name: "Off menu", Price: 12, Available: &hidden})
	require.NoError(t, err)
	assert.False(t, created.Available)

	var stored models.MenuItem
	require.NoError(t, env.db.First(&stored, "id = ?", created.ID).Error)
	assert.False(t, stored.Available)

	defaulted, err := rs.CreateMenuItem(env.db, restaurant.ID, &dto.MenuItemRequest{Name: "Daily", Price: 9})
	require.NoError(t, err)
	assert.True(t, defaulted.Available)

	public, err := rs.GetMenu(env.db, restaurant.ID, false)
	require.NoError(t, err)
	if assert.Len(t, public, 1) {
		assert.Equal(t, "Daily", public[0].Name)
	}

	all, err := rs.GetMenu(env.db, restaurant.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
