package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant_backend/internal/cache"
	"restaurant_backend/internal/logger"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/services/dto"
	"restaurant_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type RestaurantService interface {
	// Restaurants
	CreateRestaurant(db *gorm.DB, userID string, req *dto.CreateRestaurantRequest) (*dto.RestaurantResponse, error)
	GetRestaurant(db *gorm.DB, id string) (*dto.RestaurantResponse, error)
	GetRestaurantBySlug(db *gorm.DB, slug string) (*dto.RestaurantResponse, error)
	ListRestaurants(db *gorm.DB, query *dto.RestaurantListQuery) (*dto.ListResponse[dto.RestaurantResponse], error)
	UpdateRestaurant(db *gorm.DB, id string, req *dto.UpdateRestaurantRequest) (*dto.RestaurantResponse, error)
	DeleteRestaurant(db *gorm.DB, id string) error
	InvalidateRestaurant(db *gorm.DB, id string)

	// Menu
	GetMenu(db *gorm.DB, restaurantID string, includeUnavailable bool) ([]dto.MenuItemResponse, error)
	CreateMenuItem(db *gorm.DB, restaurantID string, req *dto.MenuItemRequest) (*dto.MenuItemResponse, error)
	UpdateMenuItem(db *gorm.DB, restaurantID, itemID string, req *dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error)
	DeleteMenuItem(db *gorm.DB, restaurantID, itemID string) error

	// Staff
	ListStaff(db *gorm.DB, restaurantID string) ([]dto.StaffResponse, error)
	AddOperator(db *gorm.DB, restaurantID string, req *dto.AddOperatorRequest) (*dto.StaffResponse, error)
	RemoveOperator(db *gorm.DB, restaurantID, userID string) error
	ListStaffRestaurants(db *gorm.DB, userID string) ([]dto.StaffRestaurantResponse, error)

	// Follows
	Follow(db *gorm.DB, userID, restaurantID string) (*dto.FollowResponse, error)
	Unfollow(db *gorm.DB, userID, restaurantID string) (*dto.FollowResponse, error)
	ListFollowed(db *gorm.DB, userID string) ([]dto.RestaurantResponse, error)
}

type restaurantService struct {
	restaurantRepo   repositories.RestaurantRepository
	businessUserRepo repositories.BusinessUserRepository
	followRepo       repositories.FollowRepository
	userRepo         repositories.UserRepository
	cache            cache.Cache
	cacheTTL         time.Duration
	notifier         NotificationEmitter
}

func NewRestaurantService(
	restaurantRepo repositories.RestaurantRepository,
	businessUserRepo repositories.BusinessUserRepository,
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	cacheStore cache.Cache,
	cacheTTL time.Duration,
	notifier NotificationEmitter,
) RestaurantService {
	if cacheStore == nil {
		cacheStore = cache.NewNoop()
	}
	return &restaurantService{
		restaurantRepo:   restaurantRepo,
		businessUserRepo: businessUserRepo,
		followRepo:       followRepo,
		userRepo:         userRepo,
		cache:            cacheStore,
		cacheTTL:         cacheTTL,
		notifier:         emitterOrNoop(notifier),
	}
}

// ---------------- Restaurants ----------------

func (s *restaurantService) CreateRestaurant(db *gorm.DB, userID string, req *dto.CreateRestaurantRequest) (*dto.RestaurantResponse, error) {
	restaurant := &models.Restaurant{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Address:      req.Address,
		City:         strings.TrimSpace(req.City),
		Phone:        req.Phone,
		Cuisines:     normalizeCuisines(req.Cuisines),
		PriceRange:   req.PriceRange,
		OpeningHours: req.OpeningHours,
		ImageURL:     req.ImageURL,
		OwnerID:      userID,
	}
	if restaurant.PriceRange == 0 {
		restaurant.PriceRange = 2
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		restaurantSlug, err := s.uniqueSlug(tx, restaurant.Name)
		if err != nil {
			return err
		}
		restaurant.Slug = restaurantSlug

		if err := s.restaurantRepo.Create(tx, restaurant); err != nil {
			return err
		}
		return s.businessUserRepo.Create(tx, &models.BusinessUser{
			UserID:       userID,
			RestaurantID: restaurant.ID,
			Role:         models.BusinessRoleOwner,
		})
	})
	if err != nil {
		return nil, translateError(err)
	}

	logger.CtxInfo(contextOf(db), "Restaurant created", "restaurant_id", restaurant.ID, "owner_id", userID)
	return toRestaurantResponse(restaurant), nil
}

func (s *restaurantService) uniqueSlug(db *gorm.DB, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "restaurant"
	}

	candidate := base
	for i := 2; i <= 20; i++ {
		exists, err := s.restaurantRepo.SlugExists(db, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

func (s *restaurantService) GetRestaurant(db *gorm.DB, id string) (*dto.RestaurantResponse, error) {
	ctx := contextOf(db)

	var cached dto.RestaurantResponse
	if err := s.cache.Get(ctx, cache.RestaurantKey(id), &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.CtxWarn(ctx, "Restaurant cache read failed", "restaurant_id", id, "error", err)
	}

	restaurant, err := s.restaurantRepo.FindByID(db, id)
	if err != nil {
		return nil, translateError(err)
	}

	resp := toRestaurantResponse(restaurant)
	s.store(db, cache.RestaurantKey(id), resp)
	return resp, nil
}

func (s *restaurantService) GetRestaurantBySlug(db *gorm.DB, restaurantSlug string) (*dto.RestaurantResponse, error) {
	ctx := contextOf(db)

	var cached dto.RestaurantResponse
	if err := s.cache.Get(ctx, cache.RestaurantSlugKey(restaurantSlug), &cached); err == nil {
		return &cached, nil
	}

	restaurant, err := s.restaurantRepo.FindBySlug(db, restaurantSlug)
	if err != nil {
		return nil, translateError(err)
	}

	resp := toRestaurantResponse(restaurant)
	s.store(db, cache.RestaurantSlugKey(restaurantSlug), resp)
	return resp, nil
}

func (s *restaurantService) store(db *gorm.DB, key string, resp *dto.RestaurantResponse) {
	if err := s.cache.Set(contextOf(db), key, resp, s.cacheTTL); err != nil {
		logger.CtxWarn(contextOf(db), "Restaurant cache write failed", "key", key, "error", err)
	}
}

func (s *restaurantService) ListRestaurants(db *gorm.DB, query *dto.RestaurantListQuery) (*dto.ListResponse[dto.RestaurantResponse], error) {
	query.Normalize()

	restaurants, total, err := s.restaurantRepo.List(db, repositories.RestaurantFilter{
		City:      query.City,
		Cuisine:   query.Cuisine,
		Query:     query.Q,
		MinRating: query.MinRating,
		SortBy:    query.Sort,
		Page:      query.Page,
		PageSize:  query.PageSize,
	})
	if err != nil {
		return nil, err
	}

	items := mapSlice(restaurants, func(r *models.Restaurant) dto.RestaurantResponse { return *toRestaurantResponse(r) })
	return dto.NewListResponse(items, total, query.Page, query.PageSize), nil
}

func (s *restaurantService) UpdateRestaurant(db *gorm.DB, id string, req *dto.UpdateRestaurantRequest) (*dto.RestaurantResponse, error) {
	restaurant, err := s.restaurantRepo.FindByID(db, id)
	if err != nil {
		return nil, translateError(err)
	}

	if req.Name != nil {
		restaurant.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		restaurant.Description = *req.Description
	}
	if req.Address != nil {
		restaurant.Address = *req.Address
	}
	if req.City != nil {
		restaurant.City = strings.TrimSpace(*req.City)
	}
	if req.Phone != nil {
		restaurant.Phone = *req.Phone
	}
	if req.Cuisines != nil {
		restaurant.Cuisines = normalizeCuisines(req.Cuisines)
	}
	if req.PriceRange != nil {
		restaurant.PriceRange = *req.PriceRange
	}
	if req.OpeningHours != nil {
		restaurant.OpeningHours = *req.OpeningHours
	}
	if req.ImageURL != nil {
		restaurant.ImageURL = *req.ImageURL
	}

	if err := s.restaurantRepo.Update(db, restaurant); err != nil {
		return nil, translateError(err)
	}

	s.evict(db, restaurant)
	return toRestaurantResponse(restaurant), nil
}

func (s *restaurantService) DeleteRestaurant(db *gorm.DB, id string) error {
	restaurant, err := s.restaurantRepo.FindByID(db, id)
	if err != nil {
		return translateError(err)
	}
	if err := s.restaurantRepo.Delete(db, id); err != nil {
		return translateError(err)
	}
	s.evict(db, restaurant)
	logger.CtxInfo(contextOf(db), "Restaurant deleted", "restaurant_id", id)
	return nil
}

// InvalidateRestaurant drops cached copies after a write elsewhere (ratings).
func (s *restaurantService) InvalidateRestaurant(db *gorm.DB, id string) {
	restaurant, err := s.restaurantRepo.FindByID(db, id)
	if err != nil {
		_ = s.cache.Delete(contextOf(db), cache.RestaurantKey(id))
		return
	}
	s.evict(db, restaurant)
}

func (s *restaurantService) evict(db *gorm.DB, restaurant *models.Restaurant) {
	keys := []string{cache.RestaurantKey(restaurant.ID), cache.RestaurantSlugKey(restaurant.Slug)}
	if err := s.cache.Delete(contextOf(db), keys...); err != nil {
		logger.CtxWarn(contextOf(db), "Restaurant cache eviction failed", "restaurant_id", restaurant.ID, "error", err)
	}
}

func normalizeCuisines(cuisines []string) []string {
	out := make([]string, 0, len(cuisines))
	seen := make(map[string]struct{}, len(cuisines))
	for _, c := range cuisines {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// ---------------- Menu ----------------

func (s *restaurantService) GetMenu(db *gorm.DB, restaurantID string, includeUnavailable bool) ([]dto.MenuItemResponse, error) {
	if _, err := s.restaurantRepo.FindByID(db, restaurantID); err != nil {
		return nil, translateError(err)
	}
	items, err := s.restaurantRepo.ListMenu(db, restaurantID, !includeUnavailable)
	if err != nil {
		return nil, err
	}
	return mapSlice(items, toMenuItemResponse), nil
}

func (s *restaurantService) CreateMenuItem(db *gorm.DB, restaurantID string, req *dto.MenuItemRequest) (*dto.MenuItemResponse, error) {
	item := &models.MenuItem{
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		Available:    true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.restaurantRepo.CreateMenuItem(db, item); err != nil {
		return nil, translateError(err)
	}
	resp := toMenuItemResponse(item)
	return &resp, nil
}

func (s *restaurantService) UpdateMenuItem(db *gorm.DB, restaurantID, itemID string, req *dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item, err := s.restaurantRepo.FindMenuItem(db, restaurantID, itemID)
	if err != nil {
		return nil, translateError(err)
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.restaurantRepo.UpdateMenuItem(db, item); err != nil {
		return nil, translateError(err)
	}
	resp := toMenuItemResponse(item)
	return &resp, nil
}

func (s *restaurantService) DeleteMenuItem(db *gorm.DB, restaurantID, itemID string) error {
	return translateError(s.restaurantRepo.DeleteMenuItem(db, restaurantID, itemID))
}

// ---------------- Staff ----------------

func (s *restaurantService) ListStaff(db *gorm.DB, restaurantID string) ([]dto.StaffResponse, error) {
	staff, err := s.businessUserRepo.ListByRestaurant(db, restaurantID)
	if err != nil {
		return nil, err
	}
	return mapSlice(staff, toStaffResponse), nil
}

func (s *restaurantService) AddOperator(db *gorm.DB, restaurantID string, req *dto.AddOperatorRequest) (*dto.StaffResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		return nil, translateError(err)
	}

	bu := &models.BusinessUser{
		UserID:       user.ID,
		RestaurantID: restaurantID,
		Role:         models.BusinessRoleOperator,
		User:         user,
	}
	if err := s.businessUserRepo.Create(db, bu); err != nil {
		return nil, translateError(err)
	}

	if restaurant, err := s.restaurantRepo.FindByID(db, restaurantID); err == nil {
		s.notifier.Emit([]string{user.ID}, models.NotificationOperatorAdded,
			"You are now an operator",
			fmt.Sprintf("You can now manage %s.", restaurant.Name),
			map[string]string{"restaurant_id": restaurantID})
	}

	resp := toStaffResponse(bu)
	return &resp, nil
}

func (s *restaurantService) RemoveOperator(db *gorm.DB, restaurantID, userID string) error {
	bu, err := s.businessUserRepo.FindRole(db, userID, restaurantID)
	if err != nil {
		if errors.Is(err, repositories.ErrBusinessUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return err
	}
	if bu.Role == models.BusinessRoleOwner {
		return apperrors.ErrCannotRemoveOwner
	}
	return translateError(s.businessUserRepo.Delete(db, userID, restaurantID))
}

func (s *restaurantService) ListStaffRestaurants(db *gorm.DB, userID string) ([]dto.StaffRestaurantResponse, error) {
	roles, err := s.businessUserRepo.ListByUser(db, userID)
	if err != nil {
		return nil, err
	}

	roleByRestaurant := make(map[string]models.BusinessRole, len(roles))
	ids := make([]string, 0, len(roles))
	for _, r := range roles {
		roleByRestaurant[r.RestaurantID] = r.Role
		ids = append(ids, r.RestaurantID)
	}

	restaurants, err := s.restaurantRepo.FindByIDs(db, ids)
	if err != nil {
		return nil, err
	}

	return mapSlice(restaurants, func(r *models.Restaurant) dto.StaffRestaurantResponse {
		return dto.StaffRestaurantResponse{
			RestaurantResponse: *toRestaurantResponse(r),
			Role:               string(roleByRestaurant[r.ID]),
		}
	}), nil
}

func toStaffResponse(bu *models.BusinessUser) dto.StaffResponse {
	resp := dto.StaffResponse{
		UserID: bu.UserID,
		Role:   string(bu.Role),
		Since:  bu.CreatedAt,
	}
	if bu.User != nil {
		resp.Name = bu.User.Name
		resp.Email = bu.User.Email
	}
	return resp
}

// ---------------- Follows ----------------

func (s *restaurantService) Follow(db *gorm.DB, userID, restaurantID string) (*dto.FollowResponse, error) {
	if _, err := s.restaurantRepo.FindByID(db, restaurantID); err != nil {
		return nil, translateError(err)
	}
	if err := s.followRepo.Follow(db, userID, restaurantID); err != nil {
		return nil, err
	}
	return s.followState(db, userID, restaurantID)
}

func (s *restaurantService) Unfollow(db *gorm.DB, userID, restaurantID string) (*dto.FollowResponse, error) {
	if _, err := s.restaurantRepo.FindByID(db, restaurantID); err != nil {
		return nil, translateError(err)
	}
	if err := s.followRepo.Unfollow(db, userID, restaurantID); err != nil {
		return nil, err
	}
	return s.followState(db, userID, restaurantID)
}

func (s *restaurantService) followState(db *gorm.DB, userID, restaurantID string) (*dto.FollowResponse, error) {
	following, err := s.followRepo.IsFollowing(db, userID, restaurantID)
	if err != nil {
		return nil, err
	}
	followers, err := s.followRepo.CountFollowers(db, restaurantID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowResponse{RestaurantID: restaurantID, Following: following, Followers: followers}, nil
}

func (s *restaurantService) ListFollowed(db *gorm.DB, userID string) ([]dto.RestaurantResponse, error) {
	ids, err := s.followRepo.RestaurantIDs(db, userID)
	if err != nil {
		return nil, err
	}
	restaurants, err := s.restaurantRepo.FindByIDs(db, ids)
	if err != nil {
		return nil, err
	}
	return mapSlice(restaurants, func(r *models.Restaurant) dto.RestaurantResponse { return *toRestaurantResponse(r) }), nil
}
