package services

import (
	"errors"
	"fmt"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ResourceKind tags the identifier handed to the role gate.
type ResourceKind string

const (
	ResourceRestaurant  ResourceKind = "restaurant"
	ResourcePost        ResourceKind = "post"
	ResourceReservation ResourceKind = "reservation"
)

// Access is what the gate resolved for the current request.
type Access struct {
	RestaurantID string
	ResourceKind ResourceKind
	ResourceID   string
	Role         models.BusinessRole
}

type AccessService interface {
	// ResolveRestaurant returns the id of the restaurant owning the resource.
	ResolveRestaurant(db *gorm.DB, kind ResourceKind, id string) (string, error)
	// Authorize resolves the restaurant and checks the caller holds one of roles.
	// No roles means any staff role.
	Authorize(db *gorm.DB, userID string, kind ResourceKind, id string, roles ...models.BusinessRole) (*Access, error)
	IsStaff(db *gorm.DB, userID, restaurantID string) (bool, error)
}

type accessService struct {
	restaurantRepo   repositories.RestaurantRepository
	postRepo         repositories.PostRepository
	reservationRepo  repositories.ReservationRepository
	businessUserRepo repositories.BusinessUserRepository
}

func NewAccessService(
	restaurantRepo repositories.RestaurantRepository,
	postRepo repositories.PostRepository,
	reservationRepo repositories.ReservationRepository,
	businessUserRepo repositories.BusinessUserRepository,
) AccessService {
	return &accessService{
		restaurantRepo:   restaurantRepo,
		postRepo:         postRepo,
		reservationRepo:  reservationRepo,
		businessUserRepo: businessUserRepo,
	}
}

func (s *accessService) ResolveRestaurant(db *gorm.DB, kind ResourceKind, id string) (string, error) {
	var restaurantID string

	switch kind {
	case ResourceRestaurant:
		restaurantID = id
	case ResourcePost:
		post, err := s.postRepo.FindByID(db, id)
		if err != nil {
			return "", translateError(err)
		}
		restaurantID = post.AuthorRestaurantID
	case ResourceReservation:
		reservation, err := s.reservationRepo.FindByID(db, id)
		if err != nil {
			return "", translateError(err)
		}
		restaurantID = reservation.RestaurantID
	default:
		return "", apperrors.InternalError(fmt.Errorf("unknown resource kind %q", kind))
	}

	if _, err := s.restaurantRepo.FindByID(db, restaurantID); err != nil {
		return "", translateError(err)
	}
	return restaurantID, nil
}

func (s *accessService) Authorize(db *gorm.DB, userID string, kind ResourceKind, id string, roles ...models.BusinessRole) (*Access, error) {
	restaurantID, err := s.ResolveRestaurant(db, kind, id)
	if err != nil {
		return nil, err
	}

	if len(roles) == 0 {
		roles = models.StaffRoles
	}

	bu, err := s.businessUserRepo.FindRole(db, userID, restaurantID)
	if err != nil {
		if errors.Is(err, repositories.ErrBusinessUserNotFound) {
			return nil, apperrors.ErrNotStaff
		}
		return nil, err
	}

	for _, role := range roles {
		if bu.Role == role {
			return &Access{
				RestaurantID: restaurantID,
				ResourceKind: kind,
				ResourceID:   id,
				Role:         bu.Role,
			}, nil
		}
	}

	if len(roles) == 1 && roles[0] == models.BusinessRoleOwner {
		return nil, apperrors.ErrOwnerOnly
	}
	return nil, apperrors.ErrInsufficientPermissions
}

func (s *accessService) IsStaff(db *gorm.DB, userID, restaurantID string) (bool, error) {
	bu, err := s.businessUserRepo.FindRole(db, userID, restaurantID)
	if err != nil {
		if errors.Is(err, repositories.ErrBusinessUserNotFound) {
			return false, nil
		}
		return false, err
	}
	for _, role := range models.StaffRoles {
		if bu.Role == role {
			return true, nil
		}
	}
	return false, nil
}
