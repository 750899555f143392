package services

import (
	"errors"

	"restaurant_backend/internal/repositories"
	"restaurant_backend/pkg/apperrors"
)

// translateError maps repository sentinels onto API errors.
// Anything unknown is returned as is and ends up as a 500 (or a
// duplicate key 400) in apperrors.Normalize.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrEmailAlreadyExists
	case errors.Is(err, repositories.ErrRestaurantNotFound):
		return apperrors.ErrRestaurantNotFound
	case errors.Is(err, repositories.ErrMenuItemNotFound):
		return apperrors.ErrMenuItemNotFound
	case errors.Is(err, repositories.ErrBusinessUserNotFound):
		return apperrors.ErrNotStaff
	case errors.Is(err, repositories.ErrBusinessUserExists):
		return apperrors.ErrAlreadyStaff
	case errors.Is(err, repositories.ErrReservationNotFound):
		return apperrors.ErrReservationNotFound
	case errors.Is(err, repositories.ErrReservationStateConflict):
		return apperrors.ErrReservationConflict
	case errors.Is(err, repositories.ErrPostNotFound):
		return apperrors.ErrPostNotFound
	case errors.Is(err, repositories.ErrPostStateConflict):
		return apperrors.ErrPostConflict
	case errors.Is(err, repositories.ErrReviewNotFound):
		return apperrors.ErrReviewNotFound
	case errors.Is(err, repositories.ErrReviewAlreadyExists):
		return apperrors.ErrReviewAlreadyExists
	case errors.Is(err, repositories.ErrNotificationNotFound):
		return apperrors.ErrNotificationNotFound
	}
	return err
}
