package services

import (
	"errors"
	"fmt"
	"strings"

	"restaurant_backend/internal/logger"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/services/dto"
	"restaurant_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	// CreateReview writes the review and the restaurant aggregate in one transaction.
	CreateReview(db *gorm.DB, userID, restaurantID string, req *dto.CreateReviewRequest) (*dto.ReviewMutationResponse, error)
	// DeleteReview soft deletes and recomputes. Only the author or an admin may delete.
	DeleteReview(db *gorm.DB, userID string, isAdmin bool, restaurantID, reviewID string) (*dto.ReviewMutationResponse, error)
	GetRestaurantReviews(db *gorm.DB, restaurantID string, query *dto.PageQuery) (*dto.ListResponse[dto.ReviewResponse], error)
	GetUserReviews(db *gorm.DB, userID string, query *dto.PageQuery) (*dto.ListResponse[dto.ReviewResponse], error)
	// RecalculateRating rescans the non-deleted reviews and stores the aggregate.
	RecalculateRating(db *gorm.DB, restaurantID string) (*repositories.RatingAggregate, error)
}

type reviewService struct {
	reviewRepo     repositories.ReviewRepository
	restaurantRepo repositories.RestaurantRepository
	restaurants    RestaurantService
	notifier       NotificationEmitter
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	restaurantRepo repositories.RestaurantRepository,
	restaurants RestaurantService,
	notifier NotificationEmitter,
) ReviewService {
	return &reviewService{
		reviewRepo:     reviewRepo,
		restaurantRepo: restaurantRepo,
		restaurants:    restaurants,
		notifier:       emitterOrNoop(notifier),
	}
}

func (s *reviewService) CreateReview(db *gorm.DB, userID, restaurantID string, req *dto.CreateReviewRequest) (*dto.ReviewMutationResponse, error) {
	review := &models.Review{
		RestaurantID: restaurantID,
		UserID:       userID,
		Rating:       req.Rating,
		Comment:      strings.TrimSpace(req.Comment),
	}

	var restaurant *models.Restaurant
	var aggregate *repositories.RatingAggregate

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if restaurant, err = s.restaurantRepo.FindByID(tx, restaurantID); err != nil {
			return err
		}

		if _, err := s.reviewRepo.FindActive(tx, userID, restaurantID); err == nil {
			return repositories.ErrReviewAlreadyExists
		} else if !errors.Is(err, repositories.ErrReviewNotFound) {
			return err
		}

		if err := s.reviewRepo.Create(tx, review); err != nil {
			return err
		}

		aggregate, err = s.RecalculateRating(tx, restaurantID)
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}

	s.restaurants.InvalidateRestaurant(db, restaurantID)

	if restaurant.OwnerID != "" && restaurant.OwnerID != userID {
		s.notifier.Emit([]string{restaurant.OwnerID}, models.NotificationNewReview, "New review",
			fmt.Sprintf("%s received a %d-star review.", restaurant.Name, review.Rating),
			map[string]string{"review_id": review.ID, "restaurant_id": restaurantID})
	}

	logger.CtxInfo(contextOf(db), "Review created", "review_id", review.ID, "restaurant_id", restaurantID,
		"average_rating", aggregate.AverageRating, "num_reviews", aggregate.NumReviews)

	return &dto.ReviewMutationResponse{
		Review: toReviewResponse(review),
		Rating: ratingResponse(restaurantID, aggregate),
	}, nil
}

func (s *reviewService) DeleteReview(db *gorm.DB, userID string, isAdmin bool, restaurantID, reviewID string) (*dto.ReviewMutationResponse, error) {
	var aggregate *repositories.RatingAggregate

	err := db.Transaction(func(tx *gorm.DB) error {
		review, err := s.reviewRepo.FindByID(tx, reviewID)
		if err != nil {
			return err
		}
		if review.RestaurantID != restaurantID {
			return repositories.ErrReviewNotFound
		}
		if review.UserID != userID && !isAdmin {
			return apperrors.ErrInsufficientPermissions
		}

		if err := s.reviewRepo.Delete(tx, reviewID); err != nil {
			return err
		}

		aggregate, err = s.RecalculateRating(tx, restaurantID)
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}

	s.restaurants.InvalidateRestaurant(db, restaurantID)

	return &dto.ReviewMutationResponse{Rating: ratingResponse(restaurantID, aggregate)}, nil
}

func (s *reviewService) RecalculateRating(db *gorm.DB, restaurantID string) (*repositories.RatingAggregate, error) {
	aggregate, err := s.reviewRepo.CalculateRating(db, restaurantID)
	if err != nil {
		return nil, err
	}
	if err := s.restaurantRepo.UpdateRating(db, restaurantID, aggregate.AverageRating, aggregate.NumReviews); err != nil {
		return nil, err
	}
	return aggregate, nil
}

func (s *reviewService) GetRestaurantReviews(db *gorm.DB, restaurantID string, query *dto.PageQuery) (*dto.ListResponse[dto.ReviewResponse], error) {
	if _, err := s.restaurantRepo.FindByID(db, restaurantID); err != nil {
		return nil, translateError(err)
	}
	query.Normalize()
	reviews, total, err := s.reviewRepo.ListByRestaurant(db, restaurantID, query.Page, query.PageSize)
	if err != nil {
		return nil, err
	}
	items := mapSlice(reviews, func(r *models.Review) dto.ReviewResponse { return *toReviewResponse(r) })
	return dto.NewListResponse(items, total, query.Page, query.PageSize), nil
}

func (s *reviewService) GetUserReviews(db *gorm.DB, userID string, query *dto.PageQuery) (*dto.ListResponse[dto.ReviewResponse], error) {
	query.Normalize()
	reviews, total, err := s.reviewRepo.ListByUser(db, userID, query.Page, query.PageSize)
	if err != nil {
		return nil, err
	}
	items := mapSlice(reviews, func(r *models.Review) dto.ReviewResponse { return *toReviewResponse(r) })
	return dto.NewListResponse(items, total, query.Page, query.PageSize), nil
}

func ratingResponse(restaurantID string, aggregate *repositories.RatingAggregate) dto.RatingResponse {
	return dto.RatingResponse{
		RestaurantID:  restaurantID,
		AverageRating: aggregate.AverageRating,
		NumReviews:    aggregate.NumReviews,
	}
}
