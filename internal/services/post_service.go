package services

import (
	"fmt"
	"strings"

	"restaurant_backend/internal/logger"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/services/dto"
	"restaurant_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type PostService interface {
	CreatePost(db *gorm.DB, userID string, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	// GetPost hides non-accepted posts from everyone but the author and staff.
	GetPost(db *gorm.DB, viewerID, postID string) (*dto.PostResponse, error)
	GetFeed(db *gorm.DB, viewerID string, query *dto.PostFeedQuery) (*dto.ListResponse[dto.PostResponse], error)
	GetRestaurantPosts(db *gorm.DB, restaurantID string, query *dto.PageQuery) (*dto.ListResponse[dto.PostResponse], error)
	GetPendingPosts(db *gorm.DB, restaurantID string, query *dto.PageQuery) (*dto.ListResponse[dto.PostResponse], error)

	// Moderation. The caller must already be authorized for the post.
	AcceptPost(db *gorm.DB, postID string) (*dto.PostResponse, error)
	RejectPost(db *gorm.DB, postID string) (*dto.PostResponse, error)

	DeletePost(db *gorm.DB, userID, postID string) error
}

type postService struct {
	postRepo       repositories.PostRepository
	restaurantRepo repositories.RestaurantRepository
	followRepo     repositories.FollowRepository
	staffRepo      repositories.BusinessUserRepository
	access         AccessService
	notifier       NotificationEmitter
}

func NewPostService(
	postRepo repositories.PostRepository,
	restaurantRepo repositories.RestaurantRepository,
	followRepo repositories.FollowRepository,
	staffRepo repositories.BusinessUserRepository,
	access AccessService,
	notifier NotificationEmitter,
) PostService {
	return &postService{
		postRepo:       postRepo,
		restaurantRepo: restaurantRepo,
		followRepo:     followRepo,
		staffRepo:      staffRepo,
		access:         access,
		notifier:       emitterOrNoop(notifier),
	}
}

func (s *postService) CreatePost(db *gorm.DB, userID string, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	restaurant, err := s.restaurantRepo.FindByID(db, req.RestaurantID)
	if err != nil {
		return nil, translateError(err)
	}

	isStaff, err := s.access.IsStaff(db, userID, restaurant.ID)
	if err != nil {
		return nil, err
	}

	state := models.PostPending
	if isStaff {
		state = models.PostAccepted
	}

	post := &models.Post{
		AuthorUserID:       userID,
		AuthorRestaurantID: restaurant.ID,
		Image:              req.Image,
		Content:            strings.TrimSpace(req.Content),
		State:              state,
	}
	if err := s.postRepo.Create(db, post); err != nil {
		return nil, translateError(err)
	}

	if state == models.PostPending {
		staffIDs, err := s.staffRepo.StaffUserIDs(db, restaurant.ID)
		if err != nil {
			logger.CtxWarn(contextOf(db), "Failed to load staff for notification", "restaurant_id", restaurant.ID, "error", err)
		} else {
			s.notifier.Emit(staffIDs, models.NotificationPostSubmitted, "New post to review",
				fmt.Sprintf("A post about %s is waiting for moderation.", restaurant.Name),
				map[string]string{"post_id": post.ID, "restaurant_id": restaurant.ID})
		}
	}

	created, err := s.postRepo.FindByID(db, post.ID)
	if err != nil {
		return nil, translateError(err)
	}
	return toPostResponse(created), nil
}

func (s *postService) GetPost(db *gorm.DB, viewerID, postID string) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindByID(db, postID)
	if err != nil {
		return nil, translateError(err)
	}

	if post.State != models.PostAccepted && post.AuthorUserID != viewerID {
		isStaff := false
		if viewerID != "" {
			if isStaff, err = s.access.IsStaff(db, viewerID, post.AuthorRestaurantID); err != nil {
				return nil, err
			}
		}
		if !isStaff {
			// unmoderated posts are invisible, not forbidden
			return nil, apperrors.ErrPostNotFound
		}
	}
	return toPostResponse(post), nil
}

func (s *postService) GetFeed(db *gorm.DB, viewerID string, query *dto.PostFeedQuery) (*dto.ListResponse[dto.PostResponse], error) {
	query.Normalize()
	filter := repositories.PostFilter{
		State:    models.PostAccepted,
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	if query.Following {
		if viewerID == "" {
			return nil, apperrors.NewUnauthorizedError("Sign in to see posts from restaurants you follow")
		}
		ids, err := s.followRepo.RestaurantIDs(db, viewerID)
		if err != nil {
			return nil, err
		}
		filter.RestaurantIDs = ids
	}

	return s.list(db, filter)
}

func (s *postService) GetRestaurantPosts(db *gorm.DB, restaurantID string, query *dto.PageQuery) (*dto.ListResponse[dto.PostResponse], error) {
	if _, err := s.restaurantRepo.FindByID(db, restaurantID); err != nil {
		return nil, translateError(err)
	}
	query.Normalize()
	return s.list(db, repositories.PostFilter{
		State:        models.PostAccepted,
		RestaurantID: restaurantID,
		Page:         query.Page,
		PageSize:     query.PageSize,
	})
}

func (s *postService) GetPendingPosts(db *gorm.DB, restaurantID string, query *dto.PageQuery) (*dto.ListResponse[dto.PostResponse], error) {
	query.Normalize()
	return s.list(db, repositories.PostFilter{
		State:        models.PostPending,
		RestaurantID: restaurantID,
		Page:         query.Page,
		PageSize:     query.PageSize,
	})
}

func (s *postService) list(db *gorm.DB, filter repositories.PostFilter) (*dto.ListResponse[dto.PostResponse], error) {
	posts, total, err := s.postRepo.List(db, filter)
	if err != nil {
		return nil, err
	}
	items := mapSlice(posts, func(p *models.Post) dto.PostResponse { return *toPostResponse(p) })
	return dto.NewListResponse(items, total, filter.Page, filter.PageSize), nil
}

func (s *postService) AcceptPost(db *gorm.DB, postID string) (*dto.PostResponse, error) {
	return s.moderate(db, postID, models.PostAccepted)
}

func (s *postService) RejectPost(db *gorm.DB, postID string) (*dto.PostResponse, error) {
	return s.moderate(db, postID, models.PostRejected)
}

// moderate moves a pending post to target. Re-applying the current state is
// a no-op; any other move out of a terminal state is a conflict.
func (s *postService) moderate(db *gorm.DB, postID string, target models.PostState) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindByID(db, postID)
	if err != nil {
		return nil, translateError(err)
	}
	if post.State == target {
		return toPostResponse(post), nil
	}
	if !post.State.CanTransitionTo(target) {
		return nil, apperrors.ErrPostConflict
	}

	if err := s.postRepo.UpdateStateFromPending(db, postID, target); err != nil {
		return nil, translateError(err)
	}
	post.State = target

	notificationType, title := models.NotificationPostAccepted, "Your post was published"
	if target == models.PostRejected {
		notificationType, title = models.NotificationPostRejected, "Your post was declined"
	}
	restaurantName := "the restaurant"
	if post.Restaurant != nil {
		restaurantName = post.Restaurant.Name
	}
	s.notifier.Emit([]string{post.AuthorUserID}, notificationType, title,
		fmt.Sprintf("Your post about %s is now %s.", restaurantName, target),
		map[string]string{"post_id": post.ID, "restaurant_id": post.AuthorRestaurantID})

	logger.CtxInfo(contextOf(db), "Post moderated", "post_id", postID, "state", target)
	return toPostResponse(post), nil
}

func (s *postService) DeletePost(db *gorm.DB, userID, postID string) error {
	post, err := s.postRepo.FindByID(db, postID)
	if err != nil {
		return translateError(err)
	}

	if post.AuthorUserID != userID {
		isStaff, err := s.access.IsStaff(db, userID, post.AuthorRestaurantID)
		if err != nil {
			return err
		}
		if !isStaff {
			return apperrors.ErrInsufficientPermissions
		}
	}
	return translateError(s.postRepo.Delete(db, postID))
}
