package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant_backend/internal/email"
	"restaurant_backend/internal/logger"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/services/dto"
	"restaurant_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReservationService interface {
	CreateReservation(db *gorm.DB, userID string, req *dto.CreateReservationRequest) (*dto.ReservationResponse, error)
	GetReservation(db *gorm.DB, userID, reservationID string) (*dto.ReservationResponse, error)
	GetMyReservations(db *gorm.DB, userID string, query *dto.ReservationListQuery) (*dto.ListResponse[dto.ReservationResponse], error)
	GetRestaurantReservations(db *gorm.DB, restaurantID string, query *dto.ReservationListQuery) (*dto.ListResponse[dto.ReservationResponse], error)

	// Staff transitions. The caller must already be authorized for the reservation.
	ConfirmReservation(db *gorm.DB, reservationID string) (*dto.ReservationResponse, error)
	RejectReservation(db *gorm.DB, reservationID string) (*dto.ReservationResponse, error)
	CompleteReservation(db *gorm.DB, reservationID string) (*dto.ReservationResponse, error)

	// CancelReservation is allowed for the creator and for restaurant staff.
	CancelReservation(db *gorm.DB, userID, reservationID string) (*dto.ReservationResponse, error)

	// SweepStale cancels past pending reservations and completes past confirmed ones.
	SweepStale(db *gorm.DB, now time.Time) (*dto.SweepResult, error)
}

type reservationService struct {
	reservationRepo  repositories.ReservationRepository
	restaurantRepo   repositories.RestaurantRepository
	businessUserRepo repositories.BusinessUserRepository
	userRepo         repositories.UserRepository
	access           AccessService
	notifier         NotificationEmitter
	mailer           email.Provider
}

func NewReservationService(
	reservationRepo repositories.ReservationRepository,
	restaurantRepo repositories.RestaurantRepository,
	businessUserRepo repositories.BusinessUserRepository,
	userRepo repositories.UserRepository,
	access AccessService,
	notifier NotificationEmitter,
	mailer email.Provider,
) ReservationService {
	return &reservationService{
		reservationRepo:  reservationRepo,
		restaurantRepo:   restaurantRepo,
		businessUserRepo: businessUserRepo,
		userRepo:         userRepo,
		access:           access,
		notifier:         emitterOrNoop(notifier),
		mailer:           mailer,
	}
}

func (s *reservationService) CreateReservation(db *gorm.DB, userID string, req *dto.CreateReservationRequest) (*dto.ReservationResponse, error) {
	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, apperrors.ValidationError([]apperrors.FieldError{{Field: "dateReservation", Message: "Must be a date in YYYY-MM-DD format"}})
	}

	restaurant, err := s.restaurantRepo.FindByID(db, req.RestaurantID)
	if err != nil {
		return nil, translateError(err)
	}

	isStaff, err := s.access.IsStaff(db, userID, restaurant.ID)
	if err != nil {
		return nil, err
	}

	state := models.ReservationPending
	if isStaff {
		state = models.ReservationConfirmed
	}

	reservation := &models.Reservation{
		RestaurantID:    restaurant.ID,
		UserID:          userID,
		DateReservation: date,
		Time:            req.Time,
		NumberOfGuests:  req.NumberOfGuests,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		Note:            req.Note,
		State:           state,
		Restaurant:      restaurant,
	}
	if err := s.reservationRepo.Create(db, reservation); err != nil {
		return nil, translateError(err)
	}

	logger.CtxInfo(contextOf(db), "Reservation created",
		"reservation_id", reservation.ID, "restaurant_id", restaurant.ID, "state", state)

	if state == models.ReservationPending {
		s.notifyStaff(db, reservation, models.NotificationReservationRequested,
			"New reservation request",
			fmt.Sprintf("%s requested a table for %d on %s at %s.",
				reservation.CustomerName, reservation.NumberOfGuests, req.Date, reservation.Time))
	}

	return toReservationResponse(reservation), nil
}

func (s *reservationService) GetReservation(db *gorm.DB, userID, reservationID string) (*dto.ReservationResponse, error) {
	reservation, err := s.reservationRepo.FindByID(db, reservationID)
	if err != nil {
		return nil, translateError(err)
	}

	if reservation.UserID != userID {
		isStaff, err := s.access.IsStaff(db, userID, reservation.RestaurantID)
		if err != nil {
			return nil, err
		}
		if !isStaff {
			return nil, apperrors.ErrInsufficientPermissions
		}
	}
	return toReservationResponse(reservation), nil
}

func (s *reservationService) GetMyReservations(db *gorm.DB, userID string, query *dto.ReservationListQuery) (*dto.ListResponse[dto.ReservationResponse], error) {
	filter, err := reservationFilter(query)
	if err != nil {
		return nil, err
	}
	reservations, total, err := s.reservationRepo.ListByUser(db, userID, filter)
	if err != nil {
		return nil, err
	}
	items := mapSlice(reservations, func(r *models.Reservation) dto.ReservationResponse { return *toReservationResponse(r) })
	return dto.NewListResponse(items, total, query.Page, query.PageSize), nil
}

func (s *reservationService) GetRestaurantReservations(db *gorm.DB, restaurantID string, query *dto.ReservationListQuery) (*dto.ListResponse[dto.ReservationResponse], error) {
	filter, err := reservationFilter(query)
	if err != nil {
		return nil, err
	}
	reservations, total, err := s.reservationRepo.ListByRestaurant(db, restaurantID, filter)
	if err != nil {
		return nil, err
	}
	items := mapSlice(reservations, func(r *models.Reservation) dto.ReservationResponse { return *toReservationResponse(r) })
	return dto.NewListResponse(items, total, query.Page, query.PageSize), nil
}

func reservationFilter(query *dto.ReservationListQuery) (repositories.ReservationFilter, error) {
	query.Normalize()
	filter := repositories.ReservationFilter{
		State:    models.ReservationState(query.State),
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.From != "" {
		from, err := time.Parse(dto.DateLayout, query.From)
		if err != nil {
			return filter, apperrors.NewBadRequestError("Invalid from date")
		}
		filter.From = &from
	}
	if query.To != "" {
		to, err := time.Parse(dto.DateLayout, query.To)
		if err != nil {
			return filter, apperrors.NewBadRequestError("Invalid to date")
		}
		filter.To = &to
	}
	return filter, nil
}

// ---------------- Transitions ----------------

func (s *reservationService) ConfirmReservation(db *gorm.DB, reservationID string) (*dto.ReservationResponse, error) {
	reservation, err := s.transition(db, reservationID, models.ReservationConfirmed)
	if err != nil {
		return nil, err
	}
	s.notifyCustomer(reservation, models.NotificationReservationConfirmed, "Reservation confirmed",
		fmt.Sprintf("Your reservation at %s on %s at %s is confirmed.", restaurantName(reservation), reservation.DateReservation.Format(dto.DateLayout), reservation.Time))
	s.mail(db, reservation, email.TemplateReservationConfirmed, "Your reservation is confirmed")
	return toReservationResponse(reservation), nil
}

func (s *reservationService) RejectReservation(db *gorm.DB, reservationID string) (*dto.ReservationResponse, error) {
	reservation, err := s.transition(db, reservationID, models.ReservationRejected)
	if err != nil {
		return nil, err
	}
	s.notifyCustomer(reservation, models.NotificationReservationRejected, "Reservation declined",
		fmt.Sprintf("%s could not accept your reservation on %s at %s.", restaurantName(reservation), reservation.DateReservation.Format(dto.DateLayout), reservation.Time))
	s.mail(db, reservation, email.TemplateReservationRejected, "Your reservation was declined")
	return toReservationResponse(reservation), nil
}

func (s *reservationService) CompleteReservation(db *gorm.DB, reservationID string) (*dto.ReservationResponse, error) {
	reservation, err := s.transition(db, reservationID, models.ReservationCompleted)
	if err != nil {
		return nil, err
	}
	s.notifyCustomer(reservation, models.NotificationReservationCompleted, "Thanks for your visit",
		fmt.Sprintf("We hope you enjoyed %s. Leave a review!", restaurantName(reservation)))
	return toReservationResponse(reservation), nil
}

func (s *reservationService) CancelReservation(db *gorm.DB, userID, reservationID string) (*dto.ReservationResponse, error) {
	current, err := s.reservationRepo.FindByID(db, reservationID)
	if err != nil {
		return nil, translateError(err)
	}

	byCustomer := current.UserID == userID
	if !byCustomer {
		isStaff, err := s.access.IsStaff(db, userID, current.RestaurantID)
		if err != nil {
			return nil, err
		}
		if !isStaff {
			return nil, apperrors.ErrNotStaff
		}
	}

	reservation, err := s.transition(db, reservationID, models.ReservationCancelled)
	if err != nil {
		return nil, err
	}

	when := reservation.DateReservation.Format(dto.DateLayout)
	if byCustomer {
		s.notifyStaff(db, reservation, models.NotificationReservationCancelled, "Reservation cancelled",
			fmt.Sprintf("%s cancelled the reservation on %s at %s.", reservation.CustomerName, when, reservation.Time))
	} else {
		s.notifyCustomer(reservation, models.NotificationReservationCancelled, "Reservation cancelled",
			fmt.Sprintf("%s cancelled your reservation on %s at %s.", restaurantName(reservation), when, reservation.Time))
	}
	return toReservationResponse(reservation), nil
}

// transition applies the guarded update. A missing reservation is a 404,
// a reservation in the wrong state is a 409.
func (s *reservationService) transition(db *gorm.DB, reservationID string, target models.ReservationState) (*models.Reservation, error) {
	if err := s.reservationRepo.Transition(db, reservationID, target); err != nil {
		if errors.Is(err, repositories.ErrReservationStateConflict) {
			if _, findErr := s.reservationRepo.FindByID(db, reservationID); errors.Is(findErr, repositories.ErrReservationNotFound) {
				return nil, apperrors.ErrReservationNotFound
			}
		}
		return nil, translateError(err)
	}

	reservation, err := s.reservationRepo.FindByID(db, reservationID)
	if err != nil {
		return nil, translateError(err)
	}

	logger.CtxInfo(contextOf(db), "Reservation state changed", "reservation_id", reservationID, "state", target)
	return reservation, nil
}

func (s *reservationService) SweepStale(db *gorm.DB, now time.Time) (*dto.SweepResult, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	result := &dto.SweepResult{}

	pending, err := s.reservationRepo.FindIDsForSweep(db, models.ReservationPending, today)
	if err != nil {
		return nil, err
	}
	for _, id := range pending {
		reservation, err := s.transition(db, id, models.ReservationCancelled)
		if err != nil {
			result.Skipped++
			continue
		}
		result.Cancelled++
		s.notifyCustomer(reservation, models.NotificationReservationCancelled, "Reservation expired",
			fmt.Sprintf("Your request at %s was not confirmed in time.", restaurantName(reservation)))
	}

	confirmed, err := s.reservationRepo.FindIDsForSweep(db, models.ReservationConfirmed, today.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	for _, id := range confirmed {
		if _, err := s.transition(db, id, models.ReservationCompleted); err != nil {
			result.Skipped++
			continue
		}
		result.Completed++
	}

	return result, nil
}

// ---------------- Side effects ----------------

func (s *reservationService) notifyStaff(db *gorm.DB, reservation *models.Reservation, notificationType models.NotificationType, title, message string) {
	staffIDs, err := s.businessUserRepo.StaffUserIDs(db, reservation.RestaurantID)
	if err != nil {
		logger.CtxWarn(contextOf(db), "Failed to load staff for notification", "restaurant_id", reservation.RestaurantID, "error", err)
		return
	}
	s.notifier.Emit(staffIDs, notificationType, title, message, reservationData(reservation))
}

func (s *reservationService) notifyCustomer(reservation *models.Reservation, notificationType models.NotificationType, title, message string) {
	s.notifier.Emit([]string{reservation.UserID}, notificationType, title, message, reservationData(reservation))
}

// mail is best effort and never blocks the request.
func (s *reservationService) mail(db *gorm.DB, reservation *models.Reservation, template, subject string) {
	if s.mailer == nil {
		return
	}
	user, err := s.userRepo.FindByID(db, reservation.UserID)
	if err != nil {
		logger.CtxWarn(contextOf(db), "Reservation email skipped", "reservation_id", reservation.ID, "error", err)
		return
	}

	data := email.TemplateData{
		"CustomerName": reservation.CustomerName,
		"Guests":       reservation.NumberOfGuests,
		"Restaurant":   restaurantName(reservation),
		"Date":         reservation.DateReservation.Format(dto.DateLayout),
		"Time":         reservation.Time,
	}
	go func() {
		if err := s.mailer.SendTemplate([]string{user.Email}, subject, template, data); err != nil {
			logger.Warn("Reservation email failed", "reservation_id", reservation.ID, "error", err)
		}
	}()
}

func reservationData(r *models.Reservation) map[string]string {
	return map[string]string{
		"reservation_id": r.ID,
		"restaurant_id":  r.RestaurantID,
		"state":          string(r.State),
	}
}

func restaurantName(r *models.Reservation) string {
	if r.Restaurant != nil {
		return r.Restaurant.Name
	}
	return "the restaurant"
}
