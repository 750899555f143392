package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные ошибки бизнес-логики.
Сервисы возвращают их, HandleError отдает клиенту.
*/

// =========================================================================
// Фабричные функции (оборачивают ошибки репозиториев)
// =========================================================================

// ErrNotFound - ресурс не найден (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - ресурс уже существует (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrDuplicateKey - нарушение уникального индекса в БД (400)
func ErrDuplicateKey(err error) *AppError {
	return Wrap(err, CodeDuplicateKey, "database", "Duplicate value for a unique field", http.StatusBadRequest)
}

// ErrConflict - общий конфликт (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - 400
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrDatabase - ошибка БД (500), исходная ошибка остается для логов
func ErrDatabase(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "database", "Database error", http.StatusInternalServerError)
}

// =========================================================================
// Предопределенные ошибки
// =========================================================================

var ErrInsufficientPermissions = New(CodeForbidden, "auth", "Insufficient permissions", http.StatusForbidden)

var ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)

var ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)

var ErrAccountSuspended = New(CodeAccountSuspended, "auth", "Account is suspended", http.StatusForbidden)

var ErrEmailAlreadyExists = New(CodeDuplicateKey, "user", "Email is already registered", http.StatusBadRequest)

// --- Рестораны и персонал ---

var ErrRestaurantNotFound = New(CodeNotFound, "restaurant", "Restaurant not found", http.StatusNotFound)

var ErrMenuItemNotFound = New(CodeNotFound, "menu", "Menu item not found", http.StatusNotFound)

var ErrNotStaff = New(CodeForbidden, "restaurant", "You are not staff of this restaurant", http.StatusForbidden)

var ErrOwnerOnly = New(CodeForbidden, "restaurant", "Only the owner can perform this action", http.StatusForbidden)

var ErrAlreadyStaff = New(CodeConflict, "restaurant", "User already has a role in this restaurant", http.StatusConflict)

var ErrCannotRemoveOwner = New(CodeInvalidOperation, "restaurant", "The owner cannot be removed", http.StatusBadRequest)

var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

// --- Бронирования ---

var ErrReservationNotFound = New(CodeNotFound, "reservation", "Reservation not found", http.StatusNotFound)

var ErrReservationConflict = New(CodeConflict, "reservation", "Reservation is not in a state that allows this action", http.StatusConflict)

// --- Посты ---

var ErrPostNotFound = New(CodeNotFound, "post", "Post not found", http.StatusNotFound)

var ErrPostConflict = New(CodeConflict, "post", "Post has already been moderated", http.StatusConflict)

// --- Отзывы ---

var ErrReviewNotFound = New(CodeNotFound, "review", "Review not found", http.StatusNotFound)

var ErrReviewAlreadyExists = New(CodeConflict, "review", "You have already reviewed this restaurant", http.StatusConflict)

// --- Уведомления ---

var ErrNotificationNotFound = New(CodeNotFound, "notification", "Notification not found", http.StatusNotFound)

// --- Загрузки ---

var ErrFileTooLarge = New(CodeFileTooLarge, "upload", "File is too large", http.StatusBadRequest)

var ErrUnsupportedFile = New(CodeUnsupportedFile, "upload", "Unsupported file type", http.StatusBadRequest)
