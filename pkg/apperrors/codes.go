package apperrors

// ErrorCode - машиночитаемый код ошибки
type ErrorCode string

const (
	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Business logic
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeDuplicateKey     ErrorCode = "DUPLICATE_KEY"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Auth
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	CodeAccountSuspended   ErrorCode = "ACCOUNT_SUSPENDED"

	// Files
	CodeFileTooLarge       ErrorCode = "FILE_TOO_LARGE"
	CodeUnsupportedFile    ErrorCode = "UNSUPPORTED_FILE"
	CodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
)
