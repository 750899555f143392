package contextkeys

// Custom type to avoid collisions with other packages' keys
type contextKey string

// DBContextKey holds the request-scoped *gorm.DB
const DBContextKey = contextKey("db")

// Keys set by the authentication and role gates on the gin context.
const (
	UserIDKey = "userID"
	RoleKey   = "role"
	AccessKey = "access"
)
