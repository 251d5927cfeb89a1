package contextkeys

// Custom type so keys never collide with other packages.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB lives.
const DBContextKey = contextKey("db")
