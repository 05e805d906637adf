package middleware

// contextKey is the type used for values stored in request contexts.
// Using a custom type prevents collisions.
type contextKey string

// loggerCtxKey is the key under which the request-scoped logger is stored.
const loggerCtxKey = contextKey("logger")
