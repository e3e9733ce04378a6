package middleware

// identity.go defines helper functions shared across middleware files.
// userID feeds the cache and rate-limit key strategies: authenticated
// requests are keyed per user, everything else shares the "guest" bucket.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// userID extracts the user identifier that OptionalAuth stored in context.
// It returns "guest" when no user is authenticated.
func userID(c echo.Context) string {
    if v, ok := c.Get("user_id").(uint64); ok {
        return strconv.FormatUint(v, 10)
    }
    return "guest"
}
