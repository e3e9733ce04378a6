package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strconv"  // numeric parsing of the subject claim
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// OptionalAuth returns an Echo middleware that extracts identity from a
// Bearer token when one is present.  Booking is open to guests, so a request
// without an Authorization header passes through untouched and any booking
// it creates simply carries no user reference.  A request that does present
// a token must present a valid one: the subject claim is parsed into a
// numeric user ID and stored in the context under "user_id", where handlers
// read it via UserID().  An empty secret disables identity extraction
// entirely.
func OptionalAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if auth == "" || secret == "" {
                // Guest request; nothing to verify.
                return next(c)
            }
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "malformed authorization header"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Parse with HS256 and our secret; reject any other signing
            // method so an attacker cannot downgrade to "none".
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            if claims, ok := tok.Claims.(jwt.MapClaims); ok {
                if id, ok := subjectID(claims); ok {
                    c.Set("user_id", id)
                }
            }
            return next(c)
        }
    }
}

// subjectID extracts a numeric user ID from the sub claim.  JSON numbers
// arrive as float64; string subjects are parsed.
func subjectID(cl jwt.MapClaims) (uint64, bool) {
    switch v := cl["sub"].(type) {
    case string:
        if n, err := strconv.ParseUint(v, 10, 64); err == nil {
            return n, true
        }
    case float64:
        if v > 0 {
            return uint64(v), true
        }
    }
    return 0, false
}

// UserID returns the authenticated user's ID from the request context, or
// nil for guest requests.
func UserID(c echo.Context) *uint64 {
    if v, ok := c.Get("user_id").(uint64); ok {
        return &v
    }
    return nil
}
