package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/config"     // cache and rate-limit configuration
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/handler"    // import the handlers that implement business logic
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/middleware" // middleware for identity, caching and rate limiting
)

// RegisterRoutes registers routes that do not belong to the versioned API
// surface.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterSearch registers the read-only search and availability endpoints
// under /v1.  These routes are public; the response cache sits in front of
// them because search results tolerate brief staleness.
func RegisterSearch(e *echo.Echo, s *handler.SearchHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1")
	// The cache middleware degrades to a pass-through when Redis is absent.
	g.Use(middleware.NewRedisCache(cacheCfg, rdb))
	g.GET("/search/flights", s.SearchFlights)
	g.GET("/search/round-trip", s.SearchRoundTrip)
	g.POST("/search/multi-city", s.SearchMultiCity)
	g.GET("/flights/:id/availability", s.Availability)
}

// RegisterFares registers fare quoting and promo validation under /v1.
func RegisterFares(e *echo.Echo, f *handler.FareHandler) {
	g := e.Group("/v1")
	g.GET("/fares/quote", f.Quote)
	g.POST("/promo-codes/validate", f.ValidatePromo)
}

// RegisterBookings registers the booking lifecycle endpoints under /v1.
// OptionalAuth extracts the caller's identity when a bearer token is
// present; bookings remain open to guests.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.OptionalAuth(jwtSecret))
	g.POST("/bookings", b.Create)
	g.GET("/bookings/:pnr", b.GetByPNR)
	g.PATCH("/bookings/:id/status", b.UpdateStatus)
	g.POST("/bookings/:id/tickets", b.GenerateTickets)
	g.POST("/bookings/:id/seats", b.AssignSeat)
	g.DELETE("/bookings/:id", b.Delete)
}
