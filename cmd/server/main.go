package main // Entry point package

import (
	"log"       // Logging library
	"math/rand" // Randomness source for identifier generation
	"time"      // Seeding the randomness source

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/booking"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/config"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/database"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/handler"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/identifier"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/middleware"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/pricing"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/queue"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/repository"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/router"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/search"
	queuepublisher "github.com/sunny-bhakta/airline-booking-system-sub000/internal/service"
)

func main() {
	_ = godotenv.Load() // Load .env if present; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err) // No point starting without storage
	}
	defer db.Close()

	// Repositories over the shared connection pool.
	airportRepo := repository.NewAirportRepo(db)
	routeRepo := repository.NewRouteRepo(db)
	aircraftRepo := repository.NewAircraftRepo(db)
	flightRepo := repository.NewFlightRepo(db)
	fareRepo := repository.NewFareRepo(db)
	taxFeeRepo := repository.NewTaxFeeRepo(db)
	promoRepo := repository.NewPromoRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	passengerRepo := repository.NewPassengerRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	seatRepo := repository.NewSeatAssignmentRepo(db)

	// Engines.
	pricer := pricing.NewEngine(flightRepo, fareRepo, taxFeeRepo, promoRepo, pricing.DefaultPolicy())
	searcher := search.NewEngine(airportRepo, routeRepo, flightRepo, fareRepo, aircraftRepo)
	gen := identifier.New(cfg.CarrierPrefix, rand.New(rand.NewSource(time.Now().UnixNano())))
	booker := booking.NewEngine(booking.Deps{
		Tx:         repository.NewTxRunner(db),
		Inventory:  inventoryRepo,
		Bookings:   bookingRepo,
		Passengers: passengerRepo,
		Tickets:    ticketRepo,
		Seats:      seatRepo,
		Promos:     promoRepo,
		Pricer:     pricer,
		Generator:  gen,
		Publisher:  queuepublisher.New(), // booking.events over RabbitMQ
	})

	// Background consumer writes the booking audit log; it reconnects on
	// its own and never takes the server down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	// Redis backs the response cache and the rate limiter; both degrade to
	// pass-throughs when it is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterSearch(e, handler.NewSearchHandler(searcher), config.LoadCacheConfig(), rdb)
	router.RegisterFares(e, handler.NewFareHandler(pricer))
	router.RegisterBookings(e, handler.NewBookingHandler(booker), cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
