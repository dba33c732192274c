package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-booking/internal/config"
	"github.com/iliyamo/cinema-booking/internal/handler"
	"github.com/iliyamo/cinema-booking/internal/logger"
	"github.com/iliyamo/cinema-booking/internal/middleware"
	"github.com/iliyamo/cinema-booking/internal/model"
)

// Deps collects what the routes need. Redis may be nil; the rate limiter
// and the response cache then pass requests straight through.
type Deps struct {
	JWTSecret string
	DB        handler.Pinger
	Redis     redis.UniversalClient
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig
	Log       *logger.Logger

	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Bookings *handler.BookingHandler
	// WS upgrades GET /ws; nil leaves the route unregistered.
	WS echo.HandlerFunc
}

// Register mounts every route on e.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health(d.DB))
	if d.WS != nil {
		e.GET("/ws", d.WS)
	}

	registerAuth(e, d)
	registerCatalog(e, d)
	registerBookings(e, d)
}

func registerAuth(e *echo.Echo, d Deps) {
	e.POST("/register", d.Auth.Register)
	e.POST("/login", d.Auth.Login)
	e.GET("/me", d.Auth.Me, middleware.JWTAuth(d.JWTSecret))
}

// registerCatalog exposes reads publicly and keeps writes admin only.
// Theater and movie listings are cached; writes to them drop the cached
// pages. Seat maps are never cached.
func registerCatalog(e *echo.Echo, d Deps) {
	c := d.Catalog
	cached := middleware.NewRedisCache(d.Cache, d.Redis)

	e.GET("/theaters", c.ListTheaters, cached)
	e.GET("/movies", c.ListMovies, cached)
	e.GET("/theaters/:theaterId/screenings", c.ListScreenings)
	e.GET("/screenings/:id/seats", c.ListSeats)

	// routes sit at the root, so middleware is attached per route; an
	// empty-prefix group would claim every unmatched path
	jwt := middleware.JWTAuth(d.JWTSecret)
	admin := middleware.RequireRole(model.RoleAdmin)
	dropTheaters := middleware.InvalidateCache(d.Cache, d.Redis, d.Log, "/theaters")
	dropMovies := middleware.InvalidateCache(d.Cache, d.Redis, d.Log, "/movies")

	e.POST("/theaters", c.CreateTheater, jwt, admin, dropTheaters)
	e.PUT("/theaters/:id", c.UpdateTheater, jwt, admin, dropTheaters)
	e.DELETE("/theaters/:id", c.DeleteTheater, jwt, admin, dropTheaters)

	e.POST("/movies", c.CreateMovie, jwt, admin, dropMovies)
	e.PUT("/movies/:id", c.UpdateMovie, jwt, admin, dropMovies)
	e.DELETE("/movies/:id", c.DeleteMovie, jwt, admin, dropMovies)

	e.POST("/screenings", c.CreateScreening, jwt, admin)
	e.POST("/screenings/:id/seats", c.CreateSeats, jwt, admin)
}

// registerBookings mounts the seat booking routes. Any authenticated role
// may book; book and cancel share one token bucket per caller and route.
func registerBookings(e *echo.Echo, d Deps) {
	jwt := middleware.JWTAuth(d.JWTSecret)
	limited := middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log)

	e.POST("/screenings/:id/book", d.Bookings.Book, jwt, limited)
	e.DELETE("/screenings/:id/bookings", d.Bookings.Cancel, jwt, limited)
	// older clients cancel via /bookings/<screening id>
	e.DELETE("/bookings/:id", d.Bookings.Cancel, jwt, limited)
	e.GET("/bookings", d.Bookings.ListMine, jwt)
}
