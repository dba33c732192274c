package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-booking/internal/config"
	"github.com/iliyamo/cinema-booking/internal/database"
	"github.com/iliyamo/cinema-booking/internal/handler"
	"github.com/iliyamo/cinema-booking/internal/logger"
	"github.com/iliyamo/cinema-booking/internal/middleware"
	"github.com/iliyamo/cinema-booking/internal/notify"
	"github.com/iliyamo/cinema-booking/internal/queue"
	"github.com/iliyamo/cinema-booking/internal/repository"
	"github.com/iliyamo/cinema-booking/internal/router"
	"github.com/iliyamo/cinema-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg, err := config.Load()
	if err != nil {
		logger.New("").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("database unavailable")
		os.Exit(1)
	}
	defer db.Close()
	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.WithError(err).Error("migration failed")
			os.Exit(1)
		}
	}
	if cfg.DBSeed {
		seeded, err := database.Seed(ctx, db)
		if err != nil {
			log.WithError(err).Error("seeding failed")
			os.Exit(1)
		}
		log.Info("demo catalog", "seeded", seeded)
	}

	// stays a nil interface when Redis is down so the middleware degrades
	var rdb redis.UniversalClient
	if client, err := config.NewRedisClient(ctx); err != nil {
		log.WithError(err).Warn("redis unavailable, rate limiting and caching disabled")
	} else {
		rdb = client
		defer client.Close()
	}

	// Notification sinks. Each is optional; only configured ones are added.
	hub := notify.NewHub(log, cfg.CORSOrigins)
	sinks := []notify.Sink{hub}
	if pc := notify.NewPusherClient(cfg.PusherAppID, cfg.PusherKey, cfg.PusherSecret, cfg.PusherCluster); pc != nil {
		sinks = append(sinks, notify.NewPusherSink(pc))
	}
	if rp := notify.NewRabbitPublisher(cfg.RabbitURL); rp != nil {
		sinks = append(sinks, rp)
		go func() {
			if err := queue.StartSeatEventConsumer(ctx, cfg.RabbitURL, cfg.SeatLogDir, log); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("seat event consumer stopped")
			}
		}()
	}
	fanout := notify.NewFanOut(log, 5*time.Second, sinks...)

	// Repositories, engine and handlers.
	theaters := repository.NewTheaterRepo(db)
	movies := repository.NewMovieRepo(db)
	screenings := repository.NewScreeningRepo(db)
	seats := repository.NewSeatRepo(db)
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)

	engine := service.NewBookingEngine(repository.NewStore(db), fanout, log)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(middleware.RequestLogger(log))

	router.Register(e, router.Deps{
		JWTSecret: cfg.JWTSecret,
		DB:        db,
		Redis:     rdb,
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),
		Log:       log,
		Auth:      handler.NewAuthHandler(cfg, users, log),
		Catalog:   handler.NewCatalogHandler(theaters, movies, screenings, seats, log),
		Bookings:  handler.NewBookingHandler(engine, bookings, log),
		WS:        hub.ServeWS,
	})

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown incomplete")
	}
	if err := fanout.Close(shutdownCtx); err != nil {
		log.WithError(err).Warn("pending seat events dropped")
	}
	hub.Close()
}
