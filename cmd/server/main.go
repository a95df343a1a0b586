package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/admin-AK47/MRBS/internal/config"
	"github.com/admin-AK47/MRBS/internal/database"
	"github.com/admin-AK47/MRBS/internal/handler"
	"github.com/admin-AK47/MRBS/internal/queue"
	"github.com/admin-AK47/MRBS/internal/repository"
	"github.com/admin-AK47/MRBS/internal/router"
	"github.com/admin-AK47/MRBS/internal/sweeper"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable; cache and limits degrade

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	rooms := repository.NewRoomRepo(db)
	stats := repository.NewStatsRepo(db)
	reservations := repository.NewReservationRepo(db, stats)
	feedback := repository.NewFeedbackRepo(db, reservations)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, router.Deps{
		Cfg:      cfg,
		CacheCfg: config.LoadCacheConfig(),
		LimitCfg: config.LoadRateLimitConfig(),
		Redis:    rdb,
		Auth:     handler.NewAuthHandler(cfg, users, tokens),
		Rooms:    handler.NewRoomHandler(rooms, reservations, feedback),
		Bookings: handler.NewReservationHandler(rooms, reservations, feedback, users),
		Admin:    handler.NewAdminHandler(users, tokens, rooms, reservations, feedback, stats),
	})

	// Background workers: confirmation-event consumer and the sweep that
	// finalizes elapsed reservations.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.NewCompletion(reservations, time.Minute).Run(ctx)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
