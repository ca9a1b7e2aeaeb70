package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"cardlink/internal/client/places"
	"cardlink/internal/core/auth"
	"cardlink/internal/core/cache"
	"cardlink/internal/core/config"
	"cardlink/internal/core/database"
	"cardlink/internal/core/logger"
	"cardlink/internal/core/mail"
	"cardlink/internal/core/server"
	"cardlink/internal/domain"
	"cardlink/internal/ratelimit"
	"cardlink/internal/repo"
	"cardlink/internal/service"
	"cardlink/internal/transport/http/handler"
	"cardlink/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	_, _ = maxprocs.Set()

	cfg := config.Load("")

	log, closeLog := logger.Build(logger.Options{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		Filename:   cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	defer closeLog()

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("open database failed", zap.Error(err))
	}
	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Profile{},
			&domain.AuditEntry{},
			&domain.PollVote{},
			&domain.Subscriber{},
		); err != nil {
			log.Fatal("auto migrate failed", zap.Error(err))
		}
	}

	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}

	jwter := &auth.JWTer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer}
	mailer := mail.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)

	users := repo.NewUserRepo(db)
	profiles := repo.NewProfileRepo(db)
	polls := repo.NewPollRepo(db)
	subs := repo.NewSubscriberRepo(db)

	userSvc := service.NewUserService(users, jwter)
	handleSvc := service.NewHandleService(profiles)
	profileSvc := service.NewProfileService(profiles, c)
	engageSvc := service.NewEngagementService(profiles, users, polls, subs, mailer, log)

	engine := router.NewAPI(router.APIDeps{
		Log:        log,
		JWTer:      jwter,
		Users:      users,
		CheckLimit: ratelimit.NewMemory(cfg.RateLimit.HandleCheckPerMin, time.Minute),
		Auth:       handler.NewAuthHandler(userSvc),
		Handles:    handler.NewHandleHandler(handleSvc),
		Profiles:   handler.NewProfileHandler(profileSvc),
		Engagement: handler.NewEngagementHandler(engageSvc),
		Places:     handler.NewPlacesHandler(places.New(cfg.Places.APIKey)),
	})

	srv := server.Build(cfg.App.HTTP, engine)
	go func() {
		log.Info("api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
