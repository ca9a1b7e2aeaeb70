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

	"cardlink/internal/core/auth"
	"cardlink/internal/core/config"
	"cardlink/internal/core/database"
	"cardlink/internal/core/logger"
	"cardlink/internal/core/server"
	"cardlink/internal/repo"
	"cardlink/internal/service"
	"cardlink/internal/transport/http/handler"
	"cardlink/internal/transport/http/router"
)

// 管理端单独一个进程，监听独立端口，方便在网络层只对内网开放
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

	jwter := &auth.JWTer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer}

	users := repo.NewUserRepo(db)
	profiles := repo.NewProfileRepo(db)
	audit := repo.NewAuditRepo(db)

	adminSvc := service.NewAdminService(users, profiles, audit, jwter, log, cfg.App.Admin.AllowAdminModify)

	engine := router.NewAdmin(router.AdminDeps{
		Log:   log,
		JWTer: jwter,
		Users: users,
		Admin: handler.NewAdminHandler(adminSvc),
	})

	srv := server.Build(config.HTTP{Host: cfg.App.Admin.Host, Port: cfg.App.Admin.Port}, engine)
	go func() {
		log.Info("admin listening", zap.String("addr", srv.Addr))
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
