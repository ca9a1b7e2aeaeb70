package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardlink/internal/core/auth"
	"cardlink/internal/domain"
	"cardlink/internal/transport/http/handler"
	"cardlink/internal/transport/http/middleware"
)

// AdminDeps 管理端 API 的依赖集合
type AdminDeps struct {
	Log   *zap.Logger
	JWTer *auth.JWTer
	Users domain.UserRepository

	Admin *handler.AdminHandler
}

func NewAdmin(d AdminDeps) *gin.Engine {
	e := gin.New()
	e.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Log),
		middleware.AccessLog(d.Log),
		middleware.Metrics(),
		middleware.MaxBodyBytes(1<<20),
		middleware.Timeout(15*time.Second),
		middleware.RateLimit(50, 100),
		middleware.ConcurrencyLimit(128),
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	e.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	session := middleware.Session(d.JWTer, d.Users)

	admin := e.Group("/admin", session)
	{
		// 退出模拟只要登录即可：此刻的会话身份是被模拟的普通用户
		admin.POST("/impersonate/exit", d.Admin.ExitImpersonation)

		guarded := admin.Group("", middleware.RequireAdmin())
		{
			guarded.GET("/users", d.Admin.ListUsers)
			guarded.GET("/users/:id", d.Admin.GetUser)
			guarded.PUT("/users/:id", d.Admin.UpdateUser)
			guarded.DELETE("/users/:id", d.Admin.DeleteUser)
			guarded.POST("/users/:id/impersonate", d.Admin.Impersonate)

			guarded.GET("/profiles", d.Admin.ListProfiles)
			guarded.DELETE("/profiles/:slug", d.Admin.DeleteProfile)
			guarded.PUT("/profiles/:slug/limit", d.Admin.SetCardLimit)

			guarded.GET("/audit", d.Admin.AuditLog)
		}
	}

	return e
}
