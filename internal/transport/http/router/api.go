package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"cardlink/internal/core/auth"
	"cardlink/internal/domain"
	"cardlink/internal/ratelimit"
	"cardlink/internal/transport/http/handler"
	"cardlink/internal/transport/http/middleware"
)

// APIDeps 面向访客与登录用户的公开 API 的依赖集合
type APIDeps struct {
	Log        *zap.Logger
	JWTer      *auth.JWTer
	Users      domain.UserRepository
	CheckLimit ratelimit.Limiter // handle 可用性查询的每 IP 限速

	Auth       *handler.AuthHandler
	Handles    *handler.HandleHandler
	Profiles   *handler.ProfileHandler
	Engagement *handler.EngagementHandler
	Places     *handler.PlacesHandler
}

func NewAPI(d APIDeps) *gin.Engine {
	e := gin.New()
	e.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Log),
		middleware.AccessLog(d.Log),
		middleware.Metrics(),
		middleware.MaxBodyBytes(1<<20),
		middleware.Timeout(15*time.Second),
		middleware.RateLimit(200, 400),
		middleware.ConcurrencyLimit(512),
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	e.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	e.GET("/metrics", gin.WrapH(promhttp.Handler()))

	session := middleware.Session(d.JWTer, d.Users)

	authGrp := e.Group("/auth")
	{
		authGrp.POST("/register", d.Auth.Register)
		authGrp.POST("/login", d.Auth.Login)
		authGrp.POST("/logout", d.Auth.Logout)
		authGrp.GET("/me", session, d.Auth.Me)
	}

	handles := e.Group("/handles")
	{
		// 公开查询，限速挡在鉴权之前的匿名流量
		handles.GET("/check", middleware.PerIPWindow(d.CheckLimit), d.Handles.Check)
		handles.POST("/claim", session, d.Handles.Claim)
		handles.GET("/mine", session, d.Handles.Mine)
	}

	profiles := e.Group("/profiles")
	{
		profiles.GET("", session, d.Profiles.List)
		profiles.POST("", session, d.Profiles.Create)
		profiles.GET("/:slug", d.Profiles.GetPublic)
		profiles.PUT("/:slug", session, d.Profiles.Update)
		profiles.DELETE("/:slug", session, d.Profiles.Delete)
	}

	polls := e.Group("/polls")
	{
		polls.GET("/:slug/:cardId", d.Engagement.PollResults)
		polls.POST("/vote", d.Engagement.Vote)
	}

	// 表单会外发邮件，按 IP 再收紧一档
	forms := e.Group("/forms", middleware.RateLimitPerIP(rate.Every(2*time.Second), 5))
	{
		forms.POST("/contact", d.Engagement.Contact)
		forms.POST("/subscribe", d.Engagement.Subscribe)
	}

	// 外部地点查询走服务端代理，要求登录，防止被白嫖配额
	e.GET("/places/details", session, d.Places.Details)

	return e
}
