package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardlink/internal/apperr"
	"cardlink/internal/core/auth"
	"cardlink/internal/domain"
	resp "cardlink/internal/transport/http/response"
)

// 鉴权上下文键
const (
	KeyUserID       = "userId"
	KeyRole         = "role"
	KeyImpersonator = "impersonatorId"
)

// Session 会话门禁。cookie 取令牌 → 验签 → 按 ID 实时查库。
// 角色/停用状态一律以库为准，不信任令牌里的任何声明——
// 管理员被降权或账号被停用要立刻生效，不等令牌过期。
func Session(jwter *auth.JWTer, users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(auth.CookieName)
		if err != nil || tokenStr == "" {
			resp.Abort(c, http.StatusUnauthorized, apperr.CodeNoToken, "Not authenticated")
			return
		}
		claims, err := jwter.Parse(tokenStr)
		if err != nil {
			resp.Abort(c, http.StatusUnauthorized, apperr.CodeBadToken, "Invalid or expired token")
			return
		}

		u, err := users.FindByID(claims.UID)
		if err != nil {
			// 查库失败是基础设施故障，和鉴权拒绝区分开
			_ = c.Error(err)
			resp.Abort(c, http.StatusInternalServerError, apperr.CodeServerError, "internal error")
			return
		}
		if u == nil {
			// 令牌还没过期但账号已删
			resp.Abort(c, http.StatusUnauthorized, apperr.CodeUserNotFound, "User not found")
			return
		}
		if u.IsSuspended {
			resp.Abort(c, http.StatusUnauthorized, apperr.CodeAccountSuspended, "Account suspended")
			return
		}

		c.Set(KeyUserID, u.ID)
		c.Set(KeyRole, u.Role)
		if claims.Imp != "" {
			c.Set(KeyImpersonator, claims.Imp)
		}
		c.Next()
	}
}

// RequireAdmin 管理员门禁，只能挂在 Session 之后。
// 先查模拟标记再查角色：被模拟会话即使目标实时角色是 admin 也要拦下，
// 且错误码要让对方知道是因为在模拟会话里，而不是笼统的 forbidden。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(KeyImpersonator) != "" {
			resp.Abort(c, http.StatusForbidden, apperr.CodeImpersonatedSession,
				"Admin actions are not allowed in an impersonated session")
			return
		}
		if c.GetString(KeyRole) != domain.RoleAdmin {
			resp.Abort(c, http.StatusForbidden, apperr.CodeForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}
