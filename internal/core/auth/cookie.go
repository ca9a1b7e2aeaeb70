package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieName 会话 cookie 名
const CookieName = "token"

// SetAuthCookie 写入会话 cookie：HttpOnly + Secure + SameSite=Lax，path=/
func SetAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(SessionTTL/time.Second), "/", "", true, true)
}

// ClearAuthCookie 用过期 cookie 覆盖实现登出
func ClearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", true, true)
}
