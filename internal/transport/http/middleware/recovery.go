package middleware

import (
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardlink/internal/apperr"
	resp "cardlink/internal/transport/http/response"
)

// Recovery panic 兜底：堆栈进日志，客户端拿到统一的错误包
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return ginzap.CustomRecoveryWithZap(l, true, func(c *gin.Context, err any) {
		resp.Abort(c, http.StatusInternalServerError, apperr.CodeServerError, "internal error")
	})
}
