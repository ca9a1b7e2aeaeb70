package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cardlink/internal/apperr"
)

// 响应契约：成功 {"data": ...}，失败 {"error": msg, "code": CODE}，
// HTTP 状态码与 code 一一对应，不走一律 200 的老路。

func Data(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"data": data})
}

func OK(c *gin.Context, data any) { Data(c, http.StatusOK, data) }

func Created(c *gin.Context, data any) { Data(c, http.StatusCreated, data) }

func Fail(c *gin.Context, status int, code, msg string) {
	c.JSON(status, gin.H{"error": msg, "code": code})
}

// Abort 中间件拒绝请求用
func Abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code})
}

// Error 把业务错误映射到响应。非 apperr 的错误按 500 处理，
// 细节只进日志（挂到 gin 错误栈由访问日志输出），不向客户端泄漏。
func Error(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		if ae.Err != nil {
			_ = c.Error(ae.Err)
		}
		Fail(c, ae.Status, ae.Code, ae.Msg)
		return
	}
	_ = c.Error(err)
	Fail(c, http.StatusInternalServerError, apperr.CodeServerError, "internal error")
}
