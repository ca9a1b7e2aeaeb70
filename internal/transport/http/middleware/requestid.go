package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// KeyRequestID 请求 ID 的上下文键，同名响应头回传给调用方
const KeyRequestID = "X-Request-ID"

const maxInboundIDLen = 64

// RequestID 透传上游（网关/负载均衡）带来的请求 ID，没有或过长则自己生成
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(KeyRequestID)
		if rid == "" || len(rid) > maxInboundIDLen {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		c.Next()
	}
}
