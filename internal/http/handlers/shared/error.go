package shared

import (
	"github.com/spirecart/internal/http/response"
	"github.com/spirecart/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	return logger.Ctx(c.Request.Context())
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	appErr := response.WrapError(code, T(key), err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// AbortWithError 中断请求并返回错误响应（中间件使用）。
func AbortWithError(c *gin.Context, code int, msg string) {
	response.Abort(c, response.WrapError(code, msg, nil))
}
