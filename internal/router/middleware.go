package router

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/spirecart/internal/authz"
	"github.com/spirecart/internal/config"
	handlershared "github.com/spirecart/internal/http/handlers/shared"
	"github.com/spirecart/internal/http/response"
	"github.com/spirecart/internal/logger"
	"github.com/spirecart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// UserTokenParser 解析用户 token
type UserTokenParser interface {
	ParseUserJWT(ctx context.Context, tokenString string) (*service.UserJWTClaims, error)
}

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			requestIDHeader,
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", requestIDHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
// request_id 同时写入请求 context，服务层日志自动携带
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.WithContextFields(c.Request.Context(), requestIDKey, requestID))
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if uid, ok := c.Get(handlershared.ContextUserIDKey); ok {
			entry = entry.With("user_id", uid)
		}
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

// RecoveryMiddleware panic 恢复，返回统一错误结构
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Ctx(c.Request.Context()).Errorw("request_panic",
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		handlershared.AbortWithError(c, response.CodeInternal, handlershared.T("error.internal"))
	})
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// UserJWTAuthMiddleware 用户 JWT 鉴权中间件
func UserJWTAuthMiddleware(secretKey string, parser UserTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			handlershared.AbortWithError(c, response.CodeUnauthorized, handlershared.T("error.jwt_secret_missing"))
			return
		}
		if parser == nil {
			handlershared.AbortWithError(c, response.CodeUnauthorized, handlershared.T("error.token_invalid"))
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			handlershared.AbortWithError(c, response.CodeUnauthorized, handlershared.T("error.auth_header_missing"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			handlershared.AbortWithError(c, response.CodeUnauthorized, handlershared.T("error.auth_header_invalid"))
			return
		}

		claims, err := parser.ParseUserJWT(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil || claims == nil || claims.UserID == 0 {
			handlershared.AbortWithError(c, response.CodeUnauthorized, handlershared.T("error.token_invalid"))
			return
		}

		c.Set(handlershared.ContextUserIDKey, claims.UserID)
		c.Set(handlershared.ContextUserClaimsKey, claims)
		c.Request = c.Request.WithContext(logger.WithContextFields(c.Request.Context(), "user_id", claims.UserID))
		c.Next()
	}
}

// UserRBACMiddleware 运营接口 RBAC 鉴权中间件
func UserRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("user_rbac_service_unavailable")
			handlershared.AbortWithError(c, response.CodeUnauthorized, handlershared.T("error.unauthorized"))
			return
		}

		userID := c.GetUint(handlershared.ContextUserIDKey)
		if userID == 0 {
			handlershared.AbortWithError(c, response.CodeUnauthorized, handlershared.T("error.unauthorized"))
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceUser(userID, resource, c.Request.Method)
		if err != nil {
			logger.Ctx(c.Request.Context()).Errorw("user_rbac_enforce_failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			handlershared.AbortWithError(c, response.CodeUnauthorized, handlershared.T("error.unauthorized"))
			return
		}
		if !allowed {
			logger.Ctx(c.Request.Context()).Warnw("user_rbac_permission_denied",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			handlershared.AbortWithError(c, response.CodeForbidden, handlershared.T("error.forbidden"))
			return
		}

		c.Next()
	}
}
