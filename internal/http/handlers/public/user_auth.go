package public

import (
	"errors"

	"github.com/spirecart/internal/constants"
	handlershared "github.com/spirecart/internal/http/handlers/shared"
	"github.com/spirecart/internal/http/response"
	"github.com/spirecart/internal/models"
	"github.com/spirecart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// RequestOTPRequest 发送验证码请求
type RequestOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// LoginRequest 验证码登录请求
type LoginRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
	Name  string `json:"name"`
}

// RequestOTP 发送验证码
func (h *Handler) RequestOTP(c *gin.Context) {
	var req RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.UserAuthService.RequestOTP(c.Request.Context(), req.Phone); err != nil {
		respondLoginError(c, err)
		return
	}
	response.Success(c, gin.H{"sent": true})
}

// Login 验证码登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(c.Request.Context(), service.LoginInput{
		Phone: req.Phone,
		OTP:   req.OTP,
		Name:  req.Name,
	})
	h.recordLogin(c, req.Phone, user, err)
	if err != nil {
		respondLoginError(c, err)
		return
	}

	response.Success(c, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	})
}

// recordLogin 写入登录日志，失败仅告警
func (h *Handler) recordLogin(c *gin.Context, phone string, user *models.User, loginErr error) {
	input := service.RecordUserLoginInput{
		Phone:     phone,
		Status:    constants.LoginLogStatusSuccess,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString("request_id"),
	}
	if user != nil {
		input.UserID = user.ID
	}
	if loginErr != nil {
		input.Status = constants.LoginLogStatusFailed
		input.FailReason = service.LoginFailReason(loginErr)
	}
	if err := h.UserLoginLogService.Record(input); err != nil {
		handlershared.RequestLog(c).Warnw("user_login_log_record_failed", "error", err)
	}
}

// RecordRateLimitedLogin 登录被限流时记录失败日志
func (h *Handler) RecordRateLimitedLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		return
	}
	h.recordLogin(c, req.Phone, nil, service.ErrLoginRateLimited)
}

// Logout 登出：撤销 token 并丢弃内存会话
func (h *Handler) Logout(c *gin.Context) {
	value, ok := c.Get(handlershared.ContextUserClaimsKey)
	if !ok {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	claims, ok := value.(*service.UserJWTClaims)
	if !ok {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	h.UserAuthService.Logout(c.Request.Context(), claims)
	response.Success(c, gin.H{"logged_out": true})
}

// GetMe 当前用户信息
func (h *Handler) GetMe(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUser(uid)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	defaultAddress, hasDefault := h.AddressService.Default(c.Request.Context(), uid)
	data := gin.H{"user": user}
	if hasDefault {
		data["default_address"] = defaultAddress
	}
	data["is_operator"] = user.Role == constants.UserRoleOperator
	response.Success(c, data)
}
