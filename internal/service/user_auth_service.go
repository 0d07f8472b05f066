package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/spirecart/internal/authz"
	"github.com/spirecart/internal/cache"
	"github.com/spirecart/internal/config"
	"github.com/spirecart/internal/constants"
	"github.com/spirecart/internal/logger"
	"github.com/spirecart/internal/models"
	"github.com/spirecart/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultUserName = "Spire User"

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// UserAuthService 用户认证服务（手机号 + 验证码）
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	sessions *SessionManager
	authz    *authz.Service
	otpHash  []byte
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, sessions *SessionManager, authzService *authz.Service) (*UserAuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(cfg.Auth.OTPCode)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &UserAuthService{
		cfg:      cfg,
		userRepo: userRepo,
		sessions: sessions,
		authz:    authzService,
		otpHash:  hash,
	}, nil
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// LoginInput 登录输入
type LoginInput struct {
	Phone string
	OTP   string
	Name  string
}

// NormalizePhone 去除空格、连字符与 +91 前缀后校验 10 位手机号
func NormalizePhone(phone string) (string, error) {
	normalized := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(phone))
	normalized = strings.TrimPrefix(normalized, "+91")
	if !phonePattern.MatchString(normalized) {
		return "", ErrInvalidPhone
	}
	return normalized, nil
}

// RequestOTP 发送验证码（演示环境不真实发送）
func (s *UserAuthService) RequestOTP(ctx context.Context, phone string) error {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}
	logger.Ctx(ctx).Infow("otp_requested", "phone_suffix", normalized[len(normalized)-4:])
	return nil
}

// Login 校验验证码并登录，首次登录自动注册
func (s *UserAuthService) Login(ctx context.Context, input LoginInput) (*models.User, string, time.Time, error) {
	phone, err := NormalizePhone(input.Phone)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := bcrypt.CompareHashAndPassword(s.otpHash, []byte(strings.TrimSpace(input.OTP))); err != nil {
		return nil, "", time.Time{}, ErrInvalidOTP
	}

	user, err := s.userRepo.GetByPhone(phone)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	if user == nil {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			name = defaultUserName
		}
		user = &models.User{
			Phone:       phone,
			Name:        name,
			Role:        s.resolveRole(phone, constants.UserRoleCustomer),
			LastLoginAt: &now,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, "", time.Time{}, err
		}
		logger.Ctx(ctx).Infow("user_registered", "user_id", user.ID, "role", user.Role)
	} else {
		user.Role = s.resolveRole(phone, user.Role)
		user.LastLoginAt = &now
		if err := s.userRepo.Update(user); err != nil {
			return nil, "", time.Time{}, err
		}
	}

	if s.authz != nil {
		if err := s.authz.SetUserRoles(user.ID, []string{user.Role}); err != nil {
			logger.Ctx(ctx).Warnw("user_role_sync_failed", "user_id", user.ID, "error", err)
		}
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// resolveRole 配置中的运营手机号提升为 operator，其余保持原角色
func (s *UserAuthService) resolveRole(phone, current string) string {
	for _, candidate := range s.cfg.Auth.OperatorPhones {
		if normalized, err := NormalizePhone(candidate); err == nil && normalized == phone {
			return constants.UserRoleOperator
		}
	}
	if strings.TrimSpace(current) == "" {
		return constants.UserRoleCustomer
	}
	return current
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(resolveUserJWTExpireHours(s.cfg.UserJWT)) * time.Hour)
	claims := UserJWTClaims{
		UserID: user.ID,
		Phone:  user.Phone,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token，已登出的 token 视为无效
func (s *UserAuthService) ParseUserJWT(ctx context.Context, tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	revoked, err := cache.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		logger.Ctx(ctx).Warnw("token_revocation_check_failed", "error", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Logout 撤销当前 token 并清理内存会话（购物车随会话丢弃）
func (s *UserAuthService) Logout(ctx context.Context, claims *UserJWTClaims) {
	if claims == nil {
		return
	}
	if claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := cache.RevokeToken(ctx, claims.ID, ttl); err != nil {
			logger.Ctx(ctx).Warnw("token_revoke_failed", "user_id", claims.UserID, "error", err)
		}
	}
	s.sessions.Evict(claims.UserID)
}

// GetUser 获取用户
func (s *UserAuthService) GetUser(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func resolveUserJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 24
	}
	return cfg.ExpireHours
}
