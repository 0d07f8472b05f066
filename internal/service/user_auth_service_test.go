package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spirecart/internal/authz"
	"github.com/spirecart/internal/config"
	"github.com/spirecart/internal/constants"
	"github.com/spirecart/internal/repository"
)

func newUserAuthTestService(t *testing.T) (*UserAuthService, *SessionManager, *authz.Service) {
	t.Helper()
	db := setupServiceTestDB(t)
	authzService, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	cfg := &config.Config{
		UserJWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 2},
		Auth:    config.AuthConfig{OTPCode: "12345", OperatorPhones: []string{"+91 99999-00000"}},
	}
	sessions := NewSessionManager(nil, nil, nil)
	svc, err := NewUserAuthService(cfg, repository.NewUserRepository(db), sessions, authzService)
	if err != nil {
		t.Fatalf("new user auth service failed: %v", err)
	}
	return svc, sessions, authzService
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"9876543210":      "9876543210",
		" 98765 43210 ":   "9876543210",
		"+91 98765-43210": "9876543210",
		"+919876543210":   "9876543210",
	}
	for raw, want := range cases {
		got, err := NormalizePhone(raw)
		if err != nil || got != want {
			t.Fatalf("NormalizePhone(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	for _, raw := range []string{"", "12345", "98765432101", "98765abcde"} {
		if _, err := NormalizePhone(raw); !errors.Is(err, ErrInvalidPhone) {
			t.Fatalf("expected ErrInvalidPhone for %q, got %v", raw, err)
		}
	}
}

func TestUserAuthLoginCreatesUserOnFirstLogin(t *testing.T) {
	svc, _, _ := newUserAuthTestService(t)
	ctx := context.Background()

	user, token, expiresAt, err := svc.Login(ctx, LoginInput{Phone: "9876543210", OTP: "12345"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID == 0 || user.Name != "Spire User" || user.Role != constants.UserRoleCustomer {
		t.Fatalf("unexpected user: %+v", user)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("expected token and expiry")
	}

	again, _, _, err := svc.Login(ctx, LoginInput{Phone: "+91 98765 43210", OTP: "12345", Name: "Other"})
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if again.ID != user.ID || again.Name != "Spire User" {
		t.Fatalf("expected same user on second login, got %+v", again)
	}
	if again.LastLoginAt == nil {
		t.Fatalf("expected last login time")
	}

	claims, err := svc.ParseUserJWT(ctx, token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Phone != "9876543210" || claims.ID == "" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestUserAuthLoginRejectsBadInput(t *testing.T) {
	svc, _, _ := newUserAuthTestService(t)
	ctx := context.Background()

	if _, _, _, err := svc.Login(ctx, LoginInput{Phone: "12345", OTP: "12345"}); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
	if _, _, _, err := svc.Login(ctx, LoginInput{Phone: "9876543210", OTP: "00000"}); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
	reasons := map[error]string{
		ErrInvalidOTP:         constants.LoginLogFailReasonInvalidOTP,
		ErrInvalidPhone:       constants.LoginLogFailReasonInvalidPhone,
		ErrLoginRateLimited:   constants.LoginLogFailReasonRateLimited,
		errors.New("db down"): constants.LoginLogFailReasonInternalError,
	}
	for err, want := range reasons {
		if reason := LoginFailReason(err); reason != want {
			t.Fatalf("LoginFailReason(%v) = %s, want %s", err, reason, want)
		}
	}
	if reason := LoginFailReason(nil); reason != "" {
		t.Fatalf("expected empty reason for nil error, got %s", reason)
	}
}

func TestUserAuthOperatorRole(t *testing.T) {
	svc, _, authzService := newUserAuthTestService(t)

	user, _, _, err := svc.Login(context.Background(), LoginInput{Phone: "9999900000", OTP: "12345"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Role != constants.UserRoleOperator {
		t.Fatalf("expected operator role, got %s", user.Role)
	}
	allow, err := authzService.EnforceUser(user.ID, "/api/v1/admin/users/1/orders", "GET")
	if err != nil || !allow {
		t.Fatalf("expected operator authorized, got allow=%v err=%v", allow, err)
	}
}

func TestUserAuthParseRejectsTamperedToken(t *testing.T) {
	svc, _, _ := newUserAuthTestService(t)
	ctx := context.Background()

	_, token, _, err := svc.Login(ctx, LoginInput{Phone: "9876543210", OTP: "12345"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := svc.ParseUserJWT(ctx, token+"x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestUserAuthLogoutEvictsSession(t *testing.T) {
	svc, sessions, _ := newUserAuthTestService(t)
	ctx := context.Background()

	user, token, _, err := svc.Login(ctx, LoginInput{Phone: "9876543210", OTP: "12345"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	sessions.Get(ctx, user.ID)
	claims, err := svc.ParseUserJWT(ctx, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	svc.Logout(ctx, claims)
	if _, ok := sessions.Peek(user.ID); ok {
		t.Fatalf("expected session evicted on logout")
	}
}
