package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func revokedTokenKey(tokenID string) string {
	return fmt.Sprintf("auth:revoked:%s", strings.TrimSpace(tokenID))
}

// RevokeToken 记录已登出的 token，直至其自然过期
func RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if !Enabled() || strings.TrimSpace(tokenID) == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return redisClient.Set(ctx, buildKey(revokedTokenKey(tokenID)), "1", ttl).Err()
}

// IsTokenRevoked 判断 token 是否已登出
// Redis 未启用时视为未撤销
func IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if !Enabled() || strings.TrimSpace(tokenID) == "" {
		return false, nil
	}
	n, err := redisClient.Exists(ctx, buildKey(revokedTokenKey(tokenID))).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
