package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/pkg/helpers"
)

// SessionCache remembers which user a session token belongs to. Tokens are
// stable per user, so the mapping only goes stale when the user is deleted.
// The user record itself is never cached. A nil cache or nil Redis is a no-op.
type SessionCache struct {
	Redis  *redis.Client
	TTL    time.Duration
	Logger *logrus.Logger
}

type sessionEntry struct {
	UserID   string `json:"user_id"`
	CachedAt string `json:"cached_at"`
}

func NewSessionCache(rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *SessionCache {
	return &SessionCache{Redis: rdb, TTL: ttl, Logger: logger}
}

// sessionKey hashes the token so raw tokens never land in Redis.
func sessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:token:" + hex.EncodeToString(sum[:])
}

func (c *SessionCache) enabled() bool { return c != nil && c.Redis != nil }

func (c *SessionCache) Lookup(ctx context.Context, token string) (string, bool) {
	if !c.enabled() {
		return "", false
	}
	var entry sessionEntry
	ok, err := helpers.RedisGetJSON(ctx, c.Redis, sessionKey(token), &entry)
	if err != nil {
		if c.Logger != nil {
			c.Logger.WithError(err).Warn("session cache lookup failed")
		}
		return "", false
	}
	if !ok || entry.UserID == "" {
		return "", false
	}
	return entry.UserID, true
}

func (c *SessionCache) Store(ctx context.Context, token, userID string) {
	if !c.enabled() {
		return
	}
	entry := sessionEntry{UserID: userID, CachedAt: time.Now().UTC().Format(time.RFC3339Nano)}
	if err := helpers.RedisSetJSON(ctx, c.Redis, sessionKey(token), entry, c.TTL); err != nil && c.Logger != nil {
		c.Logger.WithError(err).WithField("user_id", userID).Warn("session cache store failed")
	}
}

func (c *SessionCache) Forget(ctx context.Context, token string) {
	if !c.enabled() || token == "" {
		return
	}
	if err := helpers.RedisDel(ctx, c.Redis, sessionKey(token)); err != nil && c.Logger != nil {
		c.Logger.WithError(err).Warn("session cache delete failed")
	}
}
