// Package confirm implements the email confirmation code workflow: issuing
// short-lived numeric codes and matching them against user submissions.
package confirm

import (
	"context"
	"math/rand/v2"
	"strconv"
	"time"

	"bookshelf/internal/cache"
)

const codeKeyPrefix = "confirm_code:"

const (
	// CodeTTL is how long an issued code stays valid.
	CodeTTL = 24 * time.Hour
	// CodeMin and CodeMax bound the 6-digit code range.
	CodeMin = 100000
	CodeMax = 999999
)

// Store keeps at most one live confirmation code per email. A new Set
// overwrites the previous code and restarts its TTL. Absence on Get is a
// normal outcome (expired, never issued, or wrong email), not an error. A
// failed Set IS an error: the mailed code must never outrun the stored one,
// so writes bypass the cache wrapper's fail-safe mode.
type Store interface {
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, bool)
}

type cacheClient interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetStrict(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisStore backs Store with the shared redis cache.
type RedisStore struct {
	cache cacheClient
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a code store on top of the redis wrapper.
func NewRedisStore(c *cache.Client) *RedisStore {
	return &RedisStore{cache: c}
}

// Set writes the code under the email key, replacing any previous entry.
// Redis failures surface so the caller can abort before sending the mail.
func (s *RedisStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.cache.SetStrict(ctx, codeKeyPrefix+email, []byte(code), ttl)
}

// Get returns the live code for the email, or ok=false when none exists.
func (s *RedisStore) Get(ctx context.Context, email string) (string, bool) {
	data, err := s.cache.Get(ctx, codeKeyPrefix+email)
	if err != nil || data == nil {
		return "", false
	}
	return string(data), true
}

// GenerateCode returns a random 6-digit code as a string.
func GenerateCode() string {
	return strconv.Itoa(rand.IntN(CodeMax-CodeMin+1) + CodeMin)
}
