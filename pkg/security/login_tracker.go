package security

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"ergasia-marketplace/pkg/logger"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before a block (default: 5)
	AttemptWindow time.Duration // window the attempts are counted in (default: 15min)
	BlockDuration time.Duration // block length once MaxAttempts is reached (default: 15min)
}

func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// LoginTracker counts failed face logins per client address and blocks the
// address once the limit is reached. State lives in Redis when a client is
// given and in process memory otherwise.
type LoginTracker struct {
	client *goredis.Client
	config LoginTrackerConfig
	now    func() time.Time

	mu       sync.Mutex
	attempts map[string]*attemptEntry
	blocks   map[string]time.Time
}

type attemptEntry struct {
	count   int
	resetAt time.Time
}

// Redis key patterns
const (
	failLoginPrefix    = "fail:face:ip:"
	blockedLoginPrefix = "blocked:face:ip:"
)

// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns the new count.
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

func NewLoginTracker(client *goredis.Client, config LoginTrackerConfig) *LoginTracker {
	def := DefaultLoginTrackerConfig()
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = def.MaxAttempts
	}
	if config.AttemptWindow <= 0 {
		config.AttemptWindow = def.AttemptWindow
	}
	if config.BlockDuration <= 0 {
		config.BlockDuration = def.BlockDuration
	}
	return &LoginTracker{
		client:   client,
		config:   config,
		now:      time.Now,
		attempts: map[string]*attemptEntry{},
		blocks:   map[string]time.Time{},
	}
}

// IsBlocked reports whether ip is blocked and for how much longer.
func (lt *LoginTracker) IsBlocked(ctx context.Context, ip string) (bool, time.Duration, error) {
	if lt.client != nil {
		ttl, err := lt.client.TTL(ctx, blockedLoginPrefix+ip).Result()
		if err != nil {
			return false, 0, fmt.Errorf("failed to check IP block: %w", err)
		}
		if ttl <= 0 {
			return false, 0, nil
		}
		return true, ttl, nil
	}

	lt.mu.Lock()
	defer lt.mu.Unlock()
	until, ok := lt.blocks[ip]
	if !ok {
		return false, 0, nil
	}
	left := until.Sub(lt.now())
	if left <= 0 {
		delete(lt.blocks, ip)
		return false, 0, nil
	}
	return true, left, nil
}

// RecordFailedAttempt counts a failed login and blocks ip when the limit is
// reached. Returns (blocked, currentAttempts, error).
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, ip, requestID string) (bool, int, error) {
	var count int
	if lt.client != nil {
		var err error
		count, err = lt.atomicIncrement(ctx, failLoginPrefix+ip, int(lt.config.AttemptWindow.Seconds()))
		if err != nil {
			return false, 0, fmt.Errorf("failed to increment attempts: %w", err)
		}
	} else {
		count = lt.incrementMemory(ip)
	}

	logger.Log.Warn("Face login failed", "rid", requestID, "ip", ip, "attempts", count)

	if count < lt.config.MaxAttempts {
		return false, count, nil
	}
	if err := lt.createBlock(ctx, ip); err != nil {
		return true, count, fmt.Errorf("failed to create block: %w", err)
	}
	logger.Log.Warn("Face login blocked",
		"rid", requestID,
		"ip", ip,
		"duration_minutes", int(lt.config.BlockDuration.Minutes()),
	)
	return true, count, nil
}

// ClearAttempts resets the counter after a successful login.
func (lt *LoginTracker) ClearAttempts(ctx context.Context, ip string) error {
	if lt.client != nil {
		if err := lt.client.Del(ctx, failLoginPrefix+ip).Err(); err != nil {
			return fmt.Errorf("failed to clear attempts: %w", err)
		}
		return nil
	}
	lt.mu.Lock()
	delete(lt.attempts, ip)
	lt.mu.Unlock()
	return nil
}

// Sweep drops expired in-memory counters and blocks.
func (lt *LoginTracker) Sweep(_ context.Context) (int, error) {
	now := lt.now()
	removed := 0
	lt.mu.Lock()
	defer lt.mu.Unlock()
	for ip, e := range lt.attempts {
		if now.After(e.resetAt) {
			delete(lt.attempts, ip)
			removed++
		}
	}
	for ip, until := range lt.blocks {
		if now.After(until) {
			delete(lt.blocks, ip)
			removed++
		}
	}
	return removed, nil
}

func (lt *LoginTracker) atomicIncrement(ctx context.Context, key string, ttlSeconds int) (int, error) {
	result, err := lt.client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

func (lt *LoginTracker) incrementMemory(ip string) int {
	now := lt.now()
	lt.mu.Lock()
	defer lt.mu.Unlock()
	e, ok := lt.attempts[ip]
	if !ok || now.After(e.resetAt) {
		e = &attemptEntry{resetAt: now.Add(lt.config.AttemptWindow)}
		lt.attempts[ip] = e
	}
	e.count++
	return e.count
}

func (lt *LoginTracker) createBlock(ctx context.Context, ip string) error {
	if lt.client != nil {
		pipe := lt.client.TxPipeline()
		pipe.Set(ctx, blockedLoginPrefix+ip, "1", lt.config.BlockDuration)
		pipe.Del(ctx, failLoginPrefix+ip)
		_, err := pipe.Exec(ctx)
		return err
	}
	lt.mu.Lock()
	lt.blocks[ip] = lt.now().Add(lt.config.BlockDuration)
	delete(lt.attempts, ip)
	lt.mu.Unlock()
	return nil
}
