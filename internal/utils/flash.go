package utils

import (
	"context"       // Context for Redis operations
	"crypto/rand"   // Random flash session IDs
	"encoding/hex"  // Hex encoding for the cookie value
	"encoding/json" // JSON encoding/decoding
	"time"          // TTL for unread flashes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// FlashCookie names the cookie identifying the browser's flash queue.
// It is separate from the session cookie so that flashes survive on the
// login page, where no authenticated session exists yet.
const FlashCookie = "flash_session"

// Unread flashes expire rather than pile up for abandoned sessions.
const flashTTL = 10 * time.Minute

// Flash is a one-time, redirect-surviving user-facing status message.
type Flash struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

// flashKey returns the redis key for this browser's flash queue,
// minting the identifying cookie when absent. The minted key is cached on
// the context so repeated calls within one request share a queue.
func flashKey(c *gin.Context) string {
	if v, ok := c.Get("flashKey"); ok {
		return v.(string)
	}
	id, err := c.Cookie(FlashCookie)
	if err != nil || id == "" {
		buf := make([]byte, 16)
		_, _ = rand.Read(buf)
		id = hex.EncodeToString(buf)
		c.SetCookie(FlashCookie, id, int(flashTTL.Seconds()), "/", "", false, true)
	}
	key := "flash:" + id
	c.Set("flashKey", key)
	return key
}

// SetFlash appends a flash message to the browser's queue
func SetFlash(ctx context.Context, rdb *redis.Client, c *gin.Context, kind, message string) error {
	key := flashKey(c)
	var flashes []Flash
	val, err := rdb.Get(ctx, key).Result()
	if err == nil {
		_ = json.Unmarshal([]byte(val), &flashes)
	} else if err != redis.Nil {
		return err
	}
	flashes = append(flashes, Flash{Kind: kind, Message: message})
	b, err := json.Marshal(flashes)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, flashTTL).Err()
}

// PopFlashes returns the queued flash messages and clears the queue,
// so each message is rendered exactly once.
func PopFlashes(ctx context.Context, rdb *redis.Client, c *gin.Context) []Flash {
	key := flashKey(c)
	val, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal([]byte(val), &flashes); err != nil {
		return nil
	}
	_ = rdb.Del(ctx, key).Err()
	return flashes
}
