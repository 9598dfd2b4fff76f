package session

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sofrahq/sofra/internal/common/config"
)

func TestNewStore(t *testing.T) {
	logger := zap.NewNop()

	t.Run("creates memory storage", func(t *testing.T) {
		cfg := &config.SessionConfig{Type: "memory", TTL: time.Hour}
		store, err := NewStore(logger, cfg)

		assert.NoError(t, err)
		assert.NotNil(t, store)
		_, ok := store.(*MemoryStore)
		assert.True(t, ok)
	})

	t.Run("creates redis storage", func(t *testing.T) {
		mr, err := miniredis.Run()
		if err != nil {
			t.Fatalf("failed to start miniredis: %v", err)
		}
		t.Cleanup(mr.Close)

		cfg := &config.SessionConfig{
			Type:  "redis",
			TTL:   time.Hour,
			Redis: config.SessionRedisConfig{Addr: mr.Addr()},
		}
		store, err := NewStore(logger, cfg)

		assert.NoError(t, err)
		assert.NotNil(t, store)
		_, ok := store.(*RedisStore)
		assert.True(t, ok)
	})

	t.Run("defaults the TTL when unset", func(t *testing.T) {
		cfg := &config.SessionConfig{Type: "memory"}
		store, err := NewStore(logger, cfg)

		assert.NoError(t, err)
		mem := store.(*MemoryStore)
		assert.Equal(t, 24*time.Hour, mem.ttl)
	})

	t.Run("returns error for unsupported type", func(t *testing.T) {
		cfg := &config.SessionConfig{Type: "unsupported"}
		store, err := NewStore(logger, cfg)

		assert.Error(t, err)
		assert.Nil(t, store)
		assert.Contains(t, err.Error(), "unsupported session storage type: unsupported")
	})
}
