package session

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sofrahq/sofra/internal/common/config"
)

// NewStore creates a new session store based on configuration
func NewStore(logger *zap.Logger, cfg *config.SessionConfig) (Store, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	logger.Info("Initializing session storage",
		zap.String("type", cfg.Type),
		zap.Duration("ttl", ttl))

	switch cfg.Type {
	case "memory":
		return NewMemoryStore(ttl), nil
	case "redis":
		return NewRedisStore(&cfg.Redis, ttl)
	default:
		return nil, fmt.Errorf("unsupported session storage type: %s", cfg.Type)
	}
}
