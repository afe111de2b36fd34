package queue

import (
	"strings"

	"quizgen-platform/internal/config"

	"github.com/hibiken/asynq"
)

// RedisOpt builds the asynq connection options from configuration. REDIS_URL
// may be a bare host:port or a redis:// URI.
func RedisOpt(cfg *config.Config) (asynq.RedisConnOpt, error) {
	if strings.HasPrefix(cfg.RedisURL, "redis://") || strings.HasPrefix(cfg.RedisURL, "rediss://") {
		return asynq.ParseRedisURI(cfg.RedisURL)
	}
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}
