package scheduler

import (
	"context"
	"fmt"

	"guesthouse_backend/internal/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues assessment refresh tasks.
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient creates an asynq client from the Redis configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.AsynqQueueName
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueAssessmentRefresh schedules a baseline recompute for a guesthouse.
func (c *Client) EnqueueAssessmentRefresh(ctx context.Context, payload AssessmentRefreshPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewAssessmentRefreshTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
