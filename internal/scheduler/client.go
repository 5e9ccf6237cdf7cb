package scheduler

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"buildcare_site/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// notifyMaxRetry bounds redelivery of one notification.
const notifyMaxRetry = 10

type Client struct {
	client *asynq.Client
	queue  string
}

// InquiryNotifier queues staff notifications.
type InquiryNotifier interface {
	EnqueueInquiryNotification(ctx context.Context, payload InquiryNotifyPayload) error
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueInquiryNotification queues one notification per inquiry. A second
// enqueue for the same inquiry id is a no-op.
func (c *Client) EnqueueInquiryNotification(ctx context.Context, payload InquiryNotifyPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewInquiryNotifyTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(notifyMaxRetry),
		asynq.TaskID(TaskInquiryNotify+":"+payload.InquiryID),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

func queueName(cfg config.SchedulerConfig) string {
	if queue := cfg.GetAsynqQueueName(); queue != "" {
		return queue
	}
	return "default"
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
