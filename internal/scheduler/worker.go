package scheduler

import (
	"context"
	"fmt"

	"buildcare_site/internal/email"
	"buildcare_site/platform/config"
	"buildcare_site/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	sender  email.Sender
	staffTo string
	log     *logger.Logger
}

// WorkerConfig combines the settings the worker reads.
type WorkerConfig interface {
	config.SchedulerConfig
	GetStaffNotifyEmail() string
}

func NewWorker(cfg WorkerConfig, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		sender:  sender,
		staffTo: cfg.GetStaffNotifyEmail(),
		log:     log,
	}

	mux.HandleFunc(TaskInquiryNotify, w.handleInquiryNotify)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleInquiryNotify(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseInquiryNotifyPayload(task)
	if err != nil {
		// A payload that cannot be decoded will never succeed.
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	if w.staffTo == "" {
		w.log.Warn("staff notify email not configured, dropping notification", "inquiryId", payload.InquiryID)
		return nil
	}

	if err := w.sender.SendInquiryNotification(ctx, w.staffTo, NotificationFromPayload(payload)); err != nil {
		w.log.Error("inquiry notification failed", "inquiryId", payload.InquiryID, "error", err)
		return err
	}

	w.log.Info("inquiry notification sent", "inquiryId", payload.InquiryID)
	return nil
}

// NotificationFromPayload maps a task payload to the email it produces.
func NotificationFromPayload(p InquiryNotifyPayload) email.InquiryNotification {
	return email.InquiryNotification{
		InquiryID:   p.InquiryID,
		ReceivedAt:  p.ReceivedAt,
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		Company:     p.Company,
		Service:     p.Service,
		ProjectType: p.ProjectType,
		Message:     p.Message,
		FileName:    p.FileName,
		Language:    p.Language,
	}
}
