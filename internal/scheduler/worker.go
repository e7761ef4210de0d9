package scheduler

import (
	"context"
	"errors"
	"fmt"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/email"
	"horse_portal_backend/platform/config"
	"horse_portal_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server     *asynq.Server
	mux        *asynq.ServeMux
	assets     contentstore.AssetStore
	mailer     email.Sender
	adminEmail string
	log        *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, assets contentstore.AssetStore, mailer email.Sender, adminEmail string, log *logger.Logger) (*Worker, error) {
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

	w := newWorker(assets, mailer, adminEmail, log)
	w.server = server
	return w, nil
}

func newWorker(assets contentstore.AssetStore, mailer email.Sender, adminEmail string, log *logger.Logger) *Worker {
	w := &Worker{
		mux:        asynq.NewServeMux(),
		assets:     assets,
		mailer:     mailer,
		adminEmail: adminEmail,
		log:        log,
	}
	w.mux.HandleFunc(TaskAssetsCleanup, w.handleAssetsCleanup)
	w.mux.HandleFunc(TaskListingNotify, w.handleListingNotify)
	return w
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

// handleAssetsCleanup deletes every listed asset. Failed ids are retried with the task.
func (w *Worker) handleAssetsCleanup(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAssetsCleanupPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	var errs []error
	for _, id := range payload.AssetIDs {
		if err := w.assets.Delete(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	w.log.Info("orphaned assets removed", "count", len(payload.AssetIDs), "reason", payload.Reason)
	return nil
}

func (w *Worker) handleListingNotify(ctx context.Context, task *asynq.Task) error {
	if w.adminEmail == "" {
		return nil
	}

	payload, err := ParseListingNotifyPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	return w.mailer.SendListingSubmitted(ctx, w.adminEmail, email.ListingNotice{
		Kind:       payload.Kind,
		DocumentID: payload.DocumentID,
		UserID:     payload.UserID,
		Type:       payload.Type,
		NameEn:     payload.NameEn,
		NameAr:     payload.NameAr,
		Edited:     payload.Edited,
	})
}
