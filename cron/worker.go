package cron

import (
	"context"
	"time"

	"safarexpress/config"
	"safarexpress/services/tasks"
	"safarexpress/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Notifier is told about booking lifecycle changes. Delivery channels are
// out of scope; LogNotifier only records what would be sent.
type Notifier interface {
	BookingCreated(ctx context.Context, p tasks.BookingEventPayload) error
	BookingStatusChanged(ctx context.Context, p tasks.BookingEventPayload) error
}

type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) BookingCreated(_ context.Context, p tasks.BookingEventPayload) error {
	n.Logger.Info("Would notify booking created",
		zap.String("bookingId", p.BookingID),
		zap.String("tripType", p.TripType),
		zap.String("requestId", p.RequestID),
	)
	return nil
}

func (n LogNotifier) BookingStatusChanged(_ context.Context, p tasks.BookingEventPayload) error {
	n.Logger.Info("Would notify booking status change",
		zap.String("bookingId", p.BookingID),
		zap.String("from", p.From),
		zap.String("to", p.To),
	)
	return nil
}

// NewBookingEventMux routes booking tasks to the notifier.
func NewBookingEventMux(n Notifier) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingCreated, handle(n.BookingCreated))
	mux.HandleFunc(tasks.TypeBookingStatusChanged, handle(n.BookingStatusChanged))
	return mux
}

func handle(fn func(context.Context, tasks.BookingEventPayload) error) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseBookingEventPayload(task)
		if err != nil {
			utils.GetLogger().Error("Invalid booking task payload", zap.String("type", task.Type()), zap.Error(err))
			// Malformed payloads will never succeed.
			return asynq.SkipRetry
		}
		return fn(ctx, p)
	}
}

// InitBookingEventWorker runs the async worker in background. The returned
// server must be shut down on exit.
func InitBookingEventWorker(n Notifier) *asynq.Server {
	logger := utils.GetLogger()
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
	})
	mux := NewBookingEventMux(n)

	go func() {
		logger.Info("Starting booking event worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Booking event worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Booking event worker gave up")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}
