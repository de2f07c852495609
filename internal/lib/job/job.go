// Package job runs background work on asynq, a Redis-backed queue.
//
// The API enqueues tasks through Client; the worker server started by
// Start pulls them from Redis and runs the registered handlers.
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/placesapi/placesapi/internal/config"
	"github.com/placesapi/placesapi/internal/lib/email"
	"github.com/placesapi/placesapi/internal/model/place"
	"github.com/rs/zerolog"
)

type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger

	mailer      Mailer
	notifyEmail string
}

// QueueNotifications carries every outgoing notification.
const QueueNotifications = "notifications"

// NewJobService builds the asynq client and worker server for the
// configured Redis.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				QueueNotifications: 1,
			},
			Logger:   &asynqLogger{logger: logger},
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client:      asynq.NewClient(redisOpt),
		server:      server,
		logger:      logger,
		mailer:      email.NewClient(cfg, logger),
		notifyEmail: cfg.Integration.NotifyEmail,
	}
}

func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskPlaceCreated, j.handlePlaceCreatedTask)
	return mux
}

// Start launches the worker server. It does not block.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")
	return j.server.Start(j.mux())
}

// Stop waits for running tasks and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// PlaceCreated enqueues the notification for a newly created place.
func (j *JobService) PlaceCreated(ctx context.Context, p *place.Place) error {
	task, err := NewPlaceCreatedTask(p)
	if err != nil {
		return fmt.Errorf("failed to build place created task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue place created task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("place_id", p.ID).
		Msg("enqueued place created task")
	return nil
}

// asynqLogger routes asynq's internal logs through zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l *asynqLogger) Debug(args ...any) {
	l.logger.Debug().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...any) {
	l.logger.Info().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...any) {
	l.logger.Warn().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...any) {
	l.logger.Error().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...any) {
	l.logger.Fatal().Str("component", "asynq").Msg(fmt.Sprint(args...))
}
