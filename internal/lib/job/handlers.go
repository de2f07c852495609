package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/placesapi/placesapi/internal/lib/email"
)

// Mailer delivers the emails sent by job handlers.
type Mailer interface {
	SendPlaceCreatedEmail(ctx context.Context, to string, data email.PlaceCreatedData) error
}

func (j *JobService) handlePlaceCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p PlaceCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A payload that cannot be decoded will never succeed.
		return fmt.Errorf("failed to unmarshal place created payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskPlaceCreated).
		Int64("place_id", p.ID).
		Str("to", j.notifyEmail).
		Logger()

	logger.Info().Msg("Processing place created task")

	err := j.mailer.SendPlaceCreatedEmail(ctx, j.notifyEmail, email.PlaceCreatedData{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		CreatedAt:   p.CreatedAt,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to send place created email")
		return err
	}

	logger.Info().Msg("Successfully sent place created email")
	return nil
}
