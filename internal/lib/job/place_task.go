package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/placesapi/placesapi/internal/model/place"
)

const (
	// TaskPlaceCreated routes to handlePlaceCreatedTask.
	TaskPlaceCreated = "place:created"
)

// PlaceCreatedPayload is the task body stored in Redis.
type PlaceCreatedPayload struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewPlaceCreatedTask builds the notification task for p: notifications queue,
// three retries, 30 second timeout.
func NewPlaceCreatedTask(p *place.Place) (*asynq.Task, error) {
	payload, err := json.Marshal(PlaceCreatedPayload{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		CreatedAt:   p.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskPlaceCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueNotifications),
		asynq.Timeout(30*time.Second),
	), nil
}
