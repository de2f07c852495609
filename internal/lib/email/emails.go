package email

import (
	"context"
	"fmt"
	"time"
)

// PlaceCreatedData fills the place_created template.
type PlaceCreatedData struct {
	ID          int64
	Name        string
	Description string
	Latitude    float64
	Longitude   float64
	CreatedAt   time.Time
}

// SendPlaceCreatedEmail tells the configured recipient about a new place.
func (c *Client) SendPlaceCreatedEmail(ctx context.Context, to string, data PlaceCreatedData) error {
	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("New place: %s", data.Name),
		TemplatePlaceCreated,
		data,
	)
}
