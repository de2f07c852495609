// Package handler is the HTTP layer. Handlers bind and validate requests,
// call the service layer and write responses; errors are left to the
// global error handler.
package handler

import (
	"github.com/placesapi/placesapi/internal/server"
	"github.com/placesapi/placesapi/internal/service"
)

type Handlers struct {
	Health *HealthHandler
	Page   *PageHandler
	Place  *PlaceHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		Page:   NewPageHandler(s),
		Place:  NewPlaceHandler(s, services.Place),
	}
}
