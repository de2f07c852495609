package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/placesapi/placesapi/internal/model/place"
	"github.com/placesapi/placesapi/internal/server"
	"github.com/placesapi/placesapi/internal/service"
	"github.com/placesapi/placesapi/internal/validation"
)

// PlaceHandler serves /api/places and /api/places/:id.
type PlaceHandler struct {
	Handler
	placeService *service.PlaceService
}

func NewPlaceHandler(s *server.Server, placeService *service.PlaceService) *PlaceHandler {
	return &PlaceHandler{
		Handler:      NewHandler(s),
		placeService: placeService,
	}
}

func (h *PlaceHandler) GetPlace(c echo.Context, req *place.PlaceIDRequest) (*place.Place, error) {
	id, err := service.ParsePlaceID(req.ID)
	if err != nil {
		return nil, err
	}
	return h.placeService.GetPlace(c.Request().Context(), id)
}

// ListPlaces returns every place, or the full-text matches of q.
func (h *PlaceHandler) ListPlaces(c echo.Context, req *place.ListPlacesRequest) ([]place.Place, error) {
	return h.placeService.ListPlaces(c.Request().Context(), req.Query)
}

func (h *PlaceHandler) CreatePlace(c echo.Context, payload *place.Payload) (*place.Place, error) {
	return h.placeService.CreatePlace(c.Request().Context(), payload.ToInput())
}

// ReplacePlace looks the place up before reading the body: an unknown id
// is a 404 even when the body is invalid.
func (h *PlaceHandler) ReplacePlace(c echo.Context, req *place.PlaceIDRequest) (*place.Place, error) {
	ctx := c.Request().Context()

	id, err := service.ParsePlaceID(req.ID)
	if err != nil {
		return nil, err
	}

	if _, err := h.placeService.GetPlace(ctx, id); err != nil {
		return nil, err
	}

	var payload place.Payload
	if err := validation.BindAndValidate(c, &payload); err != nil {
		return nil, err
	}

	return h.placeService.ReplacePlace(ctx, id, payload.ToInput())
}

func (h *PlaceHandler) DeletePlace(c echo.Context, req *place.PlaceIDRequest) error {
	id, err := service.ParsePlaceID(req.ID)
	if err != nil {
		return err
	}
	return h.placeService.DeletePlace(c.Request().Context(), id)
}
