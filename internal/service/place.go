package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/placesapi/placesapi/internal/errs"
	"github.com/placesapi/placesapi/internal/model/place"
	"github.com/placesapi/placesapi/internal/repository"
	"github.com/placesapi/placesapi/internal/sqlerr"
	"github.com/rs/zerolog"
)

// PlaceNotifier is told about every successfully created place.
type PlaceNotifier interface {
	PlaceCreated(ctx context.Context, p *place.Place) error
}

type PlaceService struct {
	repo     repository.PlaceRepository
	notifier PlaceNotifier
	logger   *zerolog.Logger
}

// NewPlaceService wires the service. notifier may be nil.
func NewPlaceService(repo repository.PlaceRepository, notifier PlaceNotifier, logger *zerolog.Logger) *PlaceService {
	return &PlaceService{repo: repo, notifier: notifier, logger: logger}
}

// ErrPlaceNotFound is answered with a bare 404.
func ErrPlaceNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Place not found", false, nil).WithoutBody()
}

// ParsePlaceID accepts only base-10 integers; anything else cannot name
// a place and is reported as not found.
func ParsePlaceID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrPlaceNotFound()
	}
	return id, nil
}

func (s *PlaceService) GetPlace(ctx context.Context, id int64) (*place.Place, error) {
	p, err := s.repo.GetPlace(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}
	return p, nil
}

// ListPlaces returns every place when query is empty and the full-text
// matches otherwise. The result is never nil.
func (s *PlaceService) ListPlaces(ctx context.Context, query string) ([]place.Place, error) {
	var (
		places []place.Place
		err    error
	)

	if query == "" {
		places, err = s.repo.ListPlaces(ctx)
	} else {
		places, err = s.repo.SearchPlaces(ctx, query)
	}
	if err != nil {
		return nil, s.translate(err)
	}

	if places == nil {
		places = []place.Place{}
	}
	return places, nil
}

// CreatePlace stores the place, then queues the notification. A failed
// enqueue is logged; the place has already been created.
func (s *PlaceService) CreatePlace(ctx context.Context, in place.Input) (*place.Place, error) {
	p, err := s.repo.CreatePlace(ctx, in)
	if err != nil {
		return nil, s.translate(err)
	}

	if s.notifier != nil {
		if err := s.notifier.PlaceCreated(ctx, p); err != nil {
			s.logger.Error().Err(err).Int64("place_id", p.ID).Msg("failed to queue place created notification")
		}
	}

	return p, nil
}

func (s *PlaceService) ReplacePlace(ctx context.Context, id int64, in place.Input) (*place.Place, error) {
	p, err := s.repo.ReplacePlace(ctx, id, in)
	if err != nil {
		return nil, s.translate(err)
	}
	return p, nil
}

func (s *PlaceService) DeletePlace(ctx context.Context, id int64) error {
	if err := s.repo.DeletePlace(ctx, id); err != nil {
		return s.translate(err)
	}
	return nil
}

func (s *PlaceService) translate(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlaceNotFound()
	}
	return sqlerr.HandleError(err)
}
