// Package service holds the business operations. It sits between the
// handlers and the repositories and turns storage errors into API errors.
package service

import (
	"github.com/placesapi/placesapi/internal/lib/job"
	"github.com/placesapi/placesapi/internal/repository"
	"github.com/placesapi/placesapi/internal/server"
)

type Services struct {
	Place *PlaceService
	Job   *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// A nil *JobService must not end up inside a non-nil interface.
	var notifier PlaceNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Place: NewPlaceService(repos.Place, notifier, s.Logger),
		Job:   s.Job,
	}, nil
}
