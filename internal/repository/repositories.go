// Package repository runs the SQL behind each Place operation.
//
// Every method issues one statement (SQL drivers add a read-back after
// writes) and reports a missing row as ErrNotFound, whatever the driver.
package repository

import (
	"context"
	"errors"

	"github.com/placesapi/placesapi/internal/config"
	"github.com/placesapi/placesapi/internal/model/place"
	"github.com/placesapi/placesapi/internal/server"
)

// ErrNotFound is returned when no place has the requested id.
var ErrNotFound = errors.New("place not found")

// PlaceRepository is implemented once per database family.
//
// List and search results are ordered by id.
type PlaceRepository interface {
	GetPlace(ctx context.Context, id int64) (*place.Place, error)
	ListPlaces(ctx context.Context) ([]place.Place, error)
	SearchPlaces(ctx context.Context, query string) ([]place.Place, error)
	CreatePlace(ctx context.Context, in place.Input) (*place.Place, error)
	ReplacePlace(ctx context.Context, id int64, in place.Input) (*place.Place, error)
	DeletePlace(ctx context.Context, id int64) error
}

type Repositories struct {
	Place PlaceRepository
}

// NewRepositories picks the implementation matching the open database.
func NewRepositories(s *server.Server) *Repositories {
	var places PlaceRepository

	switch s.DB.Driver {
	case config.DriverSQLite:
		places = NewSQLPlaceRepository(s.DB.SQL, SQLiteDialect)
	case config.DriverMySQL:
		places = NewSQLPlaceRepository(s.DB.SQL, MySQLDialect)
	default:
		places = NewPostgresPlaceRepository(s.DB.Pool)
	}

	return &Repositories{Place: places}
}

const placeColumns = "id, name, description, latitude, longitude, created_at"
