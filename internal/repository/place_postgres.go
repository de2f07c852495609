package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/placesapi/placesapi/internal/model/place"
)

// PostgresPlaceRepository stores places in Postgres. Search uses the generated
// search_vector column and plainto_tsquery with the english config.
type PostgresPlaceRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPlaceRepository(pool *pgxpool.Pool) *PostgresPlaceRepository {
	return &PostgresPlaceRepository{pool: pool}
}

func (r *PostgresPlaceRepository) GetPlace(ctx context.Context, id int64) (*place.Place, error) {
	stmt := `SELECT ` + placeColumns + ` FROM places WHERE id = @id`

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get place query for id=%d: %w", id, err)
	}

	return collectOne(rows, id)
}

func (r *PostgresPlaceRepository) ListPlaces(ctx context.Context) ([]place.Place, error) {
	stmt := `SELECT ` + placeColumns + ` FROM places ORDER BY id`

	rows, err := r.pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list places query: %w", err)
	}

	return collectAll(rows)
}

func (r *PostgresPlaceRepository) SearchPlaces(ctx context.Context, query string) ([]place.Place, error) {
	stmt := `
		SELECT ` + placeColumns + `
		FROM places
		WHERE search_vector @@ plainto_tsquery('english', @query)
		ORDER BY id`

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{"query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to execute search places query for q=%q: %w", query, err)
	}

	return collectAll(rows)
}

func (r *PostgresPlaceRepository) CreatePlace(ctx context.Context, in place.Input) (*place.Place, error) {
	stmt := `
		INSERT INTO places (name, description, latitude, longitude)
		VALUES (@name, @description, @latitude, @longitude)
		RETURNING ` + placeColumns

	rows, err := r.pool.Query(ctx, stmt, inputArgs(in))
	if err != nil {
		return nil, fmt.Errorf("failed to execute create place query: %w", err)
	}

	return collectOne(rows, 0)
}

func (r *PostgresPlaceRepository) ReplacePlace(ctx context.Context, id int64, in place.Input) (*place.Place, error) {
	stmt := `
		UPDATE places
		SET name = @name, description = @description, latitude = @latitude, longitude = @longitude
		WHERE id = @id
		RETURNING ` + placeColumns

	args := inputArgs(in)
	args["id"] = id

	rows, err := r.pool.Query(ctx, stmt, args)
	if err != nil {
		return nil, fmt.Errorf("failed to execute replace place query for id=%d: %w", id, err)
	}

	return collectOne(rows, id)
}

func (r *PostgresPlaceRepository) DeletePlace(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM places WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("failed to execute delete place query for id=%d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func inputArgs(in place.Input) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":        in.Name,
		"description": in.Description,
		"latitude":    in.Latitude,
		"longitude":   in.Longitude,
	}
}

func collectOne(rows pgx.Rows, id int64) (*place.Place, error) {
	p, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[place.Place])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to collect place id=%d: %w", id, err)
	}

	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func collectAll(rows pgx.Rows) ([]place.Place, error) {
	places, err := pgx.CollectRows(rows, pgx.RowToStructByName[place.Place])
	if err != nil {
		return nil, fmt.Errorf("failed to collect places: %w", err)
	}

	for i := range places {
		places[i].CreatedAt = places[i].CreatedAt.UTC()
	}
	return places, nil
}
