package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/placesapi/placesapi/internal/model/place"
)

// Dialect holds what differs between the database/sql backends: how a
// full-text query is written and how the user's text becomes its argument.
type Dialect struct {
	Name string

	// SearchQuery selects placeColumns for rows matching one argument.
	SearchQuery string

	// SearchArg turns free text into the MATCH argument. ok is false
	// when nothing searchable is left, which yields an empty result.
	SearchArg func(q string) (arg string, ok bool)
}

// SQLiteDialect searches the places_fts FTS5 table. Each token is quoted
// so FTS5 operators in user input are taken literally; tokens are ANDed.
var SQLiteDialect = Dialect{
	Name: "sqlite",
	SearchQuery: `
		SELECT p.id, p.name, p.description, p.latitude, p.longitude, p.created_at
		FROM places p
		JOIN places_fts f ON f.rowid = p.id
		WHERE places_fts MATCH ?
		ORDER BY p.id`,
	SearchArg: func(q string) (string, bool) {
		tokens := strings.Fields(q)
		if len(tokens) == 0 {
			return "", false
		}
		for i, tok := range tokens {
			tokens[i] = `"` + strings.ReplaceAll(tok, `"`, `""`) + `"`
		}
		return strings.Join(tokens, " "), true
	},
}

// mysqlOperators are stripped from tokens before they are marked required.
const mysqlOperators = `+-<>()~*"@`

// MySQLDialect uses the FULLTEXT index in boolean mode with every token
// required.
var MySQLDialect = Dialect{
	Name: "mysql",
	SearchQuery: `
		SELECT ` + placeColumns + `
		FROM places
		WHERE MATCH(name, description) AGAINST (? IN BOOLEAN MODE)
		ORDER BY id`,
	SearchArg: func(q string) (string, bool) {
		var terms []string
		for _, tok := range strings.Fields(q) {
			tok = strings.Trim(tok, mysqlOperators)
			if tok == "" {
				continue
			}
			terms = append(terms, "+"+tok)
		}
		if len(terms) == 0 {
			return "", false
		}
		return strings.Join(terms, " "), true
	},
}

// SQLPlaceRepository stores places through database/sql.
type SQLPlaceRepository struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

func NewSQLPlaceRepository(db *sql.DB, dialect Dialect) *SQLPlaceRepository {
	return &SQLPlaceRepository{
		db:      db,
		dialect: dialect,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (r *SQLPlaceRepository) GetPlace(ctx context.Context, id int64) (*place.Place, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+placeColumns+` FROM places WHERE id = ?`, id)

	p, err := scanPlace(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get place id=%d: %w", id, err)
	}
	return p, nil
}

func (r *SQLPlaceRepository) ListPlaces(ctx context.Context) ([]place.Place, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+placeColumns+` FROM places ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list places query: %w", err)
	}
	return scanPlaces(rows)
}

func (r *SQLPlaceRepository) SearchPlaces(ctx context.Context, query string) ([]place.Place, error) {
	arg, ok := r.dialect.SearchArg(query)
	if !ok {
		return []place.Place{}, nil
	}

	rows, err := r.db.QueryContext(ctx, r.dialect.SearchQuery, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s search query for q=%q: %w", r.dialect.Name, query, err)
	}
	return scanPlaces(rows)
}

func (r *SQLPlaceRepository) CreatePlace(ctx context.Context, in place.Input) (*place.Place, error) {
	createdAt := r.now()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO places (name, description, latitude, longitude, created_at) VALUES (?, ?, ?, ?, ?)`,
		in.Name, in.Description, in.Latitude, in.Longitude, r.timeArg(createdAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to execute create place query: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read new place id: %w", err)
	}

	p := &place.Place{ID: id, CreatedAt: createdAt}
	p.Apply(in)
	return p, nil
}

func (r *SQLPlaceRepository) ReplacePlace(ctx context.Context, id int64, in place.Input) (*place.Place, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE places SET name = ?, description = ?, latitude = ?, longitude = ? WHERE id = ?`,
		in.Name, in.Description, in.Latitude, in.Longitude, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to execute replace place query for id=%d: %w", id, err)
	}

	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to read affected rows for id=%d: %w", id, err)
	} else if n == 0 {
		return nil, ErrNotFound
	}

	return r.GetPlace(ctx, id)
}

func (r *SQLPlaceRepository) DeletePlace(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM places WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to execute delete place query for id=%d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for id=%d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// timeArg stores SQLite timestamps as RFC 3339 text so they sort and
// read back without driver-specific parsing.
func (r *SQLPlaceRepository) timeArg(t time.Time) any {
	if r.dialect.Name == SQLiteDialect.Name {
		return t.Format(time.RFC3339Nano)
	}
	return t
}

// timestamp scans DATETIME values as well as RFC 3339 text.
type timestamp struct {
	t *time.Time
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		*ts.t = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (ts timestamp) parse(s string) error {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*ts.t = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unparseable timestamp %q", s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlace(row rowScanner) (*place.Place, error) {
	var p place.Place
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Latitude, &p.Longitude, timestamp{&p.CreatedAt}); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPlaces(rows *sql.Rows) ([]place.Place, error) {
	defer rows.Close()

	places := []place.Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate places: %w", err)
	}
	return places, nil
}
