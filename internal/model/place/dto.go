package place

import (
	"fmt"
	"strings"

	"github.com/placesapi/placesapi/internal/validation"
)

func init() {
	validation.Validator().RegisterAlias("place_name", fmt.Sprintf("required,max=%d", NameMaxLength))
}

// Payload is the request body for create and replace. Coordinates are
// pointers so a missing value is told apart from 0.
type Payload struct {
	Name        string   `json:"name" validate:"place_name"`
	Description string   `json:"description" validate:"required"`
	Latitude    *float64 `json:"latitude" validate:"required"`
	Longitude   *float64 `json:"longitude" validate:"required"`
}

// Validate trims surrounding whitespace from the text fields, then
// checks the tag rules. A whitespace-only name counts as missing.
func (p *Payload) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	return validation.Validator().Struct(p)
}

// ToInput converts a validated payload.
func (p *Payload) ToInput() Input {
	in := Input{
		Name:        p.Name,
		Description: p.Description,
	}
	if p.Latitude != nil {
		in.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		in.Longitude = *p.Longitude
	}
	return in
}

// PlaceIDRequest carries the raw id path parameter. It is parsed by the
// handler so a malformed id is reported as a missing place, not a bad
// request.
type PlaceIDRequest struct {
	ID string `param:"id"`
}

func (r *PlaceIDRequest) Validate() error {
	return nil
}

// PathOnly keeps the body unread; PUT decodes it after the lookup.
func (r *PlaceIDRequest) PathOnly() {}

// ListPlacesRequest carries the optional full-text query.
type ListPlacesRequest struct {
	Query string `query:"q"`
}

func (r *ListPlacesRequest) Validate() error {
	return nil
}
