// Package place holds the Place entity and its request payload.
package place

import "time"

// NameMaxLength is counted in characters, not bytes.
const NameMaxLength = 200

// Place is a named point on the map.
type Place struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Input is the set of fields a client may write. ID and CreatedAt are
// always assigned by the store.
type Input struct {
	Name        string
	Description string
	Latitude    float64
	Longitude   float64
}

// Apply overwrites every mutable field of p with in.
func (p *Place) Apply(in Input) {
	p.Name = in.Name
	p.Description = in.Description
	p.Latitude = in.Latitude
	p.Longitude = in.Longitude
}
