package entity

import (
	"time"
)

// SolarSystemName identifies the distinguished home system. It is seeded
// once, excluded from generic listings and served through its own endpoint.
const SolarSystemName = "Solar System"

// SpaceSystem is a named grouping of celestial bodies inside a galaxy.
type SpaceSystem struct {
	ID        string
	Name      string
	Galaxy    string
	About     string
	CreatorID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSolar reports whether the system is the distinguished Solar System row.
func (s *SpaceSystem) IsSolar() bool {
	return s.Name == SolarSystemName
}
