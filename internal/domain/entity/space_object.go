package entity

import (
	"time"
)

// SpaceObject is a celestial body that belongs to exactly one SpaceSystem.
//
// Physical attributes follow the catalog conventions: Radius is the orbital
// distance in AU, Period in Earth years, Velocity in km/s, Density in
// 10^3 kg/m^3, Gravity in m/s^2 and Mass in Earth masses.
type SpaceObject struct {
	ID           string
	Name         string
	SpaceType    string
	Radius       float64
	Period       float64
	Eccentricity float64
	Velocity     float64
	Density      float64
	Gravity      float64
	Mass         float64
	Satellites   int
	Atmosphere   string
	About        string
	ImagePath    string
	SystemID     string
	CreatorID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
