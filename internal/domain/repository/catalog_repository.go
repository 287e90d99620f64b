package repository

import "github.com/astrocat-app/astrocat/internal/domain/entity"

// SpaceSystemRepository defines the interface for star-system persistence.
type SpaceSystemRepository interface {
	Create(s *entity.SpaceSystem) error
	GetByID(id string) (*entity.SpaceSystem, error)
	GetByName(name string) (*entity.SpaceSystem, error)
	// List returns every system except the distinguished Solar System,
	// which is fetched via GetByName(entity.SolarSystemName).
	List() ([]*entity.SpaceSystem, error)
	Update(s *entity.SpaceSystem) error
	// Delete removes the system and its objects in one transaction.
	Delete(id string) error
}

// SpaceObjectRepository defines the interface for celestial-body persistence.
type SpaceObjectRepository interface {
	Create(o *entity.SpaceObject) error
	GetByID(id string) (*entity.SpaceObject, error)
	GetByName(name string) (*entity.SpaceObject, error)
	List() ([]*entity.SpaceObject, error)
	ListBySystem(systemID string) ([]*entity.SpaceObject, error)
	Update(o *entity.SpaceObject) error
	Delete(id string) error
}
