package repository

import "github.com/astrocat-app/astrocat/internal/domain/entity"

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	List() ([]*entity.User, error)
	Update(u *entity.User) error
	Delete(id string) error
}
