package repository

import "github.com/astrocat-app/astrocat/internal/domain/entity"

// NewsRepository defines the interface for news persistence. Listing takes
// the viewer id so the visibility rule is applied per caller, not stored.
type NewsRepository interface {
	Create(n *entity.News) error
	GetByID(id string) (*entity.News, error)
	// ListVisible returns public posts plus, when viewerID is non-empty,
	// the viewer's own private posts, newest first.
	ListVisible(viewerID string) ([]*entity.News, error)
	Update(n *entity.News) error
	Delete(id string) error
}
