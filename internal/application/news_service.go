package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"

	"github.com/astrocat-app/astrocat/internal/domain/entity"
	repo "github.com/astrocat-app/astrocat/internal/domain/repository"
	"github.com/astrocat-app/astrocat/pkg/helpers"
)

// NewsService owns the news feed. Edit and delete are owner-scoped: a post
// that exists but belongs to someone else is reported as not found, the same
// answer an outsider gets for a private post.
type NewsService struct {
	Repo      repo.NewsRepository
	Users     repo.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewNewsService(r repo.NewsRepository, users repo.UserRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *NewsService {
	return &NewsService{Repo: r, Users: users, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

// List returns the posts visible to the viewer, newest first. An empty
// viewerID lists public posts only.
func (s *NewsService) List(ctx context.Context, viewerID string) ([]*entity.News, error) {
	return s.Repo.ListVisible(viewerID)
}

// Get returns the post if the viewer may see it.
func (s *NewsService) Get(ctx context.Context, id, viewerID string) (*entity.News, error) {
	n, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !n.VisibleTo(viewerID) {
		return nil, repo.ErrNotFound
	}
	return n, nil
}

type NewsInput struct {
	Title     string
	Content   string
	IsPrivate bool
}

func (s *NewsService) Create(ctx context.Context, ownerID string, in NewsInput) (*entity.News, error) {
	n := &entity.News{
		Title:     in.Title,
		Content:   in.Content,
		IsPrivate: in.IsPrivate,
		UserID:    ownerID,
	}
	if err := s.Repo.Create(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NewsService) Update(ctx context.Context, id, ownerID string, in NewsInput) (*entity.News, error) {
	n, err := s.ownedPost(id, ownerID)
	if err != nil {
		return nil, err
	}
	n.Title = in.Title
	n.Content = in.Content
	n.IsPrivate = in.IsPrivate
	if err := s.Repo.Update(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NewsService) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := s.ownedPost(id, ownerID); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

// AttachPhoto uploads the photo to GCS and stores its path on the post.
func (s *NewsService) AttachPhoto(ctx context.Context, id, ownerID string, r io.Reader, filename, contentType string) (*entity.News, error) {
	n, err := s.ownedPost(id, ownerID)
	if err != nil {
		return nil, err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("blob storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := "img/news/" + n.ID + ext
	path, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	n.PhotoPath = path
	if err := s.Repo.Update(n); err != nil {
		return nil, err
	}
	return n, nil
}

// AuthorName resolves the display name of a post's author for projections.
func (s *NewsService) AuthorName(userID string) string {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return ""
	}
	return u.Name
}

func (s *NewsService) ownedPost(id, ownerID string) (*entity.News, error) {
	n, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n.UserID != ownerID {
		return nil, repo.ErrNotFound
	}
	return n, nil
}
