package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/astrocat-app/astrocat/internal/domain/entity"
	repo "github.com/astrocat-app/astrocat/internal/domain/repository"
	"github.com/astrocat-app/astrocat/pkg/helpers"
)

// CatalogService owns star systems and celestial bodies. Mutations require
// the actor to be the creator or the configured super-user.
type CatalogService struct {
	Systems     repo.SpaceSystemRepository
	Objects     repo.SpaceObjectRepository
	Users       repo.UserRepository
	GCS         *storage.Client
	GCSBucket   string
	ES          *elasticsearch.Client
	ESIndex     string
	Logger      *logrus.Logger
	SuperUserID string
}

func NewCatalogService(systems repo.SpaceSystemRepository, objects repo.SpaceObjectRepository, users repo.UserRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger, superUserID string) *CatalogService {
	return &CatalogService{
		Systems:     systems,
		Objects:     objects,
		Users:       users,
		GCS:         gcs,
		GCSBucket:   gcsBucket,
		ES:          es,
		ESIndex:     esIndex,
		Logger:      logger,
		SuperUserID: superUserID,
	}
}

func (s *CatalogService) canModify(actorID, creatorID string) bool {
	if actorID == "" {
		return false
	}
	return actorID == creatorID || actorID == s.SuperUserID
}

type SystemInput struct {
	Name   string
	Galaxy string
	About  string
}

func (s *CatalogService) CreateSystem(ctx context.Context, actorID string, in SystemInput) (*entity.SpaceSystem, error) {
	if _, err := s.Systems.GetByName(in.Name); err == nil {
		return nil, repo.ErrConflict
	}
	sys := &entity.SpaceSystem{
		Name:      in.Name,
		Galaxy:    in.Galaxy,
		About:     in.About,
		CreatorID: actorID,
	}
	if err := s.Systems.Create(sys); err != nil {
		return nil, err
	}
	return sys, nil
}

func (s *CatalogService) GetSystem(id string) (*entity.SpaceSystem, error) {
	return s.Systems.GetByID(id)
}

// SolarSystem returns the distinguished home system, which generic listings
// exclude.
func (s *CatalogService) SolarSystem() (*entity.SpaceSystem, error) {
	return s.Systems.GetByName(entity.SolarSystemName)
}

func (s *CatalogService) ListSystems() ([]*entity.SpaceSystem, error) {
	return s.Systems.List()
}

func (s *CatalogService) SystemObjects(systemID string) ([]*entity.SpaceObject, error) {
	return s.Objects.ListBySystem(systemID)
}

// UpdateSystem applies in and returns the updated system plus the previous
// name. A rename invalidates the name-derived image paths; relocating them
// is the caller's move (RelocateSystemImages), never a hidden side effect.
func (s *CatalogService) UpdateSystem(ctx context.Context, actorID, id string, in SystemInput) (*entity.SpaceSystem, string, error) {
	sys, err := s.Systems.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	if !s.canModify(actorID, sys.CreatorID) {
		return nil, "", ErrForbidden
	}
	oldName := sys.Name
	if in.Name != oldName {
		if _, err := s.Systems.GetByName(in.Name); err == nil {
			return nil, "", repo.ErrConflict
		}
	}
	sys.Name = in.Name
	sys.Galaxy = in.Galaxy
	sys.About = in.About
	if err := s.Systems.Update(sys); err != nil {
		return nil, "", err
	}
	return sys, oldName, nil
}

// RelocateSystemImages moves every object image of the system from the old
// name-derived prefix to the new one and records the new paths.
func (s *CatalogService) RelocateSystemImages(ctx context.Context, systemID, oldName, newName string) error {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil
	}
	objects, err := s.Objects.ListBySystem(systemID)
	if err != nil {
		return err
	}
	oldPrefix := imagePrefix(oldName)
	newPrefix := imagePrefix(newName)
	for _, o := range objects {
		if o.ImagePath == "" || !strings.HasPrefix(o.ImagePath, oldPrefix) {
			continue
		}
		dst := newPrefix + strings.TrimPrefix(o.ImagePath, oldPrefix)
		if err := helpers.MoveObject(ctx, s.GCS, s.GCSBucket, o.ImagePath, dst); err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("object", o.Name).Warn("image relocation failed")
			}
			continue
		}
		o.ImagePath = dst
		if err := s.Objects.Update(o); err != nil {
			return err
		}
	}
	return nil
}

func (s *CatalogService) DeleteSystem(ctx context.Context, actorID, id string) error {
	sys, err := s.Systems.GetByID(id)
	if err != nil {
		return err
	}
	if !s.canModify(actorID, sys.CreatorID) {
		return ErrForbidden
	}
	return s.Systems.Delete(id)
}

type ObjectInput struct {
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
	SystemID     string
}

func (s *CatalogService) CreateObject(ctx context.Context, actorID string, in ObjectInput) (*entity.SpaceObject, error) {
	if _, err := s.Systems.GetByID(in.SystemID); err != nil {
		return nil, err
	}
	if _, err := s.Objects.GetByName(in.Name); err == nil {
		return nil, repo.ErrConflict
	}
	o := &entity.SpaceObject{
		Name:         in.Name,
		SpaceType:    in.SpaceType,
		Radius:       in.Radius,
		Period:       in.Period,
		Eccentricity: in.Eccentricity,
		Velocity:     in.Velocity,
		Density:      in.Density,
		Gravity:      in.Gravity,
		Mass:         in.Mass,
		Satellites:   in.Satellites,
		Atmosphere:   in.Atmosphere,
		About:        in.About,
		SystemID:     in.SystemID,
		CreatorID:    actorID,
	}
	if err := s.Objects.Create(o); err != nil {
		return nil, err
	}
	s.indexObject(ctx, o)
	return o, nil
}

func (s *CatalogService) GetObject(id string) (*entity.SpaceObject, error) {
	return s.Objects.GetByID(id)
}

func (s *CatalogService) ListObjects() ([]*entity.SpaceObject, error) {
	return s.Objects.List()
}

func (s *CatalogService) UpdateObject(ctx context.Context, actorID, id string, in ObjectInput) (*entity.SpaceObject, error) {
	o, err := s.Objects.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !s.canModify(actorID, o.CreatorID) {
		return nil, ErrForbidden
	}
	if in.Name != o.Name {
		if _, err := s.Objects.GetByName(in.Name); err == nil {
			return nil, repo.ErrConflict
		}
	}
	if in.SystemID != o.SystemID {
		if _, err := s.Systems.GetByID(in.SystemID); err != nil {
			return nil, err
		}
	}
	o.Name = in.Name
	o.SpaceType = in.SpaceType
	o.Radius = in.Radius
	o.Period = in.Period
	o.Eccentricity = in.Eccentricity
	o.Velocity = in.Velocity
	o.Density = in.Density
	o.Gravity = in.Gravity
	o.Mass = in.Mass
	o.Satellites = in.Satellites
	o.Atmosphere = in.Atmosphere
	o.About = in.About
	o.SystemID = in.SystemID
	if err := s.Objects.Update(o); err != nil {
		return nil, err
	}
	s.indexObject(ctx, o)
	return o, nil
}

func (s *CatalogService) DeleteObject(ctx context.Context, actorID, id string) error {
	o, err := s.Objects.GetByID(id)
	if err != nil {
		return err
	}
	if !s.canModify(actorID, o.CreatorID) {
		return ErrForbidden
	}
	return s.Objects.Delete(id)
}

// AttachObjectImage uploads the image under the owning system's name-derived
// prefix and stores the path on the object. The object id keeps the path
// stable across object renames.
func (s *CatalogService) AttachObjectImage(ctx context.Context, actorID, id string, r io.Reader, filename, contentType string) (*entity.SpaceObject, error) {
	o, err := s.Objects.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !s.canModify(actorID, o.CreatorID) {
		return nil, ErrForbidden
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("blob storage not configured")
	}
	sys, err := s.Systems.GetByID(o.SystemID)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := imagePrefix(sys.Name) + o.ID + ext
	path, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	o.ImagePath = path
	if err := s.Objects.Update(o); err != nil {
		return nil, err
	}
	return o, nil
}

// imagePrefix derives the storage folder for a system's images from its name.
func imagePrefix(systemName string) string {
	slug := strings.ToLower(strings.ReplaceAll(systemName, " ", "-"))
	return "img/" + slug + "/"
}

func (s *CatalogService) indexObject(ctx context.Context, o *entity.SpaceObject) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         o.ID,
		"name":       o.Name,
		"space_type": o.SpaceType,
		"about":      o.About,
		"atmosphere": o.Atmosphere,
		"system_id":  o.SystemID,
		"updated_at": o.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: o.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("object_id", o.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("object_id", o.ID).Warn("es index response error")
	}
}

// SearchObjects performs a multi_match query over name, type and description.
func (s *CatalogService) SearchObjects(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "space_type", "about", "atmosphere"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// CreatorName resolves the display name of an entity's creator for views.
func (s *CatalogService) CreatorName(userID string) string {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return ""
	}
	return u.Name
}
