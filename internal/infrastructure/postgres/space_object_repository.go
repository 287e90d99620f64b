package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/astrocat-app/astrocat/internal/domain/entity"
	"github.com/astrocat-app/astrocat/internal/domain/repository"
)

type SpaceObjectRepository struct {
	pool *pgxpool.Pool
}

func NewSpaceObjectRepository(pool *pgxpool.Pool) *SpaceObjectRepository {
	return &SpaceObjectRepository{pool: pool}
}

const objectColumns = `id, name, space_type, radius, period, eccentricity, velocity,
	density, gravity, mass, satellites, atmosphere, about, image_path,
	system_id, creator_id, created_at, updated_at`

func scanObject(row pgx.Row) (*entity.SpaceObject, error) {
	o := &entity.SpaceObject{}
	if err := row.Scan(&o.ID, &o.Name, &o.SpaceType, &o.Radius, &o.Period,
		&o.Eccentricity, &o.Velocity, &o.Density, &o.Gravity, &o.Mass,
		&o.Satellites, &o.Atmosphere, &o.About, &o.ImagePath,
		&o.SystemID, &o.CreatorID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, translateErr(err)
	}
	return o, nil
}

func (r *SpaceObjectRepository) Create(o *entity.SpaceObject) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO space_objects (name, space_type, radius, period, eccentricity,
			velocity, density, gravity, mass, satellites, atmosphere, about,
			image_path, system_id, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`, o.Name, o.SpaceType, o.Radius, o.Period, o.Eccentricity, o.Velocity,
		o.Density, o.Gravity, o.Mass, o.Satellites, o.Atmosphere, o.About,
		o.ImagePath, o.SystemID, o.CreatorID)

	return translateErr(row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt))
}

func (r *SpaceObjectRepository) GetByID(id string) (*entity.SpaceObject, error) {
	ctx := context.Background()
	return scanObject(r.pool.QueryRow(ctx, `SELECT `+objectColumns+` FROM space_objects WHERE id = $1`, id))
}

func (r *SpaceObjectRepository) GetByName(name string) (*entity.SpaceObject, error) {
	ctx := context.Background()
	return scanObject(r.pool.QueryRow(ctx, `SELECT `+objectColumns+` FROM space_objects WHERE name = $1`, name))
}

func (r *SpaceObjectRepository) List() ([]*entity.SpaceObject, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+objectColumns+` FROM space_objects ORDER BY name`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()
	return collectObjects(rows)
}

func (r *SpaceObjectRepository) ListBySystem(systemID string) ([]*entity.SpaceObject, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+objectColumns+` FROM space_objects
		WHERE system_id = $1
		ORDER BY radius`, systemID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()
	return collectObjects(rows)
}

func collectObjects(rows pgx.Rows) ([]*entity.SpaceObject, error) {
	var objects []*entity.SpaceObject
	for rows.Next() {
		o, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		objects = append(objects, o)
	}
	return objects, rows.Err()
}

func (r *SpaceObjectRepository) Update(o *entity.SpaceObject) error {
	ctx := context.Background()
	o.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE space_objects
		SET name = $1, space_type = $2, radius = $3, period = $4, eccentricity = $5,
		    velocity = $6, density = $7, gravity = $8, mass = $9, satellites = $10,
		    atmosphere = $11, about = $12, image_path = $13, system_id = $14, updated_at = $15
		WHERE id = $16
	`, o.Name, o.SpaceType, o.Radius, o.Period, o.Eccentricity, o.Velocity,
		o.Density, o.Gravity, o.Mass, o.Satellites, o.Atmosphere, o.About,
		o.ImagePath, o.SystemID, o.UpdatedAt, o.ID)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *SpaceObjectRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM space_objects WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.SpaceObjectRepository = (*SpaceObjectRepository)(nil)
