package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/astrocat-app/astrocat/internal/domain/entity"
	"github.com/astrocat-app/astrocat/internal/domain/repository"
)

type SpaceSystemRepository struct {
	pool *pgxpool.Pool
}

func NewSpaceSystemRepository(pool *pgxpool.Pool) *SpaceSystemRepository {
	return &SpaceSystemRepository{pool: pool}
}

const systemColumns = `id, name, galaxy, about, creator_id, created_at, updated_at`

func scanSystem(row pgx.Row) (*entity.SpaceSystem, error) {
	s := &entity.SpaceSystem{}
	if err := row.Scan(&s.ID, &s.Name, &s.Galaxy, &s.About, &s.CreatorID,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, translateErr(err)
	}
	return s, nil
}

func (r *SpaceSystemRepository) Create(s *entity.SpaceSystem) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO space_systems (name, galaxy, about, creator_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, s.Name, s.Galaxy, s.About, s.CreatorID)

	return translateErr(row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt))
}

func (r *SpaceSystemRepository) GetByID(id string) (*entity.SpaceSystem, error) {
	ctx := context.Background()
	return scanSystem(r.pool.QueryRow(ctx, `SELECT `+systemColumns+` FROM space_systems WHERE id = $1`, id))
}

func (r *SpaceSystemRepository) GetByName(name string) (*entity.SpaceSystem, error) {
	ctx := context.Background()
	return scanSystem(r.pool.QueryRow(ctx, `SELECT `+systemColumns+` FROM space_systems WHERE name = $1`, name))
}

func (r *SpaceSystemRepository) List() ([]*entity.SpaceSystem, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+systemColumns+` FROM space_systems
		WHERE name <> $1
		ORDER BY name`, entity.SolarSystemName)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var systems []*entity.SpaceSystem
	for rows.Next() {
		s, err := scanSystem(rows)
		if err != nil {
			return nil, err
		}
		systems = append(systems, s)
	}
	return systems, rows.Err()
}

func (r *SpaceSystemRepository) Update(s *entity.SpaceSystem) error {
	ctx := context.Background()
	s.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE space_systems
		SET name = $1, galaxy = $2, about = $3, updated_at = $4
		WHERE id = $5
	`, s.Name, s.Galaxy, s.About, s.UpdatedAt, s.ID)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the system together with its objects; both statements share
// one transaction so a failure leaves no partial state.
func (r *SpaceSystemRepository) Delete(id string) error {
	ctx := context.Background()
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM space_objects WHERE system_id = $1`, id); err != nil {
			return translateErr(err)
		}
		res, err := tx.Exec(ctx, `DELETE FROM space_systems WHERE id = $1`, id)
		if err != nil {
			return translateErr(err)
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

var _ repository.SpaceSystemRepository = (*SpaceSystemRepository)(nil)
