package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/astrocat-app/astrocat/internal/domain/entity"
	"github.com/astrocat-app/astrocat/internal/domain/repository"
)

type NewsRepository struct {
	pool *pgxpool.Pool
}

func NewNewsRepository(pool *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{pool: pool}
}

const newsColumns = `id, title, content, is_private, photo_path, user_id, created_at, updated_at`

func scanNews(row pgx.Row) (*entity.News, error) {
	n := &entity.News{}
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &n.IsPrivate, &n.PhotoPath,
		&n.UserID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, translateErr(err)
	}
	return n, nil
}

func (r *NewsRepository) Create(n *entity.News) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO news (title, content, is_private, photo_path, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, n.Title, n.Content, n.IsPrivate, n.PhotoPath, n.UserID)

	return translateErr(row.Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt))
}

func (r *NewsRepository) GetByID(id string) (*entity.News, error) {
	ctx := context.Background()
	return scanNews(r.pool.QueryRow(ctx, `SELECT `+newsColumns+` FROM news WHERE id = $1`, id))
}

func (r *NewsRepository) ListVisible(viewerID string) ([]*entity.News, error) {
	ctx := context.Background()

	var (
		rows pgx.Rows
		err  error
	)
	if viewerID == "" {
		rows, err = r.pool.Query(ctx, `
			SELECT `+newsColumns+` FROM news
			WHERE NOT is_private
			ORDER BY created_at DESC`)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT `+newsColumns+` FROM news
			WHERE NOT is_private OR user_id = $1
			ORDER BY created_at DESC`, viewerID)
	}
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var items []*entity.News
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *NewsRepository) Update(n *entity.News) error {
	ctx := context.Background()
	n.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE news
		SET title = $1, content = $2, is_private = $3, photo_path = $4, updated_at = $5
		WHERE id = $6
	`, n.Title, n.Content, n.IsPrivate, n.PhotoPath, n.UpdatedAt, n.ID)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NewsRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.NewsRepository = (*NewsRepository)(nil)
