package recommendation

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Repository supplies candidate content for scoring. The engine never
// fetches candidates itself; the store passes them in.
type Repository interface {
	ListVideos(ctx context.Context) ([]Video, error)
	ListProducts(ctx context.Context) ([]Product, error)
	ListApps(ctx context.Context) ([]App, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) ListVideos(ctx context.Context) ([]Video, error) {
	var videos []Video
	query := `
        SELECT id, title, category, tags, duration, difficulty,
               instructor, thumbnail_url, is_premium
        FROM videos
        ORDER BY id
    `

	err := r.db.SelectContext(ctx, &videos, query)
	return videos, err
}

func (r *postgresRepository) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	query := `
        SELECT id, name, category, tags, price, description, image_url, in_stock
        FROM products
        WHERE in_stock = TRUE
        ORDER BY id
    `

	err := r.db.SelectContext(ctx, &products, query)
	return products, err
}

func (r *postgresRepository) ListApps(ctx context.Context) ([]App, error) {
	var apps []App
	query := `
        SELECT id, name, category, features, description, platform
        FROM apps
        ORDER BY id
    `

	err := r.db.SelectContext(ctx, &apps, query)
	return apps, err
}
