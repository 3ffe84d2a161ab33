package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreCategory(ctx context.Context, userId int, category Category) (Category, error)
	GetCategory(ctx context.Context, userId int, id int) (Category, error)
	ListCategories(ctx context.Context, userId int) ([]Category, error)
	UpdateCategory(ctx context.Context, userId int, id int, update Update) (Category, error)
	DeleteCategory(ctx context.Context, userId int, id int) (Category, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const categoryColumns = "id, name, color, icon, user_id, created_at"

func scanCategory(row pgx.Row) (Category, error) {
	var c Category
	err := row.Scan(&c.Id, &c.Name, &c.Color, &c.Icon, &c.OwnerId, &c.CreatedAt)
	return c, err
}

func (r *RepositoryImpl) StoreCategory(ctx context.Context, userId int, category Category) (Category, error) {
	query := `INSERT INTO category (name, color, icon, user_id) VALUES ($1, $2, $3, $4) RETURNING ` + categoryColumns
	stored, err := scanCategory(r.db.QueryRow(ctx, query, category.Name, category.Color, category.Icon, userId))
	if err != nil {
		err := fmt.Errorf("could not store category: %w", err)
		log.Error(err)
		return Category{}, err
	}
	return stored, nil
}

func (r *RepositoryImpl) GetCategory(ctx context.Context, userId int, id int) (Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM category WHERE id = $1 AND user_id = $2`
	c, err := scanCategory(r.db.QueryRow(ctx, query, id, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get category: %w", err)
		log.Error(err)
		return Category{}, err
	}
	return c, nil
}

func (r *RepositoryImpl) ListCategories(ctx context.Context, userId int) ([]Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM category WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	categories := make([]Category, 0, 16)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			err := fmt.Errorf("could not scan category: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return categories, nil
}

func (r *RepositoryImpl) UpdateCategory(ctx context.Context, userId int, id int, update Update) (Category, error) {
	query := `UPDATE category SET
                  name = COALESCE($1::text, name),
                  color = COALESCE($2::text, color),
                  icon = COALESCE($3::text, icon)
              WHERE id = $4 AND user_id = $5
              RETURNING ` + categoryColumns
	c, err := scanCategory(r.db.QueryRow(ctx, query, update.Name, update.Color, update.Icon, id, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not update category: %w", err)
		log.Error(err)
		return Category{}, err
	}
	return c, nil
}

func (r *RepositoryImpl) DeleteCategory(ctx context.Context, userId int, id int) (Category, error) {
	query := `DELETE FROM category WHERE id = $1 AND user_id = $2 RETURNING ` + categoryColumns
	c, err := scanCategory(r.db.QueryRow(ctx, query, id, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not delete category: %w", err)
		log.Error(err)
		return Category{}, err
	}
	return c, nil
}
