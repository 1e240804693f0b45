package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductsReader = (*ProductsRepository)(nil)

// ErrNotMigrated means the products table is missing; run cmd/migrator.
var ErrNotMigrated = errors.New("catalog schema is not migrated")

type sqldb interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// A productRow mirrors the products table. Images and tags are jsonb.
type productRow struct {
	ID                 int             `db:"id"`
	Name               string          `db:"name"`
	Images             []byte          `db:"images"`
	Price              float64         `db:"price"`
	Rating             float64         `db:"rating"`
	Description        string          `db:"description"`
	Category           sql.NullString  `db:"category"`
	DiscountPercentage sql.NullFloat64 `db:"discount_percentage"`
	Stock              sql.NullInt64   `db:"stock"`
	Tags               []byte          `db:"tags"`
}

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

// ReadProducts returns the whole catalog ordered by id.
func (r ProductsRepository) ReadProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductsRepository.ReadProducts"

	query := `
		SELECT
			id, name, images, price, rating, description,
			category, discount_percentage, stock, tags
		FROM products
		ORDER BY id ASC;`

	var rows []productRow
	if err := r.sqldb.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	ps := make([]domain.Product, len(rows))
	for i, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: product %d: %w", op, row.ID, err)
		}
		ps[i] = p
	}
	return ps, nil
}

// StoreProducts upserts ps by id in one transaction.
func (r ProductsRepository) StoreProducts(
	ctx context.Context, ps []domain.Product,
) (storeErr error) {
	const op = "ProductsRepository.StoreProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, classify(err))
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit %w", op, err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO products (
			id, name, images, price, rating, description,
			category, discount_percentage, stock, tags
		)
		VALUES (
			:id, :name, :images, :price, :rating, :description,
			:category, :discount_percentage, :stock, :tags
		)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			images = EXCLUDED.images,
			price = EXCLUDED.price,
			rating = EXCLUDED.rating,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			discount_percentage = EXCLUDED.discount_percentage,
			stock = EXCLUDED.stock,
			tags = EXCLUDED.tags;`

	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, classify(err))
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for _, p := range ps {
		row, err := productRowFrom(p)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if _, err := stmt.ExecContext(ctx, row); err != nil {
			return fmt.Errorf("%s: failed to exec: %w", op, err)
		}
	}

	log.Info("products stored", "nProducts", len(ps))
	return nil
}

func productRowFrom(p domain.Product) (productRow, error) {
	images, err := json.Marshal(nonNil(p.Images))
	if err != nil {
		return productRow{}, err
	}
	tags, err := json.Marshal(nonNil(p.Tags))
	if err != nil {
		return productRow{}, err
	}
	return productRow{
		ID:          p.ID,
		Name:        p.Name,
		Images:      images,
		Price:       p.Price,
		Rating:      p.Rating,
		Description: p.Description,
		Category:    sql.NullString{String: p.Category, Valid: p.HasCategory()},
		DiscountPercentage: sql.NullFloat64{
			Float64: p.DiscountPercentage, Valid: p.DiscountPercentage > 0,
		},
		Stock: sql.NullInt64{Int64: int64(p.Stock), Valid: p.Stock > 0},
		Tags:  tags,
	}, nil
}

func (row productRow) toDomain() (domain.Product, error) {
	p := domain.Product{
		ID:                 row.ID,
		Name:               row.Name,
		Price:              row.Price,
		Rating:             row.Rating,
		Description:        row.Description,
		Category:           row.Category.String,
		DiscountPercentage: row.DiscountPercentage.Float64,
		Stock:              int(row.Stock.Int64),
	}
	if err := unmarshalList(row.Images, &p.Images); err != nil {
		return domain.Product{}, fmt.Errorf("images: %w", err)
	}
	if err := unmarshalList(row.Tags, &p.Tags); err != nil {
		return domain.Product{}, fmt.Errorf("tags: %w", err)
	}
	return p, nil
}

func unmarshalList(data []byte, v *[]string) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		return fmt.Errorf("%w: %w", ErrNotMigrated, err)
	}
	return err
}
