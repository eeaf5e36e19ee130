package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nph-inventory/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByIDAndStatus(ctx context.Context, id int64, status domain.Status) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByStatus(ctx context.Context, status domain.Status) ([]*domain.Product, error)
	DeleteByID(ctx context.Context, id int64) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = "id, type, description, package_weight, stock, entry_date, type_product, status"

// Save inserts the product when it has no id yet and updates it otherwise.
// The database assigns ids, so the inserted product gets its id written back.
func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	if product.ID == 0 {
		return r.insert(ctx, product)
	}
	return r.update(ctx, product)
}

func (r *productRepository) insert(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO product (type, description, package_weight, stock, entry_date, type_product, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Type,
		product.Description,
		product.PackageWeight,
		product.Stock,
		product.EntryDate,
		product.TypeProduct,
		product.Status,
	).Scan(&product.ID)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *productRepository) update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE product
		SET type = $2, description = $3, package_weight = $4, stock = $5,
		    entry_date = $6, type_product = $7, status = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Type,
		product.Description,
		product.PackageWeight,
		product.Stock,
		product.EntryDate,
		product.TypeProduct,
		product.Status,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by id, or ErrProductNotFound.
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM product WHERE id = $1", productColumns)
	return r.queryOne(ctx, query, id)
}

// FindByIDAndStatus retrieves a product only when both the id and the current
// status match; a row in a different status is reported as not found.
func (r *productRepository) FindByIDAndStatus(ctx context.Context, id int64, status domain.Status) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM product WHERE id = $1 AND status = $2", productColumns)
	return r.queryOne(ctx, query, id, status)
}

// FindAll retrieves every product regardless of status.
func (r *productRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM product ORDER BY id", productColumns)
	return r.queryMany(ctx, query)
}

// FindByStatus retrieves every product in the given status.
func (r *productRepository) FindByStatus(ctx context.Context, status domain.Status) ([]*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM product WHERE status = $1 ORDER BY id", productColumns)
	return r.queryMany(ctx, query, status)
}

// DeleteByID removes the product row. Deleting an id that does not exist is
// a no-op, matching the delete-by-id contract.
func (r *productRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM product WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

func (r *productRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*domain.Product, error) {
	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.Type,
		&product.Description,
		&product.PackageWeight,
		&product.Stock,
		&product.EntryDate,
		&product.TypeProduct,
		&product.Status,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

func (r *productRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Type,
			&product.Description,
			&product.PackageWeight,
			&product.Stock,
			&product.EntryDate,
			&product.TypeProduct,
			&product.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
