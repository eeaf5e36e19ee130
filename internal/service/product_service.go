package service

import (
	"context"
	"fmt"

	"nph-inventory/internal/domain"
	"nph-inventory/internal/repository"
)

// ProductService defines the interface for product lifecycle operations
type ProductService interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
	GetActive(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, id int64, details *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	SoftDelete(ctx context.Context, id int64) (*domain.Product, error)
	Restore(ctx context.Context, id int64) (*domain.Product, error)
	IncreaseStock(ctx context.Context, id int64, quantity int) (*domain.Product, error)
	ReduceStock(ctx context.Context, id int64, quantity int) (*domain.Product, error)
	AdjustStock(ctx context.Context, id int64, delta int) (*domain.Product, error)
	SetStockAndStatus(ctx context.Context, id int64, stock int, status domain.Status) (*domain.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// Create persists a new product. Status defaults to active when unset.
func (s *productService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.Status == "" {
		product.Status = domain.StatusActive
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// GetAll returns every product regardless of status.
func (s *productService) GetAll(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetActive returns the products whose status is active. The filter is
// applied after retrieval rather than pushed down to the store.
func (s *productService) GetActive(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	active := []*domain.Product{}
	for _, product := range products {
		if product.Status == domain.StatusActive {
			active = append(active, product)
		}
	}
	return active, nil
}

// GetByID returns the product or repository.ErrProductNotFound.
func (s *productService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// Update overwrites every mutable field of an existing product with the
// caller-supplied values (full replace, not a partial patch).
func (s *productService) Update(ctx context.Context, id int64, details *domain.Product) (*domain.Product, error) {
	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Type = details.Type
	existing.Description = details.Description
	existing.PackageWeight = details.PackageWeight
	existing.Stock = details.Stock
	existing.EntryDate = details.EntryDate
	existing.TypeProduct = details.TypeProduct
	existing.Status = details.Status

	if err := s.productRepo.Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return existing, nil
}

// Delete removes the row permanently. Deleting a missing id is a no-op.
func (s *productService) Delete(ctx context.Context, id int64) error {
	return s.productRepo.DeleteByID(ctx, id)
}

// SoftDelete marks the product inactive without removing it. Applying it to
// an already inactive product leaves the state unchanged.
func (s *productService) SoftDelete(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Status = domain.StatusInactive
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to soft delete product: %w", err)
	}

	return product, nil
}

// Restore reactivates a soft-deleted product. The lookup is keyed on id AND
// inactive status, so restoring a product that is already active reports
// not found rather than mutating it.
func (s *productService) Restore(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.FindByIDAndStatus(ctx, id, domain.StatusInactive)
	if err != nil {
		return nil, err
	}

	product.Status = domain.StatusActive
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to restore product: %w", err)
	}

	return product, nil
}

// IncreaseStock adds quantity to the product's stock via the stock rules.
func (s *productService) IncreaseStock(ctx context.Context, id int64, quantity int) (*domain.Product, error) {
	return s.applyStockOperation(ctx, id, func(state domain.StockState) (domain.StockState, error) {
		return domain.IncreaseStock(state, quantity)
	})
}

// ReduceStock removes quantity from the product's stock via the stock rules.
func (s *productService) ReduceStock(ctx context.Context, id int64, quantity int) (*domain.Product, error) {
	return s.applyStockOperation(ctx, id, func(state domain.StockState) (domain.StockState, error) {
		return domain.ReduceStock(state, quantity)
	})
}

// AdjustStock applies a signed stock delta via the stock rules.
func (s *productService) AdjustStock(ctx context.Context, id int64, delta int) (*domain.Product, error) {
	return s.applyStockOperation(ctx, id, func(state domain.StockState) (domain.StockState, error) {
		return domain.AdjustStock(state, delta)
	})
}

// SetStockAndStatus overwrites stock and status verbatim. This is the trusted
// frontend override path: it deliberately bypasses the zero-crossing rules
// the dedicated stock operations go through.
func (s *productService) SetStockAndStatus(ctx context.Context, id int64, stock int, status domain.Status) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Stock = stock
	product.Status = status

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to set stock and status: %w", err)
	}

	return product, nil
}

// applyStockOperation runs a fetch, rules, persist sequence. A rule failure
// surfaces unchanged and nothing is written. The read and the write are two
// separate statements, so concurrent stock operations against the same row
// can lose updates; callers needing stronger guarantees must serialize.
func (s *productService) applyStockOperation(ctx context.Context, id int64, op func(domain.StockState) (domain.StockState, error)) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newState, err := op(product.StockState())
	if err != nil {
		return nil, err
	}

	product.ApplyStockState(newState)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to persist stock change: %w", err)
	}

	return product, nil
}
