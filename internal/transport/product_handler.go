package transport

import (
	"errors"
	"net/http"
	"strconv"

	"nph-inventory/internal/domain"
	"nph-inventory/internal/middleware"
	"nph-inventory/internal/repository"
	"nph-inventory/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StockStatusRequest is the typed body of the stock/status override endpoint.
// Status must be one of the two recognized one-character codes.
type StockStatusRequest struct {
	Stock  *int   `json:"stock" validate:"required"`
	Status string `json:"status" validate:"required,oneof=A I"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/NPH/products", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Get("/active", h.GetActive)
		r.Get("/{id}", h.GetByID)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Put("/logic/{id}", h.SoftDelete)
		r.Put("/restore/{id}", h.Restore)
		r.Patch("/{id}/stock", h.UpdateStockAndStatus)
		r.Put("/increase-stock/{id}", h.IncreaseStock)
		r.Put("/adjust-stock/{id}", h.AdjustStock)
		r.Put("/reduce-stock/{id}", h.ReduceStock)
	})
}

// GetAll handles listing every product regardless of status
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetActive handles listing products whose status is active
func (h *ProductHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetActive(r.Context())
	if err != nil {
		h.logger.Error("Failed to list active products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list active products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetByID handles fetching a single product
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	product, err := h.productService.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create handles creating a new product
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := middleware.DecodeJSON(r, &product); err != nil {
		h.logger.Debug("Create decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.productService.Create(r.Context(), &product)
	if err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", created.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, created)
}

// Update handles full replacement of an existing product's fields
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var details domain.Product
	if err := middleware.DecodeJSON(r, &details); err != nil {
		h.logger.Debug("Update decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Update(r.Context(), id, &details)
	if err != nil {
		h.respondServiceError(w, err, "failed to update product")
		return
	}

	h.logger.Info("Product updated", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles permanent removal. Deleting a missing id still returns 204.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// SoftDelete handles logical deletion: the row stays, the status flips to
// inactive. A missing id yields an empty 200 body rather than an error.
func (h *ProductHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	product, err := h.productService.SoftDelete(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.logger.Error("Failed to soft delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to soft delete product")
		return
	}

	h.logger.Info("Product deactivated", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Restore handles reactivation of a soft-deleted product. A missing id, or a
// product that is not currently inactive, yields an empty 200 body.
func (h *ProductHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	product, err := h.productService.Restore(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.logger.Error("Failed to restore product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to restore product")
		return
	}

	h.logger.Info("Product restored", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// UpdateStockAndStatus handles the direct stock/status override used by the
// frontend. It does not go through the zero-crossing stock rules.
func (h *ProductHandler) UpdateStockAndStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req StockStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Stock override validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.SetStockAndStatus(r.Context(), id, *req.Stock, domain.Status(req.Status))
	if err != nil {
		h.respondServiceError(w, err, "failed to set stock and status")
		return
	}

	h.logger.Info("Product stock overridden",
		zap.Int64("product_id", product.ID),
		zap.Int("stock", product.Stock),
		zap.String("status", string(product.Status)),
	)
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// IncreaseStock handles adding stock to a product
func (h *ProductHandler) IncreaseStock(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	quantity, ok := h.parseQueryInt(w, r, "quantity")
	if !ok {
		return
	}

	product, err := h.productService.IncreaseStock(r.Context(), id, quantity)
	if err != nil {
		h.respondServiceError(w, err, "failed to increase stock")
		return
	}

	h.logger.Info("Stock increased",
		zap.Int64("product_id", product.ID),
		zap.Int("quantity", quantity),
		zap.Int("stock", product.Stock),
	)
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// AdjustStock handles applying a signed stock delta to a product
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	delta, ok := h.parseQueryInt(w, r, "quantityChange")
	if !ok {
		return
	}

	product, err := h.productService.AdjustStock(r.Context(), id, delta)
	if err != nil {
		h.respondServiceError(w, err, "failed to adjust stock")
		return
	}

	h.logger.Info("Stock adjusted",
		zap.Int64("product_id", product.ID),
		zap.Int("delta", delta),
		zap.Int("stock", product.Stock),
	)
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// ReduceStock handles removing stock from a product
func (h *ProductHandler) ReduceStock(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	quantity, ok := h.parseQueryInt(w, r, "quantity")
	if !ok {
		return
	}

	product, err := h.productService.ReduceStock(r.Context(), id, quantity)
	if err != nil {
		h.respondServiceError(w, err, "failed to reduce stock")
		return
	}

	h.logger.Info("Stock reduced",
		zap.Int64("product_id", product.ID),
		zap.Int("quantity", quantity),
		zap.Int("stock", product.Stock),
	)
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) parseQueryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing query parameter "+name)
		return 0, false
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid query parameter "+name)
		return 0, false
	}
	return value, true
}

// respondServiceError maps service failures onto the HTTP error taxonomy:
// missing rows are 404, rule precondition failures 400, stock exhaustion 409.
func (h *ProductHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, domain.ErrNonPositiveQuantity):
		middleware.RespondWithError(w, http.StatusBadRequest, domain.ErrNonPositiveQuantity.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		middleware.RespondWithError(w, http.StatusConflict, domain.ErrInsufficientStock.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
