package transport

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductHandler handles product and category HTTP requests.
type ProductHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewProductHandler creates a new instance of ProductHandler.
func NewProductHandler(catalogService service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{catalogService: catalogService, logger: logger}
}

// RegisterRoutes registers product routes.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})
}

// ListProducts handles GET /api/products. Supports free-text search on
// name and description plus filtering by category slug; both combine.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProductFilter{
		Search:       r.URL.Query().Get("q"),
		CategorySlug: r.URL.Query().Get("category"),
	}

	products, err := h.catalogService.ListProducts(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err), zap.String("product_id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /api/products.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input service.ProductInput
	if err := middleware.DecodeAndValidate(r, &input); err != nil {
		if fieldErrors := middleware.FormatValidationErrors(err); len(fieldErrors) > 0 {
			middleware.RespondWithValidationErrors(w, fieldErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), input)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Category not found")
			return
		}
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/{id}.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var input service.ProductInput
	if err := middleware.DecodeAndValidate(r, &input); err != nil {
		if fieldErrors := middleware.FormatValidationErrors(err); len(fieldErrors) > 0 {
			middleware.RespondWithValidationErrors(w, fieldErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, repository.ErrCategoryNotFound):
			middleware.RespondWithError(w, http.StatusBadRequest, "Category not found")
		default:
			h.logger.Error("Failed to update product", zap.Error(err), zap.String("product_id", id.String()))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/{id}.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err), zap.String("product_id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
