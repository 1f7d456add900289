package transport

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryHandler handles category HTTP requests.
type CategoryHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCategoryHandler creates a new instance of CategoryHandler.
func NewCategoryHandler(catalogService service.CatalogService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{catalogService: catalogService, logger: logger}
}

// RegisterRoutes registers category routes.
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
	})
}

// ListCategories handles GET /api/categories.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// CreateCategory handles POST /api/categories.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input service.CategoryInput
	if err := middleware.DecodeAndValidate(r, &input); err != nil {
		if fieldErrors := middleware.FormatValidationErrors(err); len(fieldErrors) > 0 {
			middleware.RespondWithValidationErrors(w, fieldErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), input)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			middleware.RespondWithError(w, http.StatusConflict, "Category already exists")
			return
		}
		h.logger.Error("Failed to create category", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, category)
}
