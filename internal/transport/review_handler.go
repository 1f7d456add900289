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

// ReviewHandler handles review HTTP requests.
type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *zap.Logger
}

// NewReviewHandler creates a new instance of ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, logger: logger}
}

// RegisterRoutes registers review routes.
func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Route("/reviews", func(r chi.Router) {
		r.Post("/", h.SubmitReview)
		r.Get("/product/{id}", h.ListReviews)
	})
}

type reviewBody struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string   `json:"comment"`
}

// ListReviews handles GET /api/reviews/product/{id}.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	reviews, err := h.reviewService.ListReviews(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("Failed to list reviews", zap.Error(err), zap.String("product_id", productID.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, reviews)
}

// SubmitReview handles POST /api/reviews.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var body reviewBody
	if err := middleware.DecodeAndValidate(r, &body); err != nil {
		if fieldErrors := middleware.FormatValidationErrors(err); len(fieldErrors) > 0 {
			middleware.RespondWithValidationErrors(w, fieldErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.reviewService.SubmitReview(r.Context(), body.ProductID, service.ReviewInput{
		Rating:  body.Rating,
		Comment: body.Comment,
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("Failed to submit review", zap.Error(err), zap.String("product_id", body.ProductID.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, review)
}
