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

// RatingHandler handles guest rating HTTP requests.
type RatingHandler struct {
	ratingService service.RatingService
	logger        *zap.Logger
}

// NewRatingHandler creates a new instance of RatingHandler.
func NewRatingHandler(ratingService service.RatingService, logger *zap.Logger) *RatingHandler {
	return &RatingHandler{ratingService: ratingService, logger: logger}
}

// RegisterRoutes registers rating routes.
func (h *RatingHandler) RegisterRoutes(r chi.Router) {
	r.Route("/ratings", func(r chi.Router) {
		r.Post("/", h.SubmitRating)
		r.Get("/product/{id}", h.ListRatings)
	})
}

// ratingBody is the submission payload; the product reference travels in
// the body rather than the path.
type ratingBody struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Review    *string   `json:"review"`
	GuestName *string   `json:"guestName"`
}

// ListRatings handles GET /api/ratings/product/{id}. The response carries
// the rows plus the aggregate over the full set.
func (h *RatingHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	list, err := h.ratingService.ListRatings(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("Failed to list ratings", zap.Error(err), zap.String("product_id", productID.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ratings")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, list)
}

// SubmitRating handles POST /api/ratings.
func (h *RatingHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	var body ratingBody
	if err := middleware.DecodeAndValidate(r, &body); err != nil {
		if fieldErrors := middleware.FormatValidationErrors(err); len(fieldErrors) > 0 {
			middleware.RespondWithValidationErrors(w, fieldErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rating, err := h.ratingService.SubmitRating(r.Context(), body.ProductID, service.RatingInput{
		Rating:    body.Rating,
		Review:    body.Review,
		GuestName: body.GuestName,
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("Failed to submit rating", zap.Error(err), zap.String("product_id", body.ProductID.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to submit rating")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, rating)
}
