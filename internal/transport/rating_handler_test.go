package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRatingRouter(svc *mockRatingService) chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		NewRatingHandler(svc, zap.NewNop()).RegisterRoutes(r)
	})
	return r
}

func TestListRatingsHandler(t *testing.T) {
	svc := new(mockRatingService)
	productID := uuid.New()
	svc.On("ListRatings", mock.Anything, productID).Return(&service.RatingList{
		Ratings: []*domain.Rating{
			{ID: uuid.New(), ProductID: productID, Rating: 5},
			{ID: uuid.New(), ProductID: productID, Rating: 4},
		},
		AverageRating: 4.5,
		TotalRatings:  2,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/ratings/product/"+productID.String(), nil)
	rec := httptest.NewRecorder()
	newRatingRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Ratings       []domain.Rating `json:"ratings"`
		AverageRating float64         `json:"averageRating"`
		TotalRatings  int             `json:"totalRatings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Ratings, 2)
	assert.Equal(t, 4.5, body.AverageRating)
	assert.Equal(t, 2, body.TotalRatings)
}

func TestSubmitRatingHandler(t *testing.T) {
	t.Run("rating outside the scale returns 400", func(t *testing.T) {
		svc := new(mockRatingService)

		body := `{"productId": "` + uuid.NewString() + `", "rating": 6}`
		req := httptest.NewRequest(http.MethodPost, "/api/ratings", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newRatingRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "SubmitRating", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing product reference returns 400", func(t *testing.T) {
		svc := new(mockRatingService)

		req := httptest.NewRequest(http.MethodPost, "/api/ratings", strings.NewReader(`{"rating": 4}`))
		rec := httptest.NewRecorder()
		newRatingRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "SubmitRating", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown product returns 404", func(t *testing.T) {
		svc := new(mockRatingService)
		productID := uuid.New()
		svc.On("SubmitRating", mock.Anything, productID, mock.Anything).
			Return(nil, repository.ErrProductNotFound)

		body := `{"productId": "` + productID.String() + `", "rating": 4}`
		req := httptest.NewRequest(http.MethodPost, "/api/ratings", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newRatingRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Product not found", resp["error"])
	})

	t.Run("valid rating returns 201", func(t *testing.T) {
		svc := new(mockRatingService)
		productID := uuid.New()
		svc.On("SubmitRating", mock.Anything, productID, service.RatingInput{Rating: 4}).
			Return(&domain.Rating{ID: uuid.New(), ProductID: productID, Rating: 4}, nil)

		body := `{"productId": "` + productID.String() + `", "rating": 4}`
		req := httptest.NewRequest(http.MethodPost, "/api/ratings", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newRatingRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})
}
