package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"github.com/bazarly/ads-service/internal/ads/usecase"
	"github.com/bazarly/ads-service/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxMediaUploadBytes caps a single media upload.
const maxMediaUploadBytes = 16 << 20

// Handler exposes the ads service over HTTP.
type Handler struct {
	listings  *usecase.ListingService
	ads       *usecase.AdUsecase
	featuring *usecase.FeaturingEngine
	favorites *usecase.FavoriteUsecase
	media     *usecase.MediaUsecase
	logger    *logger.Logger
}

func NewHandler(
	listings *usecase.ListingService,
	ads *usecase.AdUsecase,
	featuring *usecase.FeaturingEngine,
	favorites *usecase.FavoriteUsecase,
	media *usecase.MediaUsecase,
	log *logger.Logger,
) *Handler {
	return &Handler{
		listings:  listings,
		ads:       ads,
		featuring: featuring,
		favorites: favorites,
		media:     media,
		logger:    log.Named("HTTPHandler"),
	}
}

// HandleListAds serves GET /api/ads.
func (h *Handler) HandleListAds(w http.ResponseWriter, r *http.Request) {
	spec := parseFilterSpec(r)

	// An authenticated caller is the viewer regardless of the userId
	// query parameter, so one user can never request another user's
	// favorite flags.
	if viewer := UserIDFromContext(r.Context()); viewer != "" {
		spec.ViewerID = viewer
	}

	ads, err := h.listings.List(r.Context(), spec)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ads)
}

// HandleGetAd serves GET /api/ads/{uniqueCode}.
func (h *Handler) HandleGetAd(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "uniqueCode")
	ad, err := h.listings.GetByUniqueCode(r.Context(), code)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ad)
}

type createAdRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Details     string         `json:"details"`
	Price       float64        `json:"price"`
	Category    string         `json:"category"`
	Subcategory string         `json:"subcategory"`
	Location    string         `json:"location"`
	Media       []domain.Media `json:"media"`
}

// HandleCreateAd serves POST /api/ads.
func (h *Handler) HandleCreateAd(w http.ResponseWriter, r *http.Request) {
	var req createAdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	ad, err := h.ads.CreateAd(r.Context(), usecase.CreateAdInput{
		SellerID:    UserIDFromContext(r.Context()),
		Title:       req.Title,
		Description: req.Description,
		Details:     req.Details,
		Price:       req.Price,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Location:    req.Location,
		Media:       req.Media,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, ad)
}

// HandleDeleteAd serves DELETE /api/ads/{id}.
func (h *Handler) HandleDeleteAd(w http.ResponseWriter, r *http.Request) {
	adID := chi.URLParam(r, "id")
	if err := h.ads.DeleteAd(r.Context(), adID, UserIDFromContext(r.Context())); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type featureAdRequest struct {
	DurationDays *int `json:"durationDays"`
}

// HandleFeatureAd serves POST /api/ads/{id}/feature.
func (h *Handler) HandleFeatureAd(w http.ResponseWriter, r *http.Request) {
	adID := chi.URLParam(r, "id")

	var req featureAdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.DurationDays == nil {
		http.Error(w, "durationDays is required", http.StatusBadRequest)
		return
	}

	ad, err := h.featuring.Feature(r.Context(), adID, *req.DurationDays)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ad)
}

// HandleUploadMedia serves POST /api/ads/{id}/media (multipart form,
// field "file").
func (h *Handler) HandleUploadMedia(w http.ResponseWriter, r *http.Request) {
	adID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxMediaUploadBytes); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxMediaUploadBytes))
	if err != nil {
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}

	media, err := h.media.UploadMedia(r.Context(), adID, UserIDFromContext(r.Context()), header.Filename, data)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, media)
}

type favoriteRequest struct {
	AdID string `json:"adId"`
}

// HandleAddFavorite serves POST /api/favorites.
func (h *Handler) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.favorites.AddFavorite(r.Context(), UserIDFromContext(r.Context()), req.AdID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// HandleRemoveFavorite serves DELETE /api/favorites.
func (h *Handler) HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.favorites.RemoveFavorite(r.Context(), UserIDFromContext(r.Context()), req.AdID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetFavorites serves GET /api/favorites.
func (h *Handler) HandleGetFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favorites.GetFavorites(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, favorites)
}

// parseFilterSpec maps the recognized query parameters to a FilterSpec.
// Non-numeric page, limit and price values are ignored so they fall back
// to defaults instead of failing the request.
func parseFilterSpec(r *http.Request) domain.FilterSpec {
	q := r.URL.Query()

	spec := domain.FilterSpec{
		Category: q.Get("category"),
		Location: q.Get("location"),
		Search:   q.Get("search"),
		SellerID: q.Get("sellerId"),
		ViewerID: q.Get("userId"),
	}
	if v, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil {
		spec.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil {
		spec.MaxPrice = &v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		spec.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		spec.Limit = v
	}
	return spec
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps domain sentinels to HTTP statuses. Cache failures
// never reach this path; only validation, not-found, precondition and
// durable-store failures do.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrAdNotFound),
		errors.Is(err, domain.ErrSellerNotFound),
		errors.Is(err, domain.ErrFavoriteNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateFavorite):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
