package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seristack/cocoon-recommender/internal/domain/auth"
	"github.com/seristack/cocoon-recommender/internal/domain/farmer"
	"github.com/seristack/cocoon-recommender/internal/domain/market"
	"github.com/seristack/cocoon-recommender/internal/domain/pricing"
	"github.com/seristack/cocoon-recommender/internal/domain/recommend"
	"github.com/seristack/cocoon-recommender/pkg/dateutil"
	apperrors "github.com/seristack/cocoon-recommender/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	authSvc      auth.Service
	farmerSvc    farmer.Service
	recommendSvc recommend.Service
	marketSvc    market.Service
	oracle       *pricing.Oracle
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(authSvc auth.Service, farmerSvc farmer.Service, recommendSvc recommend.Service, marketSvc market.Service, oracle *pricing.Oracle, logger *slog.Logger) *Handler {
	return &Handler{
		authSvc:      authSvc,
		farmerSvc:    farmerSvc,
		recommendSvc: recommendSvc,
		marketSvc:    marketSvc,
		oracle:       oracle,
		logger:       logger.With("component", "http.handler"),
	}
}

// Register creates a new account and returns signed tokens.
func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, toHTTPError(err, "register_failed"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login authenticates with email and password.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, toHTTPError(err, "login_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh exchanges a refresh token for a new token pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if apperrors.IsCode(err, "invalid_token") {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "invalid_token", errMessage(err), err))
			return
		}
		abortWithError(c, toHTTPError(err, "refresh_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "authentication required", nil))
		return
	}
	view, err := h.authSvc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		abortWithError(c, toHTTPError(err, "profile_failed"))
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpsertProfile creates or updates the caller's farmer profile.
func (h *Handler) UpsertProfile(c *gin.Context) {
	claims, _ := getClaims(c)
	var req farmer.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	profile, err := h.farmerSvc.Upsert(c.Request.Context(), claims.UserID, req)
	if err != nil {
		abortWithError(c, toHTTPError(err, "profile_failed"))
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetProfile returns the caller's farmer profile.
func (h *Handler) GetProfile(c *gin.Context) {
	claims, _ := getClaims(c)
	profile, err := h.farmerSvc.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		abortWithError(c, toHTTPError(err, "profile_failed"))
		return
	}
	c.JSON(http.StatusOK, profile)
}

type predictRequest struct {
	City string `json:"city"`
}

// Predict generates and persists a rearing recommendation for a city.
func (h *Handler) Predict(c *gin.Context) {
	claims, _ := getClaims(c)
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	rec, err := h.recommendSvc.RecommendNow(c.Request.Context(), req.City, claims.UserID)
	if err != nil {
		abortWithError(c, toHTTPError(err, "recommendation_failed"))
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Window returns the candidate graph for the coming days.
func (h *Handler) Window(c *gin.Context) {
	city := c.Query("city")
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "days must be an integer", err))
			return
		}
		days = parsed
	}
	result, err := h.recommendSvc.RecommendWindow(c.Request.Context(), city, days)
	if err != nil {
		abortWithError(c, toHTTPError(err, "recommendation_failed"))
		return
	}
	c.JSON(http.StatusOK, result)
}

// History lists the caller's past recommendations, newest first.
func (h *Handler) History(c *gin.Context) {
	claims, _ := getClaims(c)
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be an integer", err))
			return
		}
		limit = parsed
	}
	recs, err := h.recommendSvc.History(c.Request.Context(), claims.UserID, limit)
	if err != nil {
		abortWithError(c, toHTTPError(err, "history_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"total":           len(recs),
	})
}

// UploadMarketWeather stores an observed market price with its weather.
func (h *Handler) UploadMarketWeather(c *gin.Context) {
	claims, _ := getClaims(c)
	var req marketUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	date, err := time.Parse(dateutil.DayLayout, req.Date)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "date must be formatted as YYYY-MM-DD", err))
		return
	}
	rec, err := h.marketSvc.Upload(c.Request.Context(), claims.UserID, market.UploadRequest{
		City:        req.City,
		Date:        date,
		MarketPrice: req.MarketPrice,
		AvgTemp:     req.AvgTemp,
		MaxTemp:     req.MaxTemp,
		AvgHumidity: req.AvgHumidity,
		Rainfall:    req.Rainfall,
	})
	if err != nil {
		abortWithError(c, toHTTPError(err, "upload_failed"))
		return
	}
	c.JSON(http.StatusCreated, rec)
}

type marketUploadRequest struct {
	City        string  `json:"city"`
	Date        string  `json:"date"`
	MarketPrice float64 `json:"marketPrice"`
	AvgTemp     float64 `json:"avgTemp"`
	MaxTemp     float64 `json:"maxTemp"`
	AvgHumidity float64 `json:"avgHumidity"`
	Rainfall    float64 `json:"rainfall"`
}

// ListMarketWeather returns stored observations for review.
func (h *Handler) ListMarketWeather(c *gin.Context) {
	filter := market.Filter{City: c.Query("city")}
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(dateutil.DayLayout, raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "from must be formatted as YYYY-MM-DD", err))
			return
		}
		filter.From = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(dateutil.DayLayout, raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "to must be formatted as YYYY-MM-DD", err))
			return
		}
		filter.To = parsed
	}
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be an integer", err))
			return
		}
		filter.Limit = parsed
	}
	records, err := h.marketSvc.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, toHTTPError(err, "list_failed"))
		return
	}
	c.JSON(http.StatusOK, records)
}

// Health reports API and model status.
func (h *Handler) Health(c *gin.Context) {
	model := h.oracle.Health()
	status := "healthy"
	if model.Status != "healthy" {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"model":     model,
		"api":       gin.H{"status": "running"},
	})
}

// toHTTPError maps domain error codes onto transport statuses. Only
// unsupported categories and persistence failures reject a request; degraded
// weather or inference never reach this path.
func toHTTPError(err error, fallbackCode string) *HTTPError {
	switch apperrors.CodeOf(err) {
	case "invalid_input":
		return NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
	case "unsupported_category":
		return NewHTTPError(http.StatusUnprocessableEntity, "unsupported_category", errMessage(err), err)
	case "invalid_credentials":
		return NewHTTPError(http.StatusUnauthorized, "invalid_credentials", errMessage(err), err)
	case "email_exists":
		return NewHTTPError(http.StatusConflict, "email_exists", errMessage(err), err)
	case "not_found", "user_not_found":
		return NewHTTPError(http.StatusNotFound, "not_found", errMessage(err), err)
	default:
		return NewHTTPError(http.StatusInternalServerError, fallbackCode, errMessage(err), err)
	}
}
