package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dareboard/internal/model"
	"dareboard/internal/service"
	"dareboard/pkg/auth"
	"dareboard/pkg/timeutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type dareRoutes struct {
	ds service.DareServiceI
	rs service.RankingServiceI
	a  *auth.TelegramAuth
}

func NewDareRoutes(handler *gin.RouterGroup, ds service.DareServiceI, rs service.RankingServiceI, a *auth.TelegramAuth, adminOnly gin.HandlerFunc) {
	h := &dareRoutes{ds: ds, rs: rs, a: a}

	dares := handler.Group("/dares")
	dares.Use(a.TelegramAuthMiddleware())
	{
		dares.POST("/", h.CreateDare)
		dares.GET("/", h.ListDares)
		dares.GET("/expiring", h.ExpiringSoon)
		dares.GET("/trending", h.TrendingDares)
		dares.GET("/:dare_id", h.GetDare)

		dares.DELETE("/:dare_id", adminOnly, h.HideDare)
	}
}

type dareResponse struct {
	DareID      string `json:"dare_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Hashtag     string `json:"hashtag,omitempty"`
	Vibe        string `json:"vibe"`
	CreatorID   int64  `json:"creator_id"`
	ExpiresAt   int64  `json:"expires_at"`
	CreatedAt   int64  `json:"created_at"`
	IsActive    bool   `json:"is_active"`

	CompletionCount int `json:"completion_count"`
	SmileCount      int `json:"smile_count"`
	CommentCount    int `json:"comment_count"`
	ShareCount      int `json:"share_count"`

	IsExpired      bool   `json:"is_expired"`
	IsExpiringSoon bool   `json:"is_expiring_soon"`
	TimeLeft       string `json:"time_left"`
}

func toDareResponse(dare *model.Dare, now time.Time) dareResponse {
	return dareResponse{
		DareID:          dare.DareID.String(),
		Title:           dare.Title,
		Description:     dare.Description,
		Hashtag:         dare.Hashtag,
		Vibe:            string(dare.Vibe),
		CreatorID:       dare.CreatorID,
		ExpiresAt:       dare.ExpiresAt.Unix(),
		CreatedAt:       dare.CreatedAt.Unix(),
		IsActive:        dare.IsActive,
		CompletionCount: dare.CompletionCount,
		SmileCount:      dare.SmileCount,
		CommentCount:    dare.CommentCount,
		ShareCount:      dare.ShareCount,
		IsExpired:       timeutil.IsExpired(dare.ExpiresAt, now),
		IsExpiringSoon:  timeutil.IsExpiringSoon(dare.ExpiresAt, now),
		TimeLeft:        timeutil.FormatRemaining(dare.ExpiresAt, now),
	}
}

type CreateDareRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Hashtag     string `json:"hashtag"`
	Vibe        string `json:"vibe" binding:"required"`
	ExpiresAt   *int64 `json:"expires_at"`
}

func (h *dareRoutes) CreateDare(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateDareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dare := &model.Dare{
		Title:       req.Title,
		Description: req.Description,
		Hashtag:     req.Hashtag,
		Vibe:        model.Vibe(req.Vibe),
		CreatorID:   user.ID,
	}
	if req.ExpiresAt != nil {
		dare.ExpiresAt = time.Unix(*req.ExpiresAt, 0).UTC()
	}

	dareID, err := h.ds.CreateDare(c.Request.Context(), dare)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired),
			errors.Is(err, service.ErrInvalidVibe),
			errors.Is(err, service.ErrExpiryInPast):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create dare"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"dare_id": dareID,
	})
}

func (h *dareRoutes) ListDares(c *gin.Context) {
	dares, err := h.ds.ListDares(c.Request.Context(), c.Query("vibe"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidVibe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vibe"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list dares"})
		return
	}

	now := time.Now().UTC()
	response := make([]dareResponse, len(dares))
	for i, dare := range dares {
		response[i] = toDareResponse(dare, now)
	}

	c.JSON(http.StatusOK, response)
}

func (h *dareRoutes) GetDare(c *gin.Context) {
	dareID, err := uuid.Parse(c.Param("dare_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dare_id"})
		return
	}

	dare, err := h.ds.GetDare(c.Request.Context(), dareID)
	if err != nil {
		if errors.Is(err, service.ErrDareNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dare_id not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get dare"})
		return
	}

	c.JSON(http.StatusOK, toDareResponse(dare, time.Now().UTC()))
}

func (h *dareRoutes) ExpiringSoon(c *gin.Context) {
	hours := 24
	if raw := c.Query("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hours"})
			return
		}
		hours = parsed
	}

	dares, err := h.rs.ExpiringSoon(c.Request.Context(), hours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list expiring dares"})
		return
	}

	now := time.Now().UTC()
	response := make([]dareResponse, len(dares))
	for i, dare := range dares {
		response[i] = toDareResponse(dare, now)
	}

	c.JSON(http.StatusOK, response)
}

func (h *dareRoutes) TrendingDares(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	dares, err := h.rs.TrendingDares(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list trending dares"})
		return
	}

	now := time.Now().UTC()
	response := make([]dareResponse, len(dares))
	for i, dare := range dares {
		response[i] = toDareResponse(dare, now)
	}

	c.JSON(http.StatusOK, response)
}

func (h *dareRoutes) HideDare(c *gin.Context) {
	dareID, err := uuid.Parse(c.Param("dare_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dare_id"})
		return
	}

	err = h.ds.HideDare(c.Request.Context(), dareID)
	if err != nil {
		if errors.Is(err, service.ErrDareNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dare_id not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hide dare"})
		return
	}

	c.Status(http.StatusOK)
}
