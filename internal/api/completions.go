package api

import (
	"errors"
	"net/http"
	"strconv"

	"dareboard/internal/model"
	"dareboard/internal/service"
	"dareboard/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type completionRoutes struct {
	cs service.CompletionServiceI
	rs service.RankingServiceI
	a  *auth.TelegramAuth
}

func NewCompletionRoutes(handler *gin.RouterGroup, cs service.CompletionServiceI, rs service.RankingServiceI, a *auth.TelegramAuth) {
	h := &completionRoutes{cs: cs, rs: rs, a: a}

	dares := handler.Group("/dares")
	dares.Use(a.TelegramAuthMiddleware())
	{
		dares.POST("/:dare_id/completions", h.CreateCompletion)
		dares.GET("/:dare_id/completions", h.ListDareCompletions)
	}

	completions := handler.Group("/completions")
	completions.Use(a.TelegramAuthMiddleware())
	{
		completions.GET("/trending", h.TrendingCompletions)
		completions.GET("/:completion_id", h.GetCompletion)
	}
}

type completionResponse struct {
	CompletionID string   `json:"completion_id"`
	DareID       string   `json:"dare_id"`
	UserID       int64    `json:"user_id"`
	MediaURLs    []string `json:"media_urls"`
	Caption      string   `json:"caption,omitempty"`
	Location     string   `json:"location,omitempty"`
	CreatedAt    int64    `json:"created_at"`

	SmileCount   int `json:"smile_count"`
	CommentCount int `json:"comment_count"`
	ShareCount   int `json:"share_count"`
}

func toCompletionResponse(completion *model.CompletedDare) completionResponse {
	return completionResponse{
		CompletionID: completion.CompletionID.String(),
		DareID:       completion.DareID.String(),
		UserID:       completion.UserID,
		MediaURLs:    completion.MediaURLs,
		Caption:      completion.Caption,
		Location:     completion.Location,
		CreatedAt:    completion.CreatedAt.Unix(),
		SmileCount:   completion.SmileCount,
		CommentCount: completion.CommentCount,
		ShareCount:   completion.ShareCount,
	}
}

type CreateCompletionRequest struct {
	MediaURLs []string `json:"media_urls" binding:"required"`
	Caption   string   `json:"caption"`
	Location  string   `json:"location"`
}

func (h *completionRoutes) CreateCompletion(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	dareID, err := uuid.Parse(c.Param("dare_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dare_id"})
		return
	}

	var req CreateCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	completion := &model.CompletedDare{
		DareID:    dareID,
		UserID:    user.ID,
		MediaURLs: req.MediaURLs,
		Caption:   req.Caption,
		Location:  req.Location,
	}

	completionID, err := h.cs.CreateCompletion(c.Request.Context(), completion)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMediaRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least one media url is required"})
		case errors.Is(err, service.ErrDareNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "dare_id not found"})
		case errors.Is(err, service.ErrDareClosed):
			c.JSON(http.StatusForbidden, gin.H{"error": "dare no longer accepts completions"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create completion"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"completion_id": completionID,
	})
}

func (h *completionRoutes) ListDareCompletions(c *gin.Context) {
	dareID, err := uuid.Parse(c.Param("dare_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dare_id"})
		return
	}

	completions, err := h.cs.ListCompletions(c.Request.Context(), &dareID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list completions"})
		return
	}

	response := make([]completionResponse, len(completions))
	for i, completion := range completions {
		response[i] = toCompletionResponse(completion)
	}

	c.JSON(http.StatusOK, response)
}

func (h *completionRoutes) GetCompletion(c *gin.Context) {
	completionID, err := uuid.Parse(c.Param("completion_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completion_id"})
		return
	}

	completion, err := h.cs.GetCompletion(c.Request.Context(), completionID)
	if err != nil {
		if errors.Is(err, service.ErrCompletionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "completion_id not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get completion"})
		return
	}

	c.JSON(http.StatusOK, toCompletionResponse(completion))
}

func (h *completionRoutes) TrendingCompletions(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	completions, err := h.rs.TrendingCompletions(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list trending completions"})
		return
	}

	response := make([]completionResponse, len(completions))
	for i, completion := range completions {
		response[i] = toCompletionResponse(completion)
	}

	c.JSON(http.StatusOK, response)
}
