package api

import (
	"errors"
	"net/http"

	"dareboard/internal/model"
	"dareboard/internal/service"
	"dareboard/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type engagementRoutes struct {
	es service.EngagementServiceI
	a  *auth.TelegramAuth
}

func NewEngagementRoutes(handler *gin.RouterGroup, es service.EngagementServiceI, a *auth.TelegramAuth, adminOnly gin.HandlerFunc) {
	h := &engagementRoutes{es: es, a: a}

	engagements := handler.Group("/engagements")
	engagements.Use(a.TelegramAuthMiddleware())
	{
		engagements.POST("/", h.CreateEngagement)
		engagements.DELETE("/", h.DeleteEngagement)
		engagements.GET("/comments", h.ListComments)

		engagements.GET("/recount", adminOnly, h.Recount)
	}
}

type TargetRequest struct {
	DareID       *string `json:"dare_id" form:"dare_id"`
	CompletionID *string `json:"completion_id" form:"completion_id"`
}

func (r *TargetRequest) toTarget() (model.EngagementTarget, bool) {
	var target model.EngagementTarget

	if r.DareID != nil {
		id, err := uuid.Parse(*r.DareID)
		if err != nil {
			return target, false
		}
		target.DareID = &id
	}
	if r.CompletionID != nil {
		id, err := uuid.Parse(*r.CompletionID)
		if err != nil {
			return target, false
		}
		target.CompletionID = &id
	}

	return target, true
}

type EngagementRequest struct {
	TargetRequest
	Type    string `json:"engagement_type" binding:"required"`
	Content string `json:"content"`
}

type engagementResponse struct {
	EngagementID string  `json:"engagement_id"`
	UserID       int64   `json:"user_id"`
	Username     string  `json:"username"`
	DareID       *string `json:"dare_id,omitempty"`
	CompletionID *string `json:"completion_id,omitempty"`
	Type         string  `json:"engagement_type"`
	Content      string  `json:"content,omitempty"`
	CreatedAt    int64   `json:"created_at"`
}

func toEngagementResponse(engagement *model.Engagement) engagementResponse {
	out := engagementResponse{
		EngagementID: engagement.EngagementID.String(),
		UserID:       engagement.UserID,
		Username:     engagement.Username,
		Type:         string(engagement.Type),
		Content:      engagement.Content,
		CreatedAt:    engagement.CreatedAt.Unix(),
	}
	if engagement.Target.DareID != nil {
		id := engagement.Target.DareID.String()
		out.DareID = &id
	}
	if engagement.Target.CompletionID != nil {
		id := engagement.Target.CompletionID.String()
		out.CompletionID = &id
	}
	return out
}

func (h *engagementRoutes) CreateEngagement(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req EngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	target, ok := req.toTarget()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target id"})
		return
	}

	engagement := &model.Engagement{
		UserID:  user.ID,
		Target:  target,
		Type:    model.EngagementType(req.Type),
		Content: req.Content,
	}

	created, err := h.es.CreateEngagement(c.Request.Context(), engagement)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		case errors.Is(err, service.ErrInvalidTarget),
			errors.Is(err, service.ErrInvalidType),
			errors.Is(err, service.ErrContentRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrTargetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "target not found"})
		case errors.Is(err, service.ErrAlreadyEngaged):
			c.JSON(http.StatusConflict, gin.H{"error": "already engaged"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create engagement"})
		}
		return
	}

	c.JSON(http.StatusCreated, toEngagementResponse(created))
}

type DeleteEngagementRequest struct {
	TargetRequest
	Type string `json:"engagement_type" binding:"required"`
}

func (h *engagementRoutes) DeleteEngagement(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req DeleteEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	target, ok := req.toTarget()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target id"})
		return
	}

	err := h.es.DeleteEngagement(c.Request.Context(), user.ID, target, model.EngagementType(req.Type))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		case errors.Is(err, service.ErrInvalidTarget),
			errors.Is(err, service.ErrInvalidType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete engagement"})
		}
		return
	}

	c.Status(http.StatusOK)
}

func (h *engagementRoutes) targetFromQuery(c *gin.Context) (model.EngagementTarget, bool) {
	var req TargetRequest
	if raw := c.Query("dare_id"); raw != "" {
		req.DareID = &raw
	}
	if raw := c.Query("completion_id"); raw != "" {
		req.CompletionID = &raw
	}

	target, ok := req.toTarget()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target id"})
		return target, false
	}
	return target, true
}

func (h *engagementRoutes) ListComments(c *gin.Context) {
	target, ok := h.targetFromQuery(c)
	if !ok {
		return
	}

	comments, err := h.es.ListComments(c.Request.Context(), target)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}

	response := make([]engagementResponse, len(comments))
	for i, comment := range comments {
		response[i] = toEngagementResponse(comment)
	}

	c.JSON(http.StatusOK, response)
}

func (h *engagementRoutes) Recount(c *gin.Context) {
	target, ok := h.targetFromQuery(c)
	if !ok {
		return
	}

	counts, err := h.es.Recount(c.Request.Context(), target)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to recount engagements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"smiles":   counts.Smiles,
		"comments": counts.Comments,
		"shares":   counts.Shares,
		"tags":     counts.Tags,
	})
}
