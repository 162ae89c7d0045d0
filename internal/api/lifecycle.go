package api

import (
	"net/http"

	"dareboard/internal/service"
	"dareboard/pkg/auth"
	"dareboard/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type lifecycleRoutes struct {
	ls service.LifecycleServiceI
	a  *auth.TelegramAuth
}

func NewLifecycleRoutes(handler *gin.RouterGroup, ls service.LifecycleServiceI, a *auth.TelegramAuth, adminOnly gin.HandlerFunc) {
	h := &lifecycleRoutes{ls: ls, a: a}

	lifecycle := handler.Group("/lifecycle")
	lifecycle.Use(a.TelegramAuthMiddleware())
	{
		lifecycle.POST("/sweep", adminOnly, h.TriggerSweep)
	}
}

// TriggerSweep runs one sweep on demand. The sweep is idempotent, so a
// redundant trigger next to the scheduled one is harmless.
func (h *lifecycleRoutes) TriggerSweep(c *gin.Context) {
	report, err := h.ls.RunSweep(c.Request.Context())
	if err != nil {
		logger.Logger().Error("manual sweep failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sweep failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expired_dares":          report.ExpiredDares,
		"low_engagement_dares":   report.LowEngagementDares,
		"low_smiles_completions": report.LowSmilesCompletions,
	})
}
