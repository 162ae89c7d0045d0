package api

import (
	"net/http"

	"dareboard/pkg/auth"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated identity the middleware stored on the
// context. Aborts with 401 when it is missing or malformed.
func currentUser(c *gin.Context) (*auth.TelegramUserData, bool) {
	userData, exists := c.Get(auth.ContextUserKey)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, false
	}

	user, ok := userData.(*auth.TelegramUserData)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	}

	return user, true
}
