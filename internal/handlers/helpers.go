package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/blurrhq/hr-portal-api/internal/database"
	"github.com/blurrhq/hr-portal-api/internal/middleware"
	"github.com/blurrhq/hr-portal-api/internal/models"
)

// currentOrganizationID resolves the authenticated user's organization.
// Users are attached to the default organization at registration, so a
// missing membership means an unauthenticated or half-provisioned session.
func currentOrganizationID(c *gin.Context) (uint64, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return 0, false
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		return 0, false
	}

	if user.OrganizationID == nil {
		return 0, false
	}

	return *user.OrganizationID, true
}
