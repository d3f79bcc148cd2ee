package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kusinapp/kusina-api/internal/domain/entity"
	infraRepo "github.com/kusinapp/kusina-api/internal/infrastructure/repository"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// userContext scopes the request context to the authenticated user so every
// downstream query stays inside that user's dataset.
func userContext(c *gin.Context) (context.Context, bool) {
	userID := GetUserID(c)
	if userID == nil {
		return c.Request.Context(), false
	}
	return infraRepo.WithUser(c.Request.Context(), *userID), true
}

// parseEntityID parses the :id path parameter into a confirmed entity id
func parseEntityID(c *gin.Context) (entity.EntityID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return entity.EntityID{}, false
	}
	return entity.ConfirmedID(id), true
}
