package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stayhub/internal/domain"
	"stayhub/internal/pkg/response"
	"stayhub/internal/repository"
)

// OwnershipChecker verifies that the caller owns the property a route touches.
// Admins pass unconditionally.
type OwnershipChecker struct {
	propertyRepo *repository.PropertyRepository
	roomTypeRepo *repository.RoomTypeRepository
}

func NewOwnershipChecker(propertyRepo *repository.PropertyRepository, roomTypeRepo *repository.RoomTypeRepository) *OwnershipChecker {
	return &OwnershipChecker{propertyRepo: propertyRepo, roomTypeRepo: roomTypeRepo}
}

// CheckPropertyOwnership expects the property id in URL param "id".
func (oc *OwnershipChecker) CheckPropertyOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}
		if c.GetString("role") == string(domain.RoleAdmin) {
			c.Next()
			return
		}

		propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID")
			c.Abort()
			return
		}

		property, err := oc.propertyRepo.GetByID(c.Request.Context(), propertyID)
		if err != nil {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
			c.Abort()
			return
		}
		if property.OwnerID != userID {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this property")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CheckRoomTypeOwnership expects the room type id in URL param "id".
func (oc *OwnershipChecker) CheckRoomTypeOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}
		if c.GetString("role") == string(domain.RoleAdmin) {
			c.Next()
			return
		}

		roomTypeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room type ID")
			c.Abort()
			return
		}

		rt, err := oc.roomTypeRepo.GetByID(c.Request.Context(), roomTypeID)
		if err != nil {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room type not found")
			c.Abort()
			return
		}
		property, err := oc.propertyRepo.GetByID(c.Request.Context(), rt.PropertyID)
		if err != nil {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
			c.Abort()
			return
		}
		if property.OwnerID != userID {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this resource")
			c.Abort()
			return
		}

		c.Next()
	}
}
