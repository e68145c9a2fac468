package availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stayhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/check-availability", h.Check)
	rg.POST("/bookings/search", h.Search)
}

func (h *Handler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	checkIn, err1 := time.Parse("2006-01-02", req.CheckInDate)
	checkOut, err2 := time.Parse("2006-01-02", req.CheckOutDate)
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must be YYYY-MM-DD")
		return
	}

	rooms, err := h.service.AvailableRooms(c.Request.Context(), req.RoomTypeID, checkIn, checkOut)
	if err != nil {
		if errors.Is(err, ErrInvalidDateRange) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Check-out must be after check-in")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Availability check failed")
		return
	}

	response.Success(c, http.StatusOK, CheckResponse{
		Available:      len(rooms) > 0,
		AvailableRooms: rooms,
	})
}

func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	checkIn, err1 := time.Parse("2006-01-02", req.CheckInDate)
	checkOut, err2 := time.Parse("2006-01-02", req.CheckOutDate)
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must be YYYY-MM-DD")
		return
	}

	results, err := h.service.SearchRoomTypes(c.Request.Context(), req, checkIn, checkOut)
	if err != nil {
		if errors.Is(err, ErrInvalidDateRange) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Check-out must be after check-in")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Search failed")
		return
	}

	response.Success(c, http.StatusOK, SearchResponse{AvailableRoomTypes: results})
}
