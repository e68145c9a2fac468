package report

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
	rg.GET("/reports/dashboard", h.Dashboard)
	rg.GET("/reports/financial", h.Financial)
	rg.GET("/reports/occupancy", h.Occupancy)
	rg.GET("/reports/partners", h.Partners)
}

func (h *Handler) Partners(c *gin.Context) {
	report, err := h.service.Partners(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build report")
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build dashboard")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) Financial(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	report, err := h.service.Financial(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) Occupancy(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	report, err := h.service.Occupancy(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

func dateRange(c *gin.Context) (from, to time.Time, ok bool) {
	var err1, err2 error
	from, err1 = time.Parse("2006-01-02", c.Query("from"))
	to, err2 = time.Parse("2006-01-02", c.Query("to"))
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from and to must be YYYY-MM-DD")
		return from, to, false
	}
	return from, to, true
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidDateRange) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "to must be after from")
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build report")
}
