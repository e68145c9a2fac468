package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stayhub/internal/domain"
	"stayhub/internal/modules/pricing"
	"stayhub/internal/pkg/response"
)

type Handler struct {
	service *Service
	pricer  Quoter
}

func NewHandler(service *Service, pricer Quoter) *Handler {
	return &Handler{service: service, pricer: pricer}
}

// RegisterPublicRoutes registers the unauthenticated booking surface.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/calculate-price", h.CalculatePrice)
	rg.POST("/bookings/public", h.CreatePublic)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings/my", h.MyBookings)
	rg.GET("/bookings/:id", h.Get)
	rg.POST("/bookings/:id/check-in", h.CheckIn)
	rg.POST("/bookings/:id/check-out", h.CheckOut)
	rg.POST("/bookings/:id/cancel", h.Cancel)
	rg.PATCH("/bookings/:id/status", h.UpdateStatus)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func (h *Handler) CalculatePrice(c *gin.Context) {
	var body struct {
		RoomTypeID   int64  `json:"roomTypeId" binding:"required"`
		CheckInDate  string `json:"checkInDate" binding:"required"`
		CheckOutDate string `json:"checkOutDate" binding:"required"`
		Adults       int    `json:"adultsCount" binding:"required,gt=0"`
		Children     int    `json:"childrenCount"`
		CouponCode   string `json:"couponCode"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	checkIn, err1 := parseDate(body.CheckInDate)
	checkOut, err2 := parseDate(body.CheckOutDate)
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must be YYYY-MM-DD")
		return
	}

	quote, err := h.pricer.Quote(c.Request.Context(), pricing.QuoteRequest{
		RoomTypeID: body.RoomTypeID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Adults:     body.Adults,
		Children:   body.Children,
		CouponCode: body.CouponCode,
	})
	if err != nil {
		writePricingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, quote)
}

func writePricingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrRoomTypeNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room type not found")
	case errors.Is(err, pricing.ErrInvalidDateRange):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Check-out must be after check-in")
	case errors.Is(err, pricing.ErrCapacityExceeded):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Guest count exceeds room capacity")
	case errors.Is(err, pricing.ErrInvalidCoupon):
		response.Error(c, http.StatusBadRequest, "INVALID_COUPON", "Coupon is not valid")
	case errors.Is(err, pricing.ErrCouponExpired):
		response.Error(c, http.StatusBadRequest, "COUPON_EXPIRED", "Coupon is outside its validity window")
	case errors.Is(err, pricing.ErrCouponLimitReached):
		response.Error(c, http.StatusBadRequest, "COUPON_LIMIT_REACHED", "Coupon usage limit reached")
	case errors.Is(err, pricing.ErrMinimumAmountNotMet):
		response.Error(c, http.StatusBadRequest, "MINIMUM_AMOUNT_NOT_MET", "Booking amount below coupon minimum")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to calculate price")
	}
}

func (h *Handler) Create(c *gin.Context) {
	h.create(c, c.GetInt64("user_id"))
}

func (h *Handler) CreatePublic(c *gin.Context) {
	h.create(c, 0)
}

func (h *Handler) create(c *gin.Context, guestID int64) {
	var body createBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	checkIn, err1 := parseDate(body.CheckInDate)
	checkOut, err2 := parseDate(body.CheckOutDate)
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must be YYYY-MM-DD")
		return
	}

	req := body.CreateRequest
	req.CheckIn = checkIn
	req.CheckOut = checkOut
	req.GuestID = guestID
	req.ActorID = guestID

	role := domain.UserRole(c.GetString("role"))
	if req.OverrideTotal != nil || req.IsManual {
		if !domain.HasCapability(role, domain.CapManualBooking) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Manual bookings require staff access")
			return
		}
		req.IsManual = true
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoAvailability):
			response.Error(c, http.StatusConflict, "NO_AVAILABILITY", "No rooms available for the selected dates")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
		case errors.Is(err, ErrPriceOverrideTooLow):
			response.Error(c, http.StatusBadRequest, "PRICE_OVERRIDE_TOO_LOW", "Override below half of the computed total")
		default:
			writePricingError(c, err)
		}
		return
	}

	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) MyBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	out, err := h.service.ListForGuest(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) CheckIn(c *gin.Context) {
	h.transition(c, func(id, actor int64) (*domain.Booking, error) {
		return h.service.CheckIn(c.Request.Context(), id, actor)
	})
}

func (h *Handler) CheckOut(c *gin.Context) {
	h.transition(c, func(id, actor int64) (*domain.Booking, error) {
		return h.service.CheckOut(c.Request.Context(), id, actor)
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	var body CancelRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}
	h.transition(c, func(id, actor int64) (*domain.Booking, error) {
		return h.service.Cancel(c.Request.Context(), id, actor, body.Reason)
	})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var body StatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status is required")
		return
	}
	h.transition(c, func(id, actor int64) (*domain.Booking, error) {
		return h.service.UpdateStatus(c.Request.Context(), id, actor, domain.BookingStatus(body.Status))
	})
}

func (h *Handler) transition(c *gin.Context, fn func(id, actor int64) (*domain.Booking, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	b, err := fn(id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Operation not permitted in current booking state")
	case errors.Is(err, ErrPaymentIncomplete):
		response.Error(c, http.StatusConflict, "PAYMENT_INCOMPLETE", "Booking must be fully paid before check-in")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
