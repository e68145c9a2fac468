package payment

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stayhub/internal/modules/booking"
	"stayhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes covers the endpoints the gateway and the checkout page
// call without a session: webhook delivery and client-side verification.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/verify", h.Verify)
	rg.POST("/payments/webhook", h.Webhook)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/initiate", h.Initiate)
	rg.GET("/payments/booking/:bookingID", h.ListForBooking)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/:paymentID/refund", h.Refund)
}

func (h *Handler) Initiate(c *gin.Context) {
	var req InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	out, err := h.service.Initiate(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrNotPayable):
			response.Error(c, http.StatusConflict, "INVALID_STATE", "Booking is not payable")
		default:
			response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "Failed to open gateway order")
		}
		return
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Verify(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSignature):
			response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Payment signature verification failed")
		case errors.Is(err, ErrPaymentNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Payment verification failed")
		}
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Webhook reads the raw body before any JSON decoding; the gateway signature
// covers the exact bytes sent.
func (h *Handler) Webhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unreadable body")
		return
	}
	signature := c.GetHeader("X-Razorpay-Signature")

	if err := h.service.HandleWebhook(c.Request.Context(), rawBody, signature); err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Webhook signature verification failed")
			return
		}
		// Non-2xx makes the gateway retry delivery.
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Webhook processing failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListForBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("bookingID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	out, err := h.service.ListByBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list payments")
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Refund(c *gin.Context) {
	paymentID, err := strconv.ParseInt(c.Param("paymentID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid payment id")
		return
	}
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Refund(c.Request.Context(), paymentID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment not found")
		case errors.Is(err, ErrNotRefundable):
			response.Error(c, http.StatusConflict, "INVALID_STATE", "Payment is not refundable")
		case errors.Is(err, ErrRefundTooLarge):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Refund amount exceeds the captured amount")
		case errors.Is(err, booking.ErrInvalidState):
			response.Error(c, http.StatusConflict, "INVALID_STATE", "Booking cannot be refunded in its current state")
		default:
			response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "Gateway refund failed")
		}
		return
	}
	response.Success(c, http.StatusOK, p)
}
