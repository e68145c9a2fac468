package partner

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stayhub/internal/domain"
	"stayhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/partners", h.Create)
	rg.GET("/partners/:id", h.Get)
	rg.GET("/partners/:id/transactions", h.Transactions)
	rg.POST("/partners/:id/wallet/topup", h.WalletTopup)
	rg.POST("/partners/:id/wallet/deduct", h.WalletDeduct)
	rg.POST("/partners/:id/payout", h.Payout)
	rg.POST("/partner-levels", h.CreateLevel)
	rg.GET("/partner-levels", h.ListLevels)
}

func (h *Handler) CreateLevel(c *gin.Context) {
	var req LevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	level := &domain.PartnerLevel{
		Name:           req.Name,
		MinPoints:      req.MinPoints,
		CommissionRate: req.CommissionRate,
	}
	if err := h.service.CreateLevel(c.Request.Context(), level); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, level)
}

func (h *Handler) ListLevels(c *gin.Context) {
	out, err := h.service.ListLevels(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list levels")
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	p, err := h.service.Create(c.Request.Context(), req.UserID, req.CommissionRate)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create partner")
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid partner id")
		return
	}
	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Transactions(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid partner id")
		return
	}
	out, err := h.service.ListTransactions(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list transactions")
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) WalletTopup(c *gin.Context) {
	h.amountOp(c, h.service.AddWalletBalance)
}

func (h *Handler) WalletDeduct(c *gin.Context) {
	h.amountOp(c, h.service.DeductWalletBalance)
}

func (h *Handler) Payout(c *gin.Context) {
	h.amountOp(c, h.service.Payout)
}

func (h *Handler) amountOp(c *gin.Context, fn func(ctx context.Context, partnerID int64, amount decimal.Decimal, note string) (*domain.CPTransaction, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid partner id")
		return
	}
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Amount is required")
		return
	}

	txn, err := fn(c.Request.Context(), id, req.Amount, req.Note)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, txn)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPartnerNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Channel partner not found")
	case errors.Is(err, ErrInvalidAmount):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Amount must be positive")
	case errors.Is(err, ErrInsufficientBalance):
		response.Error(c, http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", "Wallet balance is insufficient")
	case errors.Is(err, ErrPayoutExceedsEarnings):
		response.Error(c, http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", "Payout exceeds finalized earnings")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
