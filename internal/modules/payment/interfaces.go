package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"stayhub/internal/domain"
	"stayhub/internal/modules/booking"
	"stayhub/internal/repository"
)

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	MarkPaidIdempotent(ctx context.Context, orderID string, f repository.CapturedFields) (bool, error)
	MarkFailed(ctx context.Context, orderID, reason, rawBody string) error
	UpdateRefund(ctx context.Context, paymentID int64, status domain.PaymentStatus, refundID string, amount decimal.Decimal, reason string) error
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
}

type bookingApplier interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ApplyCapture(ctx context.Context, bookingID int64, amounts booking.PaidAmounts) (*domain.Booking, error)
	CanRefund(ctx context.Context, bookingID int64, full bool) error
	ApplyRefund(ctx context.Context, bookingID int64, amount decimal.Decimal, full bool) (*domain.Booking, error)
}

type roomTypeReader interface {
	GetByID(ctx context.Context, id int64) (*domain.RoomType, error)
}

type propertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

type commissionRecorder interface {
	RecordPendingCommission(ctx context.Context, bookingID, partnerID int64, bookingAmount decimal.Decimal) error
}

// GatewayClient is the outbound surface of the payment gateway; the gateway
// itself is a black box that issues orders, captures payments and emits
// signed webhooks.
type GatewayClient interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (string, error)
	CreateRefund(ctx context.Context, gatewayPaymentID string, amount decimal.Decimal, reason string) (string, error)
}
