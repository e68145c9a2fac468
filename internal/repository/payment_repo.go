package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stayhub/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at").
		Find(&out).Error
	return out, err
}

// CapturedFields carries the values written when a payment is captured.
type CapturedFields struct {
	GatewayPaymentID string
	Signature        string
	Method           string
	PlatformFee      decimal.Decimal
	NetAmount        decimal.Decimal
	RawWebhookBody   string
	PaidAt           time.Time
}

// MarkPaidIdempotent flips the payment to PAID unless it already is. The
// returned flag tells the caller whether this call won the capture; losers
// must skip every downstream side effect (income, commission, notification).
func (r *PaymentRepository) MarkPaidIdempotent(ctx context.Context, orderID string, f CapturedFields) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("order_id = ? AND status <> ?", orderID, domain.PaymentPaid).
		Updates(map[string]interface{}{
			"status":             domain.PaymentPaid,
			"gateway_payment_id": f.GatewayPaymentID,
			"signature":          f.Signature,
			"method":             f.Method,
			"platform_fee":       f.PlatformFee,
			"net_amount":         f.NetAmount,
			"raw_webhook_body":   f.RawWebhookBody,
			"paid_at":            f.PaidAt,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// MarkFailed durably records a failed capture before the error is surfaced.
func (r *PaymentRepository) MarkFailed(ctx context.Context, orderID, reason, rawBody string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("order_id = ? AND status <> ?", orderID, domain.PaymentPaid).
		Updates(map[string]interface{}{
			"status":           domain.PaymentFailed,
			"failure_reason":   reason,
			"raw_webhook_body": rawBody,
		}).Error
}

func (r *PaymentRepository) UpdateRefund(ctx context.Context, paymentID int64, status domain.PaymentStatus, refundID string, amount decimal.Decimal, reason string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]interface{}{
			"status":          status,
			"refund_id":       refundID,
			"refunded_amount": amount,
			"refund_reason":   reason,
		}).Error
}
