package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stayhub/internal/domain"
	"stayhub/internal/modules/booking"
	"stayhub/internal/repository"
)

var (
	hundred = decimal.NewFromInt(100)
	three   = decimal.NewFromInt(3)
)

var defaultPlatformRate = decimal.NewFromInt(10)

type Service struct {
	payments    paymentRepo
	bookings    bookingApplier
	roomTypes   roomTypeReader
	properties  propertyReader
	commissions commissionRecorder
	gateway     GatewayClient
	loggerf     func(format string, args ...interface{})

	keyID         string
	keySecret     string
	webhookSecret string
}

func NewService(
	payments paymentRepo,
	bookings bookingApplier,
	roomTypes roomTypeReader,
	properties propertyReader,
	commissions commissionRecorder,
	gateway GatewayClient,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		payments:    payments,
		bookings:    bookings,
		roomTypes:   roomTypes,
		properties:  properties,
		commissions: commissions,
		gateway:     gateway,
		loggerf:     loggerf,

		keyID:         os.Getenv("RAZORPAY_KEY_ID"),
		keySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
		webhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
	}
}

// payable reports whether more money may be collected against the booking:
// the initial charge while payment is pending, or the balance after a
// partial charge.
func payable(b *domain.Booking) bool {
	if b.Status == domain.BookingPendingPayment {
		return true
	}
	return b.Status == domain.BookingConfirmed && b.PaymentStatus != domain.BookingFull
}

func (s *Service) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResponse, error) {
	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if !payable(b) {
		return nil, ErrNotPayable
	}

	outstanding := b.TotalAmount.Sub(b.PaidAmount)
	amount := outstanding
	if req.Partial && b.PaidAmount.IsZero() {
		amount = b.TotalAmount.Div(three).Round(2)
	}

	orderID, err := s.gateway.CreateOrder(ctx, amount, "INR", b.Number)
	if err != nil {
		return nil, err
	}

	p := &domain.Payment{
		BookingID: b.ID,
		Amount:    amount,
		Currency:  "INR",
		Status:    domain.PaymentPending,
		OrderID:   orderID,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	return &InitiateResponse{OrderID: orderID, Amount: amount, Currency: "INR", KeyID: s.keyID}, nil
}

// Verify is the synchronous, client-driven capture path. It shares the
// idempotency guard with the webhook path, so whichever arrives second is a
// no-op.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (*domain.Payment, error) {
	expected := signPayload(req.OrderID+"|"+req.PaymentID, s.keySecret)
	if !hmac.Equal([]byte(expected), []byte(req.Signature)) {
		// The failure is recorded durably before being surfaced.
		if err := s.payments.MarkFailed(ctx, req.OrderID, "invalid signature", ""); err != nil {
			s.loggerf("level=error msg=mark failed errored order_id=%s err=%v", req.OrderID, err)
		}
		return nil, ErrInvalidSignature
	}

	return s.capture(ctx, req.OrderID, req.PaymentID, req.Signature, "", "")
}

// HandleWebhook is the asynchronous, gateway-driven capture path. The
// signature covers the raw body.
func (s *Service) HandleWebhook(ctx context.Context, rawBody []byte, signature string) error {
	expected := signPayload(string(rawBody), s.webhookSecret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}

	var event webhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return err
	}
	entity := event.Payload.Payment.Entity

	switch event.Event {
	case "payment.captured":
		_, err := s.capture(ctx, entity.OrderID, entity.ID, signature, entity.Method, string(rawBody))
		return err
	case "payment.failed":
		return s.payments.MarkFailed(ctx, entity.OrderID, "gateway reported failure", string(rawBody))
	default:
		s.loggerf("level=info msg=ignoring webhook event event=%s", event.Event)
		return nil
	}
}

// capture converges both entry points on the same idempotent outcome. Only
// the call that wins the PENDING -> PAID flip applies downstream side
// effects: booking reconciliation, income, commission, notification.
func (s *Service) capture(ctx context.Context, orderID, gatewayPaymentID, signature, method, rawBody string) (*domain.Payment, error) {
	p, err := s.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	b, err := s.bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}

	fee, err := s.platformFee(ctx, b, p.Amount)
	if err != nil {
		return nil, err
	}

	changed, err := s.payments.MarkPaidIdempotent(ctx, orderID, repository.CapturedFields{
		GatewayPaymentID: gatewayPaymentID,
		Signature:        signature,
		Method:           method,
		PlatformFee:      fee,
		NetAmount:        p.Amount.Sub(fee),
		RawWebhookBody:   rawBody,
		PaidAt:           time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		s.loggerf("level=info msg=idempotent capture already paid order_id=%s", orderID)
		return s.payments.GetByOrderID(ctx, orderID)
	}

	b, err = s.bookings.ApplyCapture(ctx, p.BookingID, booking.PaidAmounts{
		Amount:      p.Amount,
		PlatformFee: fee,
		NetAmount:   p.Amount.Sub(fee),
	})
	if err != nil {
		return nil, err
	}

	if b.ChannelPartnerID != nil {
		if err := s.commissions.RecordPendingCommission(ctx, b.ID, *b.ChannelPartnerID, b.TotalAmount); err != nil {
			s.loggerf("level=error msg=commission record failed booking_id=%d err=%v", b.ID, err)
		}
	}

	return s.payments.GetByOrderID(ctx, orderID)
}

// platformFee resolves the property's commission rate, defaulting to 10%.
func (s *Service) platformFee(ctx context.Context, b *domain.Booking, amount decimal.Decimal) (decimal.Decimal, error) {
	rate := defaultPlatformRate
	rt, err := s.roomTypes.GetByID(ctx, b.RoomTypeID)
	if err != nil {
		return decimal.Zero, err
	}
	prop, err := s.properties.GetByID(ctx, rt.PropertyID)
	if err == nil && prop.CommissionRate.GreaterThan(decimal.Zero) {
		rate = prop.CommissionRate
	}
	return amount.Mul(rate).Div(hundred).Round(2), nil
}

func (s *Service) Refund(ctx context.Context, paymentID int64, req RefundRequest) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if p.Status != domain.PaymentPaid {
		return nil, ErrNotRefundable
	}

	amount := p.Amount
	if req.Amount != nil {
		amount = req.Amount.Round(2)
	}
	if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(p.Amount) {
		return nil, ErrRefundTooLarge
	}
	full := amount.Equal(p.Amount)

	// The booking must be able to take the refund before any money moves.
	if err := s.bookings.CanRefund(ctx, p.BookingID, full); err != nil {
		return nil, err
	}

	refundID, err := s.gateway.CreateRefund(ctx, p.GatewayPaymentID, amount, req.Reason)
	if err != nil {
		return nil, err
	}

	status := domain.PaymentPartiallyRefunded
	if full {
		status = domain.PaymentRefunded
	}
	if err := s.payments.UpdateRefund(ctx, p.ID, status, refundID, amount, req.Reason); err != nil {
		return nil, err
	}

	if _, err := s.bookings.ApplyRefund(ctx, p.BookingID, amount, full); err != nil {
		return nil, err
	}

	return s.payments.GetByID(ctx, p.ID)
}

func (s *Service) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	return s.payments.ListByBooking(ctx, bookingID)
}

func signPayload(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
