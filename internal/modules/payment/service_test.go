package payment

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stayhub/internal/domain"
	"stayhub/internal/modules/booking"
	"stayhub/internal/repository"
)

type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepo) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) MarkPaidIdempotent(ctx context.Context, orderID string, f repository.CapturedFields) (bool, error) {
	args := m.Called(ctx, orderID, f)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepo) MarkFailed(ctx context.Context, orderID, reason, rawBody string) error {
	args := m.Called(ctx, orderID, reason, rawBody)
	return args.Error(0)
}

func (m *MockPaymentRepo) UpdateRefund(ctx context.Context, paymentID int64, status domain.PaymentStatus, refundID string, amount decimal.Decimal, reason string) error {
	args := m.Called(ctx, paymentID, status, refundID, amount, reason)
	return args.Error(0)
}

func (m *MockPaymentRepo) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type MockBookingApplier struct {
	mock.Mock
}

func (m *MockBookingApplier) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingApplier) ApplyCapture(ctx context.Context, bookingID int64, amounts booking.PaidAmounts) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, amounts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingApplier) CanRefund(ctx context.Context, bookingID int64, full bool) error {
	args := m.Called(ctx, bookingID, full)
	return args.Error(0)
}

func (m *MockBookingApplier) ApplyRefund(ctx context.Context, bookingID int64, amount decimal.Decimal, full bool) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, amount, full)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockRoomTypes struct {
	mock.Mock
}

func (m *MockRoomTypes) GetByID(ctx context.Context, id int64) (*domain.RoomType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomType), args.Error(1)
}

type MockProperties struct {
	mock.Mock
}

func (m *MockProperties) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

type MockCommissions struct {
	mock.Mock
}

func (m *MockCommissions) RecordPendingCommission(ctx context.Context, bookingID, partnerID int64, bookingAmount decimal.Decimal) error {
	args := m.Called(ctx, bookingID, partnerID, bookingAmount)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (string, error) {
	args := m.Called(ctx, amount, currency, receipt)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) CreateRefund(ctx context.Context, gatewayPaymentID string, amount decimal.Decimal, reason string) (string, error) {
	args := m.Called(ctx, gatewayPaymentID, amount, reason)
	return args.String(0), args.Error(1)
}

type paymentMocks struct {
	payments    *MockPaymentRepo
	bookings    *MockBookingApplier
	roomTypes   *MockRoomTypes
	properties  *MockProperties
	commissions *MockCommissions
	gateway     *MockGateway
}

func newPaymentService(t *testing.T) (*Service, *paymentMocks) {
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "key_secret")
	t.Setenv("RAZORPAY_WEBHOOK_SECRET", "webhook_secret")

	m := &paymentMocks{
		payments:    new(MockPaymentRepo),
		bookings:    new(MockBookingApplier),
		roomTypes:   new(MockRoomTypes),
		properties:  new(MockProperties),
		commissions: new(MockCommissions),
		gateway:     new(MockGateway),
	}
	svc := NewService(m.payments, m.bookings, m.roomTypes, m.properties, m.commissions, m.gateway, nil)
	return svc, m
}

func pendingBooking(total int64) *domain.Booking {
	return &domain.Booking{
		ID:          1,
		RoomTypeID:  7,
		Number:      "BK-20261110-0001",
		Status:      domain.BookingPendingPayment,
		TotalAmount: decimal.NewFromInt(total),
		PaidAmount:  decimal.Zero,
	}
}

// wireFeeLookup sets up the room type and property reads behind platformFee.
func (m *paymentMocks) wireFeeLookup(rate int64) {
	m.roomTypes.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.RoomType{ID: 7, PropertyID: 2}, nil)
	m.properties.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.Property{ID: 2, CommissionRate: decimal.NewFromInt(rate)}, nil)
}

func TestInitiate_FullOutstanding(t *testing.T) {
	svc, m := newPaymentService(t)

	b := pendingBooking(10000)
	m.bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	m.gateway.On("CreateOrder", mock.Anything, decimal.NewFromInt(10000), "INR", "BK-20261110-0001").
		Return("order_abc", nil)
	m.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.BookingID == 1 && p.Status == domain.PaymentPending && p.OrderID == "order_abc"
	})).Return(nil)

	resp, err := svc.Initiate(context.Background(), InitiateRequest{BookingID: 1})

	assert.NoError(t, err)
	assert.Equal(t, "order_abc", resp.OrderID)
	assert.Equal(t, "rzp_test_key", resp.KeyID)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(10000)), "%s", resp.Amount)
}

func TestInitiate_PartialFirstCharge(t *testing.T) {
	svc, m := newPaymentService(t)

	b := pendingBooking(10000)
	m.bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	want := decimal.RequireFromString("3333.33")
	m.gateway.On("CreateOrder", mock.Anything, want, "INR", "BK-20261110-0001").
		Return("order_abc", nil)
	m.payments.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Initiate(context.Background(), InitiateRequest{BookingID: 1, Partial: true})

	assert.NoError(t, err)
	assert.True(t, resp.Amount.Equal(want), "%s", resp.Amount)
}

func TestInitiate_BalanceAfterPartial(t *testing.T) {
	svc, m := newPaymentService(t)

	b := pendingBooking(10000)
	b.Status = domain.BookingConfirmed
	b.PaymentStatus = domain.BookingPartial
	b.PaidAmount = decimal.RequireFromString("3333.33")
	m.bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	want := decimal.RequireFromString("6666.67")
	m.gateway.On("CreateOrder", mock.Anything, want, "INR", "BK-20261110-0001").
		Return("order_bal", nil)
	m.payments.On("Create", mock.Anything, mock.Anything).Return(nil)

	// A second partial request still charges the whole balance.
	resp, err := svc.Initiate(context.Background(), InitiateRequest{BookingID: 1, Partial: true})

	assert.NoError(t, err)
	assert.True(t, resp.Amount.Equal(want), "%s", resp.Amount)
}

func TestInitiate_NotPayable(t *testing.T) {
	svc, m := newPaymentService(t)

	b := pendingBooking(10000)
	b.Status = domain.BookingCheckedIn
	m.bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	_, err := svc.Initiate(context.Background(), InitiateRequest{BookingID: 1})

	assert.ErrorIs(t, err, ErrNotPayable)
	m.gateway.AssertNotCalled(t, "CreateOrder")
}

func TestVerify_InvalidSignature(t *testing.T) {
	svc, m := newPaymentService(t)

	m.payments.On("MarkFailed", mock.Anything, "order_abc", "invalid signature", "").Return(nil)

	_, err := svc.Verify(context.Background(), VerifyRequest{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: "deadbeef",
	})

	assert.ErrorIs(t, err, ErrInvalidSignature)
	m.payments.AssertCalled(t, "MarkFailed", mock.Anything, "order_abc", "invalid signature", "")
	m.payments.AssertNotCalled(t, "MarkPaidIdempotent")
}

func TestVerify_CaptureAppliesSideEffects(t *testing.T) {
	svc, m := newPaymentService(t)

	p := &domain.Payment{
		ID:        5,
		BookingID: 1,
		OrderID:   "order_abc",
		Amount:    decimal.NewFromInt(10000),
		Status:    domain.PaymentPending,
	}
	partnerID := int64(9)
	b := pendingBooking(10000)
	b.ChannelPartnerID = &partnerID

	m.payments.On("GetByOrderID", mock.Anything, "order_abc").Return(p, nil)
	m.bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	m.wireFeeLookup(10)
	m.payments.On("MarkPaidIdempotent", mock.Anything, "order_abc", mock.MatchedBy(func(f repository.CapturedFields) bool {
		return f.GatewayPaymentID == "pay_123" &&
			f.PlatformFee.Equal(decimal.NewFromInt(1000)) &&
			f.NetAmount.Equal(decimal.NewFromInt(9000))
	})).Return(true, nil)
	m.bookings.On("ApplyCapture", mock.Anything, int64(1), mock.MatchedBy(func(a booking.PaidAmounts) bool {
		return a.Amount.Equal(decimal.NewFromInt(10000))
	})).Return(b, nil)
	m.commissions.On("RecordPendingCommission", mock.Anything, int64(1), int64(9), b.TotalAmount).Return(nil)

	sig := signPayload("order_abc|pay_123", "key_secret")
	got, err := svc.Verify(context.Background(), VerifyRequest{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: sig,
	})

	assert.NoError(t, err)
	assert.Equal(t, "order_abc", got.OrderID)
	m.commissions.AssertExpectations(t)
}

func TestVerify_IdempotentLoserSkipsSideEffects(t *testing.T) {
	svc, m := newPaymentService(t)

	p := &domain.Payment{
		ID:        5,
		BookingID: 1,
		OrderID:   "order_abc",
		Amount:    decimal.NewFromInt(10000),
		Status:    domain.PaymentPaid,
	}
	m.payments.On("GetByOrderID", mock.Anything, "order_abc").Return(p, nil)
	m.bookings.On("GetByID", mock.Anything, int64(1)).Return(pendingBooking(10000), nil)
	m.wireFeeLookup(10)
	m.payments.On("MarkPaidIdempotent", mock.Anything, "order_abc", mock.Anything).Return(false, nil)

	sig := signPayload("order_abc|pay_123", "key_secret")
	got, err := svc.Verify(context.Background(), VerifyRequest{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: sig,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.Status)
	m.bookings.AssertNotCalled(t, "ApplyCapture")
	m.commissions.AssertNotCalled(t, "RecordPendingCommission")
}

func webhookBody(t *testing.T, event, orderID, paymentID string) []byte {
	body, err := json.Marshal(map[string]interface{}{
		"event": event,
		"payload": map[string]interface{}{
			"payment": map[string]interface{}{
				"entity": map[string]interface{}{
					"order_id": orderID,
					"id":       paymentID,
					"method":   "upi",
				},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func TestHandleWebhook_Captured(t *testing.T) {
	svc, m := newPaymentService(t)

	p := &domain.Payment{
		ID:        5,
		BookingID: 1,
		OrderID:   "order_abc",
		Amount:    decimal.NewFromInt(10000),
	}
	m.payments.On("GetByOrderID", mock.Anything, "order_abc").Return(p, nil)
	m.bookings.On("GetByID", mock.Anything, int64(1)).Return(pendingBooking(10000), nil)
	m.wireFeeLookup(10)
	m.payments.On("MarkPaidIdempotent", mock.Anything, "order_abc", mock.MatchedBy(func(f repository.CapturedFields) bool {
		return f.Method == "upi" && f.RawWebhookBody != ""
	})).Return(true, nil)
	m.bookings.On("ApplyCapture", mock.Anything, int64(1), mock.Anything).Return(pendingBooking(10000), nil)

	body := webhookBody(t, "payment.captured", "order_abc", "pay_123")
	err := svc.HandleWebhook(context.Background(), body, signPayload(string(body), "webhook_secret"))

	assert.NoError(t, err)
	m.bookings.AssertCalled(t, "ApplyCapture", mock.Anything, int64(1), mock.Anything)
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	svc, m := newPaymentService(t)

	body := webhookBody(t, "payment.captured", "order_abc", "pay_123")
	err := svc.HandleWebhook(context.Background(), body, "not_the_signature")

	assert.ErrorIs(t, err, ErrInvalidSignature)
	m.payments.AssertNotCalled(t, "GetByOrderID")
}

func TestHandleWebhook_TamperedBody(t *testing.T) {
	svc, m := newPaymentService(t)

	body := webhookBody(t, "payment.captured", "order_abc", "pay_123")
	sig := signPayload(string(body), "webhook_secret")
	tampered := webhookBody(t, "payment.captured", "order_xyz", "pay_123")

	err := svc.HandleWebhook(context.Background(), tampered, sig)

	assert.ErrorIs(t, err, ErrInvalidSignature)
	m.payments.AssertNotCalled(t, "GetByOrderID")
}

func TestHandleWebhook_Failed(t *testing.T) {
	svc, m := newPaymentService(t)

	body := webhookBody(t, "payment.failed", "order_abc", "pay_123")
	m.payments.On("MarkFailed", mock.Anything, "order_abc", "gateway reported failure", string(body)).Return(nil)

	err := svc.HandleWebhook(context.Background(), body, signPayload(string(body), "webhook_secret"))

	assert.NoError(t, err)
	m.payments.AssertExpectations(t)
}

func TestHandleWebhook_IgnoredEvent(t *testing.T) {
	svc, m := newPaymentService(t)

	body := webhookBody(t, "order.paid", "order_abc", "pay_123")
	err := svc.HandleWebhook(context.Background(), body, signPayload(string(body), "webhook_secret"))

	assert.NoError(t, err)
	m.payments.AssertNotCalled(t, "GetByOrderID")
	m.payments.AssertNotCalled(t, "MarkFailed")
}

func TestRefund_Full(t *testing.T) {
	svc, m := newPaymentService(t)

	p := &domain.Payment{
		ID:               5,
		BookingID:        1,
		GatewayPaymentID: "pay_123",
		Amount:           decimal.NewFromInt(5000),
		Status:           domain.PaymentPaid,
	}
	m.payments.On("GetByID", mock.Anything, int64(5)).Return(p, nil)
	m.bookings.On("CanRefund", mock.Anything, int64(1), true).Return(nil)
	m.gateway.On("CreateRefund", mock.Anything, "pay_123", decimal.NewFromInt(5000), "guest cancelled").
		Return("rfnd_1", nil)
	m.payments.On("UpdateRefund", mock.Anything, int64(5), domain.PaymentRefunded, "rfnd_1",
		decimal.NewFromInt(5000), "guest cancelled").Return(nil)
	m.bookings.On("ApplyRefund", mock.Anything, int64(1), decimal.NewFromInt(5000), true).
		Return(&domain.Booking{ID: 1, Status: domain.BookingRefunded}, nil)

	_, err := svc.Refund(context.Background(), 5, RefundRequest{Reason: "guest cancelled"})

	assert.NoError(t, err)
	m.bookings.AssertCalled(t, "ApplyRefund", mock.Anything, int64(1), decimal.NewFromInt(5000), true)
}

func TestRefund_Partial(t *testing.T) {
	svc, m := newPaymentService(t)

	p := &domain.Payment{
		ID:               5,
		BookingID:        1,
		GatewayPaymentID: "pay_123",
		Amount:           decimal.NewFromInt(5000),
		Status:           domain.PaymentPaid,
	}
	amount := decimal.NewFromInt(2000)
	rounded := decimal.RequireFromString("2000.00")
	m.payments.On("GetByID", mock.Anything, int64(5)).Return(p, nil)
	m.bookings.On("CanRefund", mock.Anything, int64(1), false).Return(nil)
	m.gateway.On("CreateRefund", mock.Anything, "pay_123", rounded, "").Return("rfnd_2", nil)
	m.payments.On("UpdateRefund", mock.Anything, int64(5), domain.PaymentPartiallyRefunded, "rfnd_2",
		rounded, "").Return(nil)
	m.bookings.On("ApplyRefund", mock.Anything, int64(1), rounded, false).
		Return(&domain.Booking{ID: 1}, nil)

	_, err := svc.Refund(context.Background(), 5, RefundRequest{Amount: &amount})

	assert.NoError(t, err)
}

func TestRefund_IneligibleBookingBeforeGateway(t *testing.T) {
	svc, m := newPaymentService(t)

	p := &domain.Payment{
		ID:               5,
		BookingID:        1,
		GatewayPaymentID: "pay_123",
		Amount:           decimal.NewFromInt(5000),
		Status:           domain.PaymentPaid,
	}
	m.payments.On("GetByID", mock.Anything, int64(5)).Return(p, nil)
	m.bookings.On("CanRefund", mock.Anything, int64(1), true).Return(booking.ErrInvalidState)

	_, err := svc.Refund(context.Background(), 5, RefundRequest{Reason: "guest cancelled"})

	// No money moves and the payment row stays PAID when the booking cannot
	// take the refund.
	assert.ErrorIs(t, err, booking.ErrInvalidState)
	m.gateway.AssertNotCalled(t, "CreateRefund")
	m.payments.AssertNotCalled(t, "UpdateRefund")
	m.bookings.AssertNotCalled(t, "ApplyRefund")
}

func TestRefund_TooLarge(t *testing.T) {
	svc, m := newPaymentService(t)

	p := &domain.Payment{ID: 5, Amount: decimal.NewFromInt(5000), Status: domain.PaymentPaid}
	m.payments.On("GetByID", mock.Anything, int64(5)).Return(p, nil)

	amount := decimal.NewFromInt(5001)
	_, err := svc.Refund(context.Background(), 5, RefundRequest{Amount: &amount})

	assert.ErrorIs(t, err, ErrRefundTooLarge)
	m.gateway.AssertNotCalled(t, "CreateRefund")
}

func TestRefund_NotPaid(t *testing.T) {
	svc, m := newPaymentService(t)

	p := &domain.Payment{ID: 5, Amount: decimal.NewFromInt(5000), Status: domain.PaymentPending}
	m.payments.On("GetByID", mock.Anything, int64(5)).Return(p, nil)

	_, err := svc.Refund(context.Background(), 5, RefundRequest{})

	assert.ErrorIs(t, err, ErrNotRefundable)
	m.gateway.AssertNotCalled(t, "CreateRefund")
}
