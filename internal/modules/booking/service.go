package booking

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stayhub/internal/domain"
	"stayhub/internal/modules/pricing"
	"stayhub/internal/repository"
)

type Service struct {
	bookings     BookingRepository
	rooms        RoomRepository
	roomTypes    RoomTypeRepository
	properties   PropertyRepository
	availability AvailabilityChecker
	pricer       Quoter
	coupons      CouponRedeemer
	users        UserRepository
	commissions  CommissionEngine
	incomes      IncomeRecorder
	audits       AuditWriter
	notifs       NotificationSender
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	roomTypes RoomTypeRepository,
	properties PropertyRepository,
	availability AvailabilityChecker,
	pricer Quoter,
	coupons CouponRedeemer,
	users UserRepository,
	commissions CommissionEngine,
	incomes IncomeRecorder,
	audits AuditWriter,
	notifs NotificationSender,
) *Service {
	return &Service{
		bookings:     bookings,
		rooms:        rooms,
		roomTypes:    roomTypes,
		properties:   properties,
		availability: availability,
		pricer:       pricer,
		coupons:      coupons,
		users:        users,
		commissions:  commissions,
		incomes:      incomes,
		audits:       audits,
		notifs:       notifs,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Booking, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return nil, ErrValidation
	}

	quote, err := s.pricer.Quote(ctx, pricing.QuoteRequest{
		RoomTypeID: req.RoomTypeID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Adults:     req.Adults,
		Children:   req.Children,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		return nil, err
	}

	rooms, err := s.availability.AvailableRooms(ctx, req.RoomTypeID, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrNoAvailability
	}
	roomIDs := make([]int64, 0, len(rooms))
	for _, r := range rooms {
		roomIDs = append(roomIDs, r.ID)
	}

	guestID := req.GuestID
	if guestID == 0 {
		guest, err := s.resolveGuest(ctx, req)
		if err != nil {
			return nil, err
		}
		guestID = guest.ID
	}

	var partnerID *int64
	if req.ReferralCode != "" {
		p, err := s.commissions.GetByReferralCode(ctx, req.ReferralCode)
		if err == nil && p.IsActive {
			partnerID = &p.ID
		}
	}

	b := &domain.Booking{
		RoomTypeID:       req.RoomTypeID,
		GuestID:          guestID,
		CheckInDate:      normalizeDate(req.CheckIn),
		CheckOutDate:     normalizeDate(req.CheckOut),
		Adults:           req.Adults,
		Children:         req.Children,
		BaseAmount:       quote.BaseAmount,
		ExtraAdultAmount: quote.ExtraAdultAmount,
		ExtraChildAmount: quote.ExtraChildAmount,
		SeasonalAmount:   quote.SeasonalAmount,
		OfferDiscount:    quote.OfferDiscount,
		CouponDiscount:   quote.CouponDiscount,
		TaxAmount:        quote.TaxAmount,
		TotalAmount:      quote.TotalAmount,
		PaidAmount:       decimal.Zero,
		Status:           domain.BookingPendingPayment,
		PaymentStatus:    domain.BookingUnpaid,
		CouponCode:       req.CouponCode,
		Source:           req.Source,
		ChannelPartnerID: partnerID,
		IsManual:         req.IsManual,
	}

	if req.IsManual {
		if req.OverrideTotal != nil {
			if !pricing.ValidateOverride(quote.TotalAmount, *req.OverrideTotal) {
				return nil, ErrPriceOverrideTooLow
			}
			b.TotalAmount = req.OverrideTotal.Round(2)
			b.IsPriceOverridden = true
		}
		now := time.Now().UTC()
		b.Status = domain.BookingConfirmed
		b.ConfirmedAt = &now
		b.PaidAmount = b.TotalAmount
		b.PaymentStatus = domain.BookingFull
	}

	if err := s.bookings.Create(ctx, b, roomIDs); err != nil {
		if errors.Is(err, repository.ErrNoFreeRoom) {
			return nil, ErrNoAvailability
		}
		return nil, err
	}

	if req.CouponCode != "" {
		if err := s.coupons.IncrementUsage(ctx, req.CouponCode); err != nil {
			log.Printf("level=warn msg=coupon increment failed booking_id=%d code=%s err=%v", b.ID, req.CouponCode, err)
		}
	}

	if req.IsManual {
		if _, err := s.recordIncome(ctx, b); err != nil {
			log.Printf("level=error msg=income record failed booking_id=%d err=%v", b.ID, err)
		}
	}

	s.audit(ctx, req.ActorID, "booking.create", b.ID, nil, b)
	return b, nil
}

// resolveGuest reuses an account by email or creates a placeholder record
// with an unguessable password.
func (s *Service) resolveGuest(ctx context.Context, req CreateRequest) (*domain.User, error) {
	if req.GuestEmail == "" {
		return nil, ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.users.GetOrCreateByEmail(ctx, &domain.User{
		Email:         req.GuestEmail,
		Name:          req.GuestName,
		Phone:         req.GuestPhone,
		PasswordHash:  string(hash),
		Role:          domain.RoleGuest,
		IsPlaceholder: true,
	})
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) ListForGuest(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListForGuest(ctx, guestID, limit, offset)
}

// canTransition encodes the booking state machine. No transition may skip a
// state.
func canTransition(from, to domain.BookingStatus) bool {
	switch from {
	case domain.BookingPendingPayment:
		return to == domain.BookingConfirmed || to == domain.BookingCancelled
	case domain.BookingConfirmed:
		return to == domain.BookingCheckedIn || to == domain.BookingCancelled || to == domain.BookingRefunded
	case domain.BookingCheckedIn:
		return to == domain.BookingCheckedOut
	}
	return false
}

func (s *Service) CheckIn(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canTransition(b.Status, domain.BookingCheckedIn) {
		return nil, ErrInvalidState
	}
	if !b.IsManual && b.PaymentStatus != domain.BookingFull {
		return nil, ErrPaymentIncomplete
	}

	prev := *b
	now := time.Now().UTC()
	b.Status = domain.BookingCheckedIn
	b.CheckedInAt = &now
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}
	if err := s.rooms.UpdateStatus(ctx, b.RoomID, domain.RoomOccupied); err != nil {
		return nil, err
	}

	if err := s.commissions.Finalize(ctx, b.ID); err != nil {
		log.Printf("level=error msg=commission finalize failed booking_id=%d err=%v", b.ID, err)
	}

	s.audit(ctx, actorID, "booking.check_in", b.ID, &prev, b)
	return b, nil
}

func (s *Service) CheckOut(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canTransition(b.Status, domain.BookingCheckedOut) {
		return nil, ErrInvalidState
	}

	prev := *b
	now := time.Now().UTC()
	b.Status = domain.BookingCheckedOut
	b.CheckedOutAt = &now
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}
	if err := s.rooms.UpdateStatus(ctx, b.RoomID, domain.RoomAvailable); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, "booking.check_out", b.ID, &prev, b)
	return b, nil
}

func (s *Service) Cancel(ctx context.Context, bookingID, actorID int64, reason string) (*domain.Booking, error) {
	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canTransition(b.Status, domain.BookingCancelled) {
		return nil, ErrInvalidState
	}

	prev := *b
	now := time.Now().UTC()
	b.Status = domain.BookingCancelled
	b.CancelledAt = &now
	b.CancellationReason = reason
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	if err := s.commissions.Revert(ctx, b.ID); err != nil {
		log.Printf("level=error msg=commission revert failed booking_id=%d err=%v", b.ID, err)
	}
	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCancelled(ctx, b, reason)
	}

	s.audit(ctx, actorID, "booking.cancel", b.ID, &prev, b)
	return b, nil
}

// UpdateStatus is the generic transition used by admin tooling and the
// payment confirmation path. Entering CONFIRMED creates the income record
// exactly once.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, actorID int64, newStatus domain.BookingStatus) (*domain.Booking, error) {
	switch newStatus {
	case domain.BookingCheckedIn:
		return s.CheckIn(ctx, bookingID, actorID)
	case domain.BookingCheckedOut:
		return s.CheckOut(ctx, bookingID, actorID)
	case domain.BookingCancelled:
		return s.Cancel(ctx, bookingID, actorID, "status update")
	}

	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canTransition(b.Status, newStatus) {
		return nil, ErrInvalidState
	}

	prev := *b
	wasConfirmed := b.Status == domain.BookingConfirmed
	b.Status = newStatus
	if newStatus == domain.BookingConfirmed && b.ConfirmedAt == nil {
		now := time.Now().UTC()
		b.ConfirmedAt = &now
	}
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	if newStatus == domain.BookingConfirmed && !wasConfirmed {
		if _, err := s.recordIncome(ctx, b); err != nil {
			log.Printf("level=error msg=income record failed booking_id=%d err=%v", b.ID, err)
		}
	}

	s.audit(ctx, actorID, "booking.status_change", b.ID, &prev, b)
	return b, nil
}

// ApplyCapture reconciles a captured payment with the booking: paid amount,
// payment status, idempotent confirmation, income. Called only by the capture
// winner (see payment.Service).
func (s *Service) ApplyCapture(ctx context.Context, bookingID int64, amounts PaidAmounts) (*domain.Booking, error) {
	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	prev := *b
	b.PaidAmount = b.PaidAmount.Add(amounts.Amount)
	if b.PaidAmount.GreaterThanOrEqual(b.TotalAmount) {
		b.PaymentStatus = domain.BookingFull
	} else {
		b.PaymentStatus = domain.BookingPartial
	}

	confirmedNow := false
	if b.Status == domain.BookingPendingPayment {
		b.Status = domain.BookingConfirmed
		confirmedNow = true
	}
	if b.ConfirmedAt == nil {
		now := time.Now().UTC()
		b.ConfirmedAt = &now
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	if confirmedNow {
		if _, err := s.recordIncome(ctx, b); err != nil {
			log.Printf("level=error msg=income record failed booking_id=%d err=%v", b.ID, err)
		}
		if s.notifs != nil {
			_ = s.notifs.NotifyBookingConfirmed(ctx, b)
		}
	}

	s.audit(ctx, 0, "booking.payment_capture", b.ID, &prev, b)
	return b, nil
}

// CanRefund reports whether a refund may be applied to the booking. A full
// refund needs the REFUNDED transition to be legal from the current state;
// callers check this before moving money at the gateway.
func (s *Service) CanRefund(ctx context.Context, bookingID int64, full bool) error {
	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if full && !canTransition(b.Status, domain.BookingRefunded) {
		return ErrInvalidState
	}
	return nil
}

// ApplyRefund unwinds a captured payment. A full refund moves the booking to
// REFUNDED and reverts any commission.
func (s *Service) ApplyRefund(ctx context.Context, bookingID int64, amount decimal.Decimal, full bool) (*domain.Booking, error) {
	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	prev := *b
	b.PaidAmount = b.PaidAmount.Sub(amount)
	if b.PaidAmount.LessThan(decimal.Zero) {
		b.PaidAmount = decimal.Zero
	}

	if full {
		if !canTransition(b.Status, domain.BookingRefunded) {
			return nil, ErrInvalidState
		}
		b.Status = domain.BookingRefunded
		b.PaymentStatus = domain.BookingUnpaid
	} else if b.PaidAmount.IsZero() {
		b.PaymentStatus = domain.BookingUnpaid
	} else {
		b.PaymentStatus = domain.BookingPartial
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	if full {
		if err := s.commissions.Revert(ctx, b.ID); err != nil {
			log.Printf("level=error msg=commission revert failed booking_id=%d err=%v", b.ID, err)
		}
	}

	s.audit(ctx, 0, "booking.refund", b.ID, &prev, b)
	return b, nil
}

// ExpireStalePending cancels PENDING_PAYMENT bookings older than ttl so they
// stop holding rooms against availability. Invoked by an external scheduler.
func (s *Service) ExpireStalePending(ctx context.Context, ttl time.Duration) (int, error) {
	stale, err := s.bookings.ListStalePending(ctx, time.Now().UTC().Add(-ttl))
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, b := range stale {
		if _, err := s.Cancel(ctx, b.ID, 0, "payment window expired"); err != nil {
			log.Printf("level=warn msg=stale booking expiry failed booking_id=%d err=%v", b.ID, err)
			continue
		}
		expired++
	}
	return expired, nil
}

// SendCheckInReminders notifies guests arriving tomorrow.
func (s *Service) SendCheckInReminders(ctx context.Context) (int, error) {
	tomorrow := time.Now().UTC().Add(24 * time.Hour)
	arrivals, err := s.bookings.ListArrivals(ctx, tomorrow)
	if err != nil {
		return 0, err
	}
	sent := 0
	for i := range arrivals {
		if s.notifs == nil {
			break
		}
		if err := s.notifs.NotifyCheckInReminder(ctx, &arrivals[i]); err != nil {
			log.Printf("level=warn msg=reminder failed booking_id=%d err=%v", arrivals[i].ID, err)
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *Service) recordIncome(ctx context.Context, b *domain.Booking) (bool, error) {
	rt, err := s.roomTypes.GetByID(ctx, b.RoomTypeID)
	if err != nil {
		return false, err
	}
	prop, err := s.properties.GetByID(ctx, rt.PropertyID)
	if err != nil {
		return false, err
	}

	fee := b.TotalAmount.Mul(prop.CommissionRate).Div(decimal.NewFromInt(100)).Round(2)
	return s.incomes.CreateOnce(ctx, &domain.Income{
		BookingID:   b.ID,
		PropertyID:  prop.ID,
		Amount:      b.TotalAmount,
		PlatformFee: fee,
		NetAmount:   b.TotalAmount.Sub(fee),
		Source:      b.Source,
	})
}

// audit writes are best-effort; a failed write is logged and never fails the
// primary operation.
func (s *Service) audit(ctx context.Context, actorID int64, action string, entityID int64, oldV, newV interface{}) {
	if s.audits == nil {
		return
	}
	entry := &domain.AuditLog{
		Action:   action,
		Entity:   "booking",
		EntityID: entityID,
		UserID:   actorID,
	}
	if oldV != nil {
		if raw, err := json.Marshal(oldV); err == nil {
			entry.OldValue = string(raw)
		}
	}
	if newV != nil {
		if raw, err := json.Marshal(newV); err == nil {
			entry.NewValue = string(raw)
		}
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		log.Printf("level=warn msg=audit write failed action=%s booking_id=%d err=%v", action, entityID, err)
	}
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
