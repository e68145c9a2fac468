package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"stayhub/internal/domain"
	"stayhub/internal/modules/pricing"
)

// BookingRepository persists bookings; Create assigns a room out of the
// candidates inside one transaction.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking, roomIDs []int64) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	ListForGuest(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, error)
	ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
	ListArrivals(ctx context.Context, day time.Time) ([]domain.Booking, error)
}

type RoomRepository interface {
	UpdateStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error
}

type AvailabilityChecker interface {
	AvailableRooms(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time) ([]domain.Room, error)
}

type Quoter interface {
	Quote(ctx context.Context, req pricing.QuoteRequest) (*pricing.Breakdown, error)
}

type CouponRedeemer interface {
	IncrementUsage(ctx context.Context, code string) error
}

type UserRepository interface {
	GetOrCreateByEmail(ctx context.Context, u *domain.User) (*domain.User, error)
}

type RoomTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RoomType, error)
}

type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// CommissionEngine is the slice of the partner service the orchestrator uses.
type CommissionEngine interface {
	GetByReferralCode(ctx context.Context, code string) (*domain.ChannelPartner, error)
	Finalize(ctx context.Context, bookingID int64) error
	Revert(ctx context.Context, bookingID int64) error
}

type IncomeRecorder interface {
	CreateOnce(ctx context.Context, inc *domain.Income) (bool, error)
}

type AuditWriter interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

type NotificationSender interface {
	NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) error
	NotifyBookingCancelled(ctx context.Context, b *domain.Booking, reason string) error
	NotifyCheckInReminder(ctx context.Context, b *domain.Booking) error
}

// PaidAmounts groups the figures a capture applies to a booking.
type PaidAmounts struct {
	Amount      decimal.Decimal
	PlatformFee decimal.Decimal
	NetAmount   decimal.Decimal
}
