// Package notify delivers guest-facing booking notifications. The log sender
// stands in for an email/SMS provider; swapping it out only means implementing
// the same three methods.
package notify

import (
	"context"
	"log"

	"stayhub/internal/domain"
)

type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) error {
	log.Printf("level=info msg=notify booking confirmed booking=%s guest_id=%d total=%s",
		b.Number, b.GuestID, b.TotalAmount.StringFixed(2))
	return nil
}

func (s *LogSender) NotifyBookingCancelled(ctx context.Context, b *domain.Booking, reason string) error {
	log.Printf("level=info msg=notify booking cancelled booking=%s guest_id=%d reason=%q",
		b.Number, b.GuestID, reason)
	return nil
}

func (s *LogSender) NotifyCheckInReminder(ctx context.Context, b *domain.Booking) error {
	log.Printf("level=info msg=notify check-in reminder booking=%s guest_id=%d check_in=%s",
		b.Number, b.GuestID, b.CheckInDate.Format("2006-01-02"))
	return nil
}
