package partner

import "errors"

var (
	ErrPartnerNotFound       = errors.New("channel partner not found")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrInsufficientBalance   = errors.New("insufficient wallet balance")
	ErrPayoutExceedsEarnings = errors.New("payout exceeds finalized earnings")
	ErrCodeCollision         = errors.New("referral code collision persisted")
)
