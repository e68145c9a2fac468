package partner

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stayhub/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Service owns the channel-partner commission ledger and wallet. Every
// balance mutation is paired with exactly one CPTransaction inside the same
// database transaction; the aggregate fields on the partner row are caches
// over the non-void ledger rows.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.ChannelPartner, error) {
	var p domain.ChannelPartner
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) GetByReferralCode(ctx context.Context, code string) (*domain.ChannelPartner, error) {
	var p domain.ChannelPartner
	if err := s.db.WithContext(ctx).Where("referral_code = ?", code).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create registers a partner with a fresh referral code, regenerating on the
// rare collision.
func (s *Service) Create(ctx context.Context, userID int64, rate *decimal.Decimal) (*domain.ChannelPartner, error) {
	const maxAttempts = 5
	for attempt := 0; attempt < maxAttempts; attempt++ {
		p := &domain.ChannelPartner{
			UserID:       userID,
			ReferralCode: newReferralCode(),
			IsActive:     true,
		}
		if rate != nil {
			p.CommissionRate = *rate
			p.IsRateOverridden = true
		}
		err := s.db.WithContext(ctx).Create(p).Error
		if err == nil {
			return p, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
	}
	return nil, ErrCodeCollision
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func newReferralCode() string {
	var b strings.Builder
	b.WriteString("CP-")
	for i := 0; i < 6; i++ {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String()
}

// resolveRate returns the partner's override rate, or the rate of the highest
// level whose threshold the partner's points meet.
func resolveRate(tx *gorm.DB, p *domain.ChannelPartner) (decimal.Decimal, error) {
	if p.IsRateOverridden {
		return p.CommissionRate, nil
	}
	var level domain.PartnerLevel
	err := tx.
		Where("min_points <= ?", p.TotalPoints).
		Order("min_points DESC").
		First(&level).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p.CommissionRate, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return level.CommissionRate, nil
}

// RecordPendingCommission credits a pending commission for a captured
// payment. A second call for the same booking is a no-op, which keeps the
// verify and webhook capture paths convergent.
func (s *Service) RecordPendingCommission(ctx context.Context, bookingID, partnerID int64, bookingAmount decimal.Decimal) error {
	if bookingAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.ChannelPartner
		if err := lockPartner(tx, partnerID, &p); err != nil {
			return err
		}

		var cnt int64
		if err := tx.Model(&domain.CPTransaction{}).
			Where("booking_id = ? AND type = ?", bookingID, domain.CPTxCommission).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return nil
		}

		rate, err := resolveRate(tx, &p)
		if err != nil {
			return err
		}
		commission := bookingAmount.Mul(rate).Div(hundred).Round(2)
		points := bookingAmount.Div(hundred).Floor().IntPart()

		txn := domain.CPTransaction{
			PartnerID: p.ID,
			BookingID: &bookingID,
			Type:      domain.CPTxCommission,
			Status:    domain.CPTxPending,
			Amount:    commission,
			Points:    points,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		p.PendingEarnings = p.PendingEarnings.Add(commission)
		p.PendingPoints += points
		return tx.Save(&p).Error
	})
}

// Finalize moves the booking's pending commission into the partner's totals.
// Called on guest check-in; a booking without a pending commission is a no-op.
func (s *Service) Finalize(ctx context.Context, bookingID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txn, err := commissionTx(tx, bookingID, domain.CPTxPending)
		if err != nil || txn == nil {
			return err
		}

		var p domain.ChannelPartner
		if err := lockPartner(tx, txn.PartnerID, &p); err != nil {
			return err
		}

		if err := tx.Model(&domain.CPTransaction{}).
			Where("id = ?", txn.ID).
			Update("status", domain.CPTxFinalized).Error; err != nil {
			return err
		}

		p.PendingEarnings = p.PendingEarnings.Sub(txn.Amount)
		p.TotalEarnings = p.TotalEarnings.Add(txn.Amount)
		p.PendingPoints -= txn.Points
		p.TotalPoints += txn.Points
		p.AvailablePoints += txn.Points
		return tx.Save(&p).Error
	})
}

// Revert voids the booking's commission on cancellation. A still-pending
// commission only unwinds the pending fields; a finalized one unwinds the
// totals that were credited at check-in.
func (s *Service) Revert(ctx context.Context, bookingID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txn, err := commissionTx(tx, bookingID, domain.CPTxPending)
		if err != nil {
			return err
		}
		wasPending := txn != nil
		if txn == nil {
			if txn, err = commissionTx(tx, bookingID, domain.CPTxFinalized); err != nil || txn == nil {
				return err
			}
		}

		var p domain.ChannelPartner
		if err := lockPartner(tx, txn.PartnerID, &p); err != nil {
			return err
		}

		if err := tx.Model(&domain.CPTransaction{}).
			Where("id = ?", txn.ID).
			Update("status", domain.CPTxVoid).Error; err != nil {
			return err
		}

		if wasPending {
			p.PendingEarnings = p.PendingEarnings.Sub(txn.Amount)
			p.PendingPoints -= txn.Points
		} else {
			p.TotalEarnings = p.TotalEarnings.Sub(txn.Amount)
			p.TotalPoints -= txn.Points
			p.AvailablePoints -= txn.Points
		}
		return tx.Save(&p).Error
	})
}

// AddWalletBalance credits the partner wallet (gateway top-up).
func (s *Service) AddWalletBalance(ctx context.Context, partnerID int64, amount decimal.Decimal, note string) (*domain.CPTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	var txn domain.CPTransaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.ChannelPartner
		if err := lockPartner(tx, partnerID, &p); err != nil {
			return err
		}

		txn = domain.CPTransaction{
			PartnerID: p.ID,
			Type:      domain.CPTxWalletTopup,
			Status:    domain.CPTxFinalized,
			Amount:    amount,
			Note:      note,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		p.WalletBalance = p.WalletBalance.Add(amount)
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// DeductWalletBalance debits the wallet, failing when the balance would go
// negative.
func (s *Service) DeductWalletBalance(ctx context.Context, partnerID int64, amount decimal.Decimal, note string) (*domain.CPTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	var txn domain.CPTransaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.ChannelPartner
		if err := lockPartner(tx, partnerID, &p); err != nil {
			return err
		}

		if p.WalletBalance.LessThan(amount) {
			return ErrInsufficientBalance
		}

		txn = domain.CPTransaction{
			PartnerID: p.ID,
			Type:      domain.CPTxWalletPayment,
			Status:    domain.CPTxFinalized,
			Amount:    amount,
			Note:      note,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		p.WalletBalance = p.WalletBalance.Sub(amount)
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// Payout records a payout against finalized earnings; payouts never exceed
// earnings.
func (s *Service) Payout(ctx context.Context, partnerID int64, amount decimal.Decimal, note string) (*domain.CPTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	var txn domain.CPTransaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.ChannelPartner
		if err := lockPartner(tx, partnerID, &p); err != nil {
			return err
		}

		if p.PaidOut.Add(amount).GreaterThan(p.TotalEarnings) {
			return ErrPayoutExceedsEarnings
		}

		txn = domain.CPTransaction{
			PartnerID: p.ID,
			Type:      domain.CPTxPayout,
			Status:    domain.CPTxFinalized,
			Amount:    amount,
			Note:      note,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		p.PaidOut = p.PaidOut.Add(amount)
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// CreateLevel adds a commission tier. Tiers apply immediately to partners
// without a rate override.
func (s *Service) CreateLevel(ctx context.Context, level *domain.PartnerLevel) error {
	if level.CommissionRate.LessThanOrEqual(decimal.Zero) || level.MinPoints < 0 {
		return ErrInvalidAmount
	}
	return s.db.WithContext(ctx).Create(level).Error
}

func (s *Service) ListLevels(ctx context.Context) ([]domain.PartnerLevel, error) {
	var out []domain.PartnerLevel
	err := s.db.WithContext(ctx).Order("min_points ASC").Find(&out).Error
	return out, err
}

func (s *Service) ListTransactions(ctx context.Context, partnerID int64) ([]domain.CPTransaction, error) {
	var out []domain.CPTransaction
	err := s.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func lockPartner(tx *gorm.DB, partnerID int64, p *domain.ChannelPartner) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(p, partnerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPartnerNotFound
	}
	return err
}

func commissionTx(tx *gorm.DB, bookingID int64, status domain.CPTransactionStatus) (*domain.CPTransaction, error) {
	var txn domain.CPTransaction
	err := tx.
		Where("booking_id = ? AND type = ? AND status = ?", bookingID, domain.CPTxCommission, status).
		First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}
