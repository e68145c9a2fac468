package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"stayhub/internal/domain"
)

// ErrCouponExhausted is returned when the atomic usage increment loses to the
// usage cap.
var ErrCouponExhausted = errors.New("coupon usage limit reached")

type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var c domain.Coupon
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) List(ctx context.Context) ([]domain.Coupon, error) {
	var out []domain.Coupon
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *CouponRepository) Update(ctx context.Context, c *domain.Coupon) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// IncrementUsage bumps used_count without exceeding the cap. The guard runs in
// the UPDATE itself so concurrent redemptions cannot oversell the coupon.
func (r *CouponRepository) IncrementUsage(ctx context.Context, code string) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Coupon{}).
		Where("code = ? AND is_active = ?", code, true).
		Where("usage_limit = 0 OR used_count < usage_limit").
		Update("used_count", gorm.Expr("used_count + 1"))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrCouponExhausted
	}
	return nil
}

// FirstActiveOffer returns the first active offer on the room type whose
// window covers the whole stay, or nil when none matches.
func (r *CouponRepository) FirstActiveOffer(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time) (*domain.Offer, error) {
	var o domain.Offer
	err := r.db.WithContext(ctx).
		Where("room_type_id = ? AND is_active = ?", roomTypeID, true).
		Where("start_date <= ? AND end_date >= ?", checkIn, checkOut).
		Order("id").
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// MatchingSeasonalRate resolves the seasonal rate for the stay: room-type
// rates beat global ones, most recently created wins within a scope.
func (r *CouponRepository) MatchingSeasonalRate(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time) (*domain.SeasonalRate, error) {
	var rate domain.SeasonalRate
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_date < ? AND end_date > ?", true, checkOut, checkIn).
		Where("room_type_id = ?", roomTypeID).
		Order("created_at DESC").
		First(&rate).Error
	if err == nil {
		return &rate, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("is_active = ? AND start_date < ? AND end_date > ?", true, checkOut, checkIn).
		Where("room_type_id IS NULL").
		Order("created_at DESC").
		First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *CouponRepository) CreateOffer(ctx context.Context, o *domain.Offer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *CouponRepository) CreateSeasonalRate(ctx context.Context, s *domain.SeasonalRate) error {
	return r.db.WithContext(ctx).Create(s).Error
}
