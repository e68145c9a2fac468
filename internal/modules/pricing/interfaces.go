package pricing

import (
	"context"
	"time"

	"stayhub/internal/domain"
)

type roomTypeRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.RoomType, error)
}

type rateRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	FirstActiveOffer(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time) (*domain.Offer, error)
	MatchingSeasonalRate(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time) (*domain.SeasonalRate, error)
}
