package catalog

import (
	"context"
	"time"

	"stayhub/internal/domain"
)

type propertyRepo interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Property, error)
}

type roomTypeRepo interface {
	Create(ctx context.Context, rt *domain.RoomType) error
	GetByID(ctx context.Context, id int64) (*domain.RoomType, error)
	Update(ctx context.Context, rt *domain.RoomType) error
}

type roomRepo interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	ListByRoomType(ctx context.Context, roomTypeID int64) ([]domain.Room, error)
	CreateBlock(ctx context.Context, block *domain.RoomBlock) error
	DeleteBlock(ctx context.Context, blockID int64) error
	ListBlocks(ctx context.Context, roomID int64) ([]domain.RoomBlock, error)
	BlockedRoomIDs(ctx context.Context, roomIDs []int64, start, end time.Time) ([]int64, error)
}

type bookingOverlapChecker interface {
	BusyRoomIDs(ctx context.Context, roomIDs []int64, start, end time.Time) ([]int64, error)
}

type couponRepo interface {
	Create(ctx context.Context, c *domain.Coupon) error
	List(ctx context.Context) ([]domain.Coupon, error)
	Update(ctx context.Context, c *domain.Coupon) error
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	CreateOffer(ctx context.Context, o *domain.Offer) error
	CreateSeasonalRate(ctx context.Context, s *domain.SeasonalRate) error
}
