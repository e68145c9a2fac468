package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stayhub/internal/domain"
)

// Service owns the inventory and promotion catalog: properties, room types,
// rooms, blocks, offers, seasonal rates, coupons.
type Service struct {
	properties propertyRepo
	roomTypes  roomTypeRepo
	rooms      roomRepo
	bookings   bookingOverlapChecker
	coupons    couponRepo
}

func NewService(properties propertyRepo, roomTypes roomTypeRepo, rooms roomRepo, bookings bookingOverlapChecker, coupons couponRepo) *Service {
	return &Service{
		properties: properties,
		roomTypes:  roomTypes,
		rooms:      rooms,
		bookings:   bookings,
		coupons:    coupons,
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) CreateProperty(ctx context.Context, ownerID int64, req CreatePropertyRequest) (*domain.Property, error) {
	p := &domain.Property{
		OwnerID:        ownerID,
		Name:           req.Name,
		Location:       req.Location,
		CategoryID:     req.CategoryID,
		CommissionRate: decimal.NewFromInt(10),
		IsActive:       true,
	}
	if req.CommissionRate != nil {
		p.CommissionRate = *req.CommissionRate
	}
	if err := s.properties.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *Service) UpdateProperty(ctx context.Context, id int64, req UpdatePropertyRequest) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.CategoryID != nil {
		p.CategoryID = req.CategoryID
	}
	if req.CommissionRate != nil {
		p.CommissionRate = *req.CommissionRate
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := s.properties.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ApproveProperty makes the property's room types visible to search.
func (s *Service) ApproveProperty(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	p.IsApproved = true
	if err := s.properties.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPropertiesByOwner(ctx context.Context, ownerID int64) ([]domain.Property, error) {
	return s.properties.ListByOwner(ctx, ownerID)
}

func (s *Service) CreateRoomType(ctx context.Context, req CreateRoomTypeRequest) (*domain.RoomType, error) {
	if _, err := s.properties.GetByID(ctx, req.PropertyID); err != nil {
		return nil, notFound(err)
	}
	rt := &domain.RoomType{
		PropertyID:   req.PropertyID,
		Name:         req.Name,
		Description:  req.Description,
		BasePrice:    req.BasePrice,
		MaxAdults:    req.MaxAdults,
		MaxChildren:  req.MaxChildren,
		FreeChildren: req.FreeChildren,
		IsActive:     true,
	}
	if req.ExtraAdultPrice != nil {
		rt.ExtraAdultPrice = *req.ExtraAdultPrice
	}
	if req.ExtraChildPrice != nil {
		rt.ExtraChildPrice = *req.ExtraChildPrice
	}
	if err := s.roomTypes.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *Service) GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error) {
	rt, err := s.roomTypes.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return rt, nil
}

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	if _, err := s.roomTypes.GetByID(ctx, req.RoomTypeID); err != nil {
		return nil, notFound(err)
	}
	room := &domain.Room{
		RoomTypeID: req.RoomTypeID,
		Number:     req.Number,
		Status:     domain.RoomAvailable,
		IsEnabled:  true,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, roomTypeID int64) ([]domain.Room, error) {
	return s.rooms.ListByRoomType(ctx, roomTypeID)
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if req.Status != nil {
		switch st := domain.RoomStatus(*req.Status); st {
		case domain.RoomAvailable, domain.RoomOccupied, domain.RoomMaintenance, domain.RoomBlocked:
			room.Status = st
		default:
			return nil, ErrValidation
		}
	}
	if req.IsEnabled != nil {
		room.IsEnabled = *req.IsEnabled
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// CreateBlock takes a room out of inventory for [start, end). The block is
// refused when an active booking or another block already covers part of
// the range.
func (s *Service) CreateBlock(ctx context.Context, actorID int64, req CreateBlockRequest) (*domain.RoomBlock, error) {
	start, err1 := time.Parse("2006-01-02", req.StartDate)
	end, err2 := time.Parse("2006-01-02", req.EndDate)
	if err1 != nil || err2 != nil || !end.After(start) {
		return nil, ErrValidation
	}
	if _, err := s.rooms.GetByID(ctx, req.RoomID); err != nil {
		return nil, notFound(err)
	}

	busy, err := s.bookings.BusyRoomIDs(ctx, []int64{req.RoomID}, start, end)
	if err != nil {
		return nil, err
	}
	if len(busy) > 0 {
		return nil, ErrBlockConflict
	}

	blocked, err := s.rooms.BlockedRoomIDs(ctx, []int64{req.RoomID}, start, end)
	if err != nil {
		return nil, err
	}
	if len(blocked) > 0 {
		return nil, ErrBlockConflict
	}

	block := &domain.RoomBlock{
		RoomID:    req.RoomID,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		CreatedBy: actorID,
	}
	if err := s.rooms.CreateBlock(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *Service) DeleteBlock(ctx context.Context, blockID int64) error {
	return s.rooms.DeleteBlock(ctx, blockID)
}

func (s *Service) ListBlocks(ctx context.Context, roomID int64) ([]domain.RoomBlock, error) {
	return s.rooms.ListBlocks(ctx, roomID)
}

func (s *Service) CreateOffer(ctx context.Context, req CreateOfferRequest) (*domain.Offer, error) {
	start, err1 := time.Parse("2006-01-02", req.StartDate)
	end, err2 := time.Parse("2006-01-02", req.EndDate)
	if err1 != nil || err2 != nil || end.Before(start) {
		return nil, ErrValidation
	}
	if _, err := s.roomTypes.GetByID(ctx, req.RoomTypeID); err != nil {
		return nil, notFound(err)
	}
	o := &domain.Offer{
		RoomTypeID:      req.RoomTypeID,
		Name:            req.Name,
		DiscountPercent: req.DiscountPercent,
		StartDate:       start,
		EndDate:         end,
		IsActive:        true,
	}
	if err := s.coupons.CreateOffer(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) CreateSeasonalRate(ctx context.Context, req CreateSeasonalRateRequest) (*domain.SeasonalRate, error) {
	start, err1 := time.Parse("2006-01-02", req.StartDate)
	end, err2 := time.Parse("2006-01-02", req.EndDate)
	if err1 != nil || err2 != nil || !end.After(start) {
		return nil, ErrValidation
	}
	if req.RoomTypeID != nil {
		if _, err := s.roomTypes.GetByID(ctx, *req.RoomTypeID); err != nil {
			return nil, notFound(err)
		}
	}
	rate := &domain.SeasonalRate{
		RoomTypeID: req.RoomTypeID,
		Name:       req.Name,
		Kind:       domain.SeasonalRateKind(req.Kind),
		Value:      req.Value,
		StartDate:  start,
		EndDate:    end,
		IsActive:   true,
	}
	if err := s.coupons.CreateSeasonalRate(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *Service) CreateCoupon(ctx context.Context, req CreateCouponRequest) (*domain.Coupon, error) {
	from, err1 := time.Parse("2006-01-02", req.ValidFrom)
	to, err2 := time.Parse("2006-01-02", req.ValidTo)
	if err1 != nil || err2 != nil || to.Before(from) {
		return nil, ErrValidation
	}
	c := &domain.Coupon{
		Code:       req.Code,
		Type:       domain.CouponType(req.Type),
		Value:      req.Value,
		ValidFrom:  from,
		ValidTo:    to,
		UsageLimit: req.UsageLimit,
		IsActive:   true,
	}
	if req.MinBookingAmount != nil {
		c.MinBookingAmount = *req.MinBookingAmount
	}
	if err := s.coupons.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListCoupons(ctx context.Context) ([]domain.Coupon, error) {
	return s.coupons.List(ctx)
}

func (s *Service) DeactivateCoupon(ctx context.Context, code string) (*domain.Coupon, error) {
	c, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		return nil, notFound(err)
	}
	c.IsActive = false
	if err := s.coupons.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
