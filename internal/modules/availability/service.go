package availability

import (
	"context"
	"errors"
	"math"
	"time"

	"stayhub/internal/domain"
	"stayhub/internal/repository"
)

var ErrInvalidDateRange = errors.New("check-out must be after check-in")

type Service struct {
	rooms     roomRepo
	bookings  bookingRepo
	roomTypes roomTypeRepo
}

func NewService(rooms roomRepo, bookings bookingRepo, roomTypes roomTypeRepo) *Service {
	return &Service{rooms: rooms, bookings: bookings, roomTypes: roomTypes}
}

// NormalizeDate strips the time-of-day; bookings are identified by calendar
// days only.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether two half-open [start, end) ranges intersect.
// All three cases matter: start inside, end inside, containment.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if !aStart.After(bStart) && bStart.Before(aEnd) {
		return true
	}
	if aStart.Before(bEnd) && !bEnd.After(aEnd) {
		return true
	}
	return !bStart.After(aStart) && !aEnd.After(bEnd)
}

// AvailableRooms returns the rooms of the type free over [checkIn, checkOut).
// Rooms under MAINTENANCE or BLOCKED are never offered, independent of the
// query dates; a room whose block has already ended stays hidden until its
// status is reset. Known limitation, kept deliberately.
func (s *Service) AvailableRooms(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time) ([]domain.Room, error) {
	checkIn, checkOut = NormalizeDate(checkIn), NormalizeDate(checkOut)
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	candidates, err := s.rooms.CandidateRooms(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []domain.Room{}, nil
	}

	ids := make([]int64, 0, len(candidates))
	for _, r := range candidates {
		ids = append(ids, r.ID)
	}

	busy, err := s.bookings.BusyRoomIDs(ctx, ids, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	blocked, err := s.rooms.BlockedRoomIDs(ctx, ids, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	excluded := make(map[int64]bool, len(busy)+len(blocked))
	for _, id := range busy {
		excluded[id] = true
	}
	for _, id := range blocked {
		excluded[id] = true
	}

	free := make([]domain.Room, 0, len(candidates))
	for _, r := range candidates {
		if !excluded[r.ID] {
			free = append(free, r)
		}
	}
	return free, nil
}

func (s *Service) AvailableCount(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time) (int, error) {
	rooms, err := s.AvailableRooms(ctx, roomTypeID, checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	return len(rooms), nil
}

func (s *Service) IsAvailable(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time) (bool, error) {
	n, err := s.AvailableCount(ctx, roomTypeID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SearchRoomTypes filters room types by per-room occupancy and property
// status, then computes availability per type. Sold-out types are dropped
// unless the request asks for them.
func (s *Service) SearchRoomTypes(ctx context.Context, req SearchRequest, checkIn, checkOut time.Time) ([]RoomTypeResult, error) {
	checkIn, checkOut = NormalizeDate(checkIn), NormalizeDate(checkOut)
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	roomCount := req.Rooms
	if roomCount < 1 {
		roomCount = 1
	}
	adultsPerRoom := int(math.Ceil(float64(req.Adults) / float64(roomCount)))
	childrenPerRoom := int(math.Ceil(float64(req.Children) / float64(roomCount)))

	types, err := s.roomTypes.Searchable(ctx, repository.RoomTypeSearchFilter{
		Location:   req.Location,
		CategoryID: req.CategoryID,
		MaxAdults:  adultsPerRoom,
		MaxChild:   childrenPerRoom,
	})
	if err != nil {
		return nil, err
	}

	out := make([]RoomTypeResult, 0, len(types))
	for _, rt := range types {
		count, err := s.AvailableCount(ctx, rt.ID, checkIn, checkOut)
		if err != nil {
			return nil, err
		}
		if count == 0 && !req.IncludeSoldOut {
			continue
		}
		out = append(out, RoomTypeResult{RoomType: rt, AvailableCount: count})
	}
	return out, nil
}
