package availability

import (
	"context"
	"time"

	"stayhub/internal/domain"
	"stayhub/internal/repository"
)

type roomRepo interface {
	CandidateRooms(ctx context.Context, roomTypeID int64) ([]domain.Room, error)
	BlockedRoomIDs(ctx context.Context, roomIDs []int64, start, end time.Time) ([]int64, error)
}

type bookingRepo interface {
	BusyRoomIDs(ctx context.Context, roomIDs []int64, start, end time.Time) ([]int64, error)
}

type roomTypeRepo interface {
	Searchable(ctx context.Context, f repository.RoomTypeSearchFilter) ([]domain.RoomType, error)
}
