package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stayhub/internal/database"
	"stayhub/internal/domain"
	"stayhub/internal/repository"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	// One connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	svc := NewService(
		repository.NewPropertyRepository(db),
		repository.NewRoomTypeRepository(db),
		repository.NewRoomRepository(db),
		repository.NewBookingRepository(db),
		repository.NewCouponRepository(db),
	)
	return svc, db
}

func seedRoom(t *testing.T, db *gorm.DB) int64 {
	room := domain.Room{
		RoomTypeID: 1,
		Number:     "R01",
		Status:     domain.RoomAvailable,
		IsEnabled:  true,
	}
	require.NoError(t, db.Create(&room).Error)
	return room.ID
}

func blockReq(roomID int64, start, end string) CreateBlockRequest {
	return CreateBlockRequest{
		RoomID:    roomID,
		StartDate: start,
		EndDate:   end,
		Reason:    "maintenance",
	}
}

func TestCreateBlock(t *testing.T) {
	svc, db := setupService(t)
	roomID := seedRoom(t, db)

	block, err := svc.CreateBlock(context.Background(), 1, blockReq(roomID, "2026-10-10", "2026-10-14"))
	assert.NoError(t, err)
	assert.Equal(t, roomID, block.RoomID)
}

func TestCreateBlock_OverlappingBlockRejected(t *testing.T) {
	svc, db := setupService(t)
	roomID := seedRoom(t, db)

	_, err := svc.CreateBlock(context.Background(), 1, blockReq(roomID, "2026-10-10", "2026-10-14"))
	require.NoError(t, err)

	_, err = svc.CreateBlock(context.Background(), 1, blockReq(roomID, "2026-10-12", "2026-10-16"))
	assert.ErrorIs(t, err, ErrBlockConflict)
}

func TestCreateBlock_BackToBackBlocksAllowed(t *testing.T) {
	svc, db := setupService(t)
	roomID := seedRoom(t, db)

	_, err := svc.CreateBlock(context.Background(), 1, blockReq(roomID, "2026-10-10", "2026-10-14"))
	require.NoError(t, err)

	// The interval is half-open, so a block starting on the end date fits.
	_, err = svc.CreateBlock(context.Background(), 1, blockReq(roomID, "2026-10-14", "2026-10-16"))
	assert.NoError(t, err)
}

func TestCreateBlock_ActiveBookingRejected(t *testing.T) {
	svc, db := setupService(t)
	roomID := seedRoom(t, db)

	require.NoError(t, db.Create(&domain.Booking{
		Number:       "BK-20261010-0001",
		RoomID:       roomID,
		RoomTypeID:   1,
		GuestID:      1,
		Status:       domain.BookingConfirmed,
		CheckInDate:  time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC),
		Adults:       2,
	}).Error)

	_, err := svc.CreateBlock(context.Background(), 1, blockReq(roomID, "2026-10-10", "2026-10-14"))
	assert.ErrorIs(t, err, ErrBlockConflict)
}

func TestCreateBlock_InvalidRange(t *testing.T) {
	svc, db := setupService(t)
	roomID := seedRoom(t, db)

	_, err := svc.CreateBlock(context.Background(), 1, blockReq(roomID, "2026-10-14", "2026-10-14"))
	assert.ErrorIs(t, err, ErrValidation)
}
