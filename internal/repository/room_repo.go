package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stayhub/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", roomID).
		Update("status", status).Error
}

func (r *RoomRepository) ListByRoomType(ctx context.Context, roomTypeID int64) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Where("room_type_id = ?", roomTypeID).
		Order("number").
		Find(&rooms).Error
	return rooms, err
}

// CandidateRooms returns enabled rooms that can ever appear in availability
// results. MAINTENANCE and BLOCKED rooms are excluded regardless of the query
// dates, matching the documented inventory behavior.
func (r *RoomRepository) CandidateRooms(ctx context.Context, roomTypeID int64) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Where("room_type_id = ? AND is_enabled = ? AND status IN ?",
			roomTypeID, true, []domain.RoomStatus{domain.RoomAvailable, domain.RoomOccupied}).
		Order("id").
		Find(&rooms).Error
	return rooms, err
}

// BlockedRoomIDs returns ids from the given set that have a room block
// overlapping [start, end).
func (r *RoomRepository) BlockedRoomIDs(ctx context.Context, roomIDs []int64, start, end time.Time) ([]int64, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.RoomBlock{}).
		Distinct("room_id").
		Where("room_id IN ?", roomIDs).
		Where("start_date < ? AND end_date > ?", end, start).
		Pluck("room_id", &ids).Error
	return ids, err
}

func (r *RoomRepository) CreateBlock(ctx context.Context, block *domain.RoomBlock) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *RoomRepository) DeleteBlock(ctx context.Context, blockID int64) error {
	return r.db.WithContext(ctx).Delete(&domain.RoomBlock{}, blockID).Error
}

func (r *RoomRepository) ListBlocks(ctx context.Context, roomID int64) ([]domain.RoomBlock, error) {
	var blocks []domain.RoomBlock
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("start_date").
		Find(&blocks).Error
	return blocks, err
}
