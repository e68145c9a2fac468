package repository

import (
	"context"

	"gorm.io/gorm"

	"stayhub/internal/domain"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var p domain.Property
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PropertyRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Property, error) {
	var out []domain.Property
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&out).Error
	return out, err
}

type RoomTypeRepository struct {
	db *gorm.DB
}

func NewRoomTypeRepository(db *gorm.DB) *RoomTypeRepository {
	return &RoomTypeRepository{db: db}
}

func (r *RoomTypeRepository) Create(ctx context.Context, rt *domain.RoomType) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *RoomTypeRepository) GetByID(ctx context.Context, id int64) (*domain.RoomType, error) {
	var rt domain.RoomType
	if err := r.db.WithContext(ctx).First(&rt, id).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RoomTypeRepository) Update(ctx context.Context, rt *domain.RoomType) error {
	return r.db.WithContext(ctx).Save(rt).Error
}

// RoomTypeSearchFilter narrows the searchable room types.
type RoomTypeSearchFilter struct {
	Location   string
	CategoryID *int64
	MaxAdults  int
	MaxChild   int
}

// Searchable returns active room types on approved, active properties that
// can sleep the per-room guest counts.
func (r *RoomTypeRepository) Searchable(ctx context.Context, f RoomTypeSearchFilter) ([]domain.RoomType, error) {
	q := r.db.WithContext(ctx).
		Joins("JOIN properties ON properties.id = room_types.property_id").
		Where("room_types.is_active = ?", true).
		Where("properties.is_approved = ? AND properties.is_active = ?", true, true).
		Where("room_types.max_adults >= ?", f.MaxAdults)
	if f.MaxChild > 0 {
		q = q.Where("room_types.max_children + room_types.free_children >= ?", f.MaxChild)
	}
	if f.Location != "" {
		q = q.Where("properties.location LIKE ?", "%"+f.Location+"%")
	}
	if f.CategoryID != nil {
		q = q.Where("properties.category_id = ?", *f.CategoryID)
	}

	var out []domain.RoomType
	err := q.Preload("Property").Find(&out).Error
	return out, err
}
