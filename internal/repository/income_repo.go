package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stayhub/internal/domain"
)

type IncomeRepository struct {
	db *gorm.DB
}

func NewIncomeRepository(db *gorm.DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

// CreateOnce inserts the income row unless one already exists for the booking.
// The unique index on booking_id makes the once-per-booking guarantee hold
// even when the verify and webhook paths race.
func (r *IncomeRepository) CreateOnce(ctx context.Context, inc *domain.Income) (bool, error) {
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "booking_id"}}, DoNothing: true}).
		Create(inc)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *IncomeRepository) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Income, error) {
	var out []domain.Income
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
