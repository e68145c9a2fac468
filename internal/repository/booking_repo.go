package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stayhub/internal/domain"
)

// ErrNoFreeRoom is returned when no candidate room survives the locked
// availability re-check inside the create transaction.
var ErrNoFreeRoom = errors.New("no free room for the requested range")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts the booking, assigning the first free room out of roomIDs and
// generating the booking number inside a single transaction. Candidate rooms
// are locked FOR UPDATE so two concurrent creates cannot both pass the overlap
// re-check; the unique index on the booking number closes the same-day
// sequence race, with a bounded retry on collision.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking, roomIDs []int64) error {
	if len(roomIDs) == 0 {
		return ErrNoFreeRoom
	}

	const maxAttempts = 5
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := r.createOnce(ctx, b, roomIDs, attempt)
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("booking number collision persisted: %w", lastErr)
}

func (r *BookingRepository) createOnce(ctx context.Context, b *domain.Booking, roomIDs []int64, bump int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rooms []domain.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", roomIDs).
			Order("id").
			Find(&rooms).Error; err != nil {
			return err
		}

		assigned := int64(0)
		for _, room := range rooms {
			free, err := roomFreeInTx(tx, room.ID, b.CheckInDate, b.CheckOutDate)
			if err != nil {
				return err
			}
			if free {
				assigned = room.ID
				break
			}
		}
		if assigned == 0 {
			return ErrNoFreeRoom
		}
		b.RoomID = assigned

		seq, err := sameDaySequence(tx)
		if err != nil {
			return err
		}
		b.Number = bookingNumber(time.Now().UTC(), seq+bump)

		return tx.Create(b).Error
	})
}

func roomFreeInTx(tx *gorm.DB, roomID int64, start, end time.Time) (bool, error) {
	var cnt int64
	err := tx.Model(&domain.Booking{}).
		Where("room_id = ? AND status IN ?", roomID, domain.ActiveBookingStatuses).
		Where("check_in_date < ? AND check_out_date > ?", end, start).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	if cnt > 0 {
		return false, nil
	}

	err = tx.Model(&domain.RoomBlock{}).
		Where("room_id = ?", roomID).
		Where("start_date < ? AND end_date > ?", end, start).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt == 0, nil
}

func sameDaySequence(tx *gorm.DB) (int, error) {
	prefix := "BK-" + time.Now().UTC().Format("20060102") + "-%"
	var cnt int64
	if err := tx.Model(&domain.Booking{}).
		Where("number LIKE ?", prefix).
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return int(cnt) + 1, nil
}

func bookingNumber(day time.Time, seq int) string {
	return fmt.Sprintf("BK-%s-%04d", day.Format("20060102"), seq)
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// BusyRoomIDs returns ids from the given set that carry an active booking
// overlapping [start, end).
func (r *BookingRepository) BusyRoomIDs(ctx context.Context, roomIDs []int64, start, end time.Time) ([]int64, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Distinct("room_id").
		Where("room_id IN ? AND status IN ?", roomIDs, domain.ActiveBookingStatuses).
		Where("check_in_date < ? AND check_out_date > ?", end, start).
		Pluck("room_id", &ids).Error
	return ids, err
}

func (r *BookingRepository) ListForGuest(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) ListForRoomType(ctx context.Context, roomTypeID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("room_type_id = ?", roomTypeID).
		Order("check_in_date").
		Find(&out).Error
	return out, err
}

// ListStalePending returns PENDING_PAYMENT bookings created before the cutoff.
func (r *BookingRepository) ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", domain.BookingPendingPayment, cutoff).
		Find(&out).Error
	return out, err
}

// ListArrivals returns confirmed bookings checking in on the given day.
func (r *BookingRepository) ListArrivals(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND check_in_date >= ? AND check_in_date < ?", domain.BookingConfirmed, start, end).
		Find(&out).Error
	return out, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}
