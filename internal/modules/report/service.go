package report

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stayhub/internal/domain"
)

var ErrInvalidDateRange = errors.New("to must be after from")

// Service answers read-only rollup queries straight off the database. Reports
// never mutate state, so there is no repository seam to mock.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats := &DashboardStats{
		RevenueThisMonth:  decimal.Zero,
		PlatformFeesMonth: decimal.Zero,
	}

	if err := db.Model(&domain.Booking{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Booking{}).
		Where("status IN ?", []domain.BookingStatus{domain.BookingConfirmed, domain.BookingCheckedIn}).
		Count(&stats.ActiveBookings).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Booking{}).
		Where("status = ?", domain.BookingPendingPayment).
		Count(&stats.PendingPayments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Booking{}).
		Where("check_in_date = ? AND status = ?", today, domain.BookingConfirmed).
		Count(&stats.ArrivalsToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Booking{}).
		Where("check_out_date = ? AND status = ?", today, domain.BookingCheckedIn).
		Count(&stats.DeparturesToday).Error; err != nil {
		return nil, err
	}

	var month struct {
		Net  decimal.Decimal
		Fees decimal.Decimal
	}
	if err := db.Model(&domain.Income{}).
		Select("COALESCE(SUM(net_amount), 0) AS net, COALESCE(SUM(platform_fee), 0) AS fees").
		Where("created_at >= ?", monthStart).
		Scan(&month).Error; err != nil {
		return nil, err
	}
	stats.RevenueThisMonth = month.Net
	stats.PlatformFeesMonth = month.Fees

	occupied, total, err := s.roomCounts(ctx, today)
	if err != nil {
		return nil, err
	}
	if total > 0 {
		stats.OccupancyToday = float64(occupied) / float64(total)
	}
	return stats, nil
}

// Financial aggregates income rows per calendar day over [from, to).
func (s *Service) Financial(ctx context.Context, from, to time.Time) (*FinancialReport, error) {
	if !to.After(from) {
		return nil, ErrInvalidDateRange
	}

	var incomes []domain.Income
	if err := s.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at").
		Find(&incomes).Error; err != nil {
		return nil, err
	}

	report := &FinancialReport{
		From:  from.Format("2006-01-02"),
		To:    to.Format("2006-01-02"),
		Rows:  []FinancialRow{},
		Gross: decimal.Zero,
		Fees:  decimal.Zero,
		Net:   decimal.Zero,
	}

	byDay := map[string]*FinancialRow{}
	for _, inc := range incomes {
		day := inc.CreatedAt.UTC().Format("2006-01-02")
		row := byDay[day]
		if row == nil {
			report.Rows = append(report.Rows, FinancialRow{
				Day:          day,
				GrossAmount:  decimal.Zero,
				PlatformFees: decimal.Zero,
				NetAmount:    decimal.Zero,
			})
			row = &report.Rows[len(report.Rows)-1]
			byDay[day] = row
		}
		row.Bookings++
		row.GrossAmount = row.GrossAmount.Add(inc.Amount)
		row.PlatformFees = row.PlatformFees.Add(inc.PlatformFee)
		row.NetAmount = row.NetAmount.Add(inc.NetAmount)

		report.Gross = report.Gross.Add(inc.Amount)
		report.Fees = report.Fees.Add(inc.PlatformFee)
		report.Net = report.Net.Add(inc.NetAmount)
	}
	return report, nil
}

// Occupancy computes per-night occupancy over [from, to). A room counts as
// occupied on a night when an active booking's stay covers it.
func (s *Service) Occupancy(ctx context.Context, from, to time.Time) (*OccupancyReport, error) {
	if !to.After(from) {
		return nil, ErrInvalidDateRange
	}

	report := &OccupancyReport{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
		Rows: []OccupancyRow{},
	}
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		occupied, total, err := s.roomCounts(ctx, day)
		if err != nil {
			return nil, err
		}
		row := OccupancyRow{
			Day:           day.Format("2006-01-02"),
			OccupiedRooms: occupied,
			TotalRooms:    total,
		}
		if total > 0 {
			row.Rate = float64(occupied) / float64(total)
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// Partners summarizes the channel-partner ledger: one row per partner with
// earnings, payouts and outstanding balance, sorted by finalized earnings.
func (s *Service) Partners(ctx context.Context) (*PartnerReport, error) {
	var partners []domain.ChannelPartner
	if err := s.db.WithContext(ctx).
		Order("total_earnings DESC").
		Find(&partners).Error; err != nil {
		return nil, err
	}

	report := &PartnerReport{
		Rows:          []PartnerRow{},
		TotalEarnings: decimal.Zero,
		TotalPaidOut:  decimal.Zero,
	}
	for _, p := range partners {
		report.Rows = append(report.Rows, PartnerRow{
			PartnerID:       p.ID,
			ReferralCode:    p.ReferralCode,
			IsActive:        p.IsActive,
			PendingEarnings: p.PendingEarnings,
			TotalEarnings:   p.TotalEarnings,
			PaidOut:         p.PaidOut,
			Outstanding:     p.TotalEarnings.Sub(p.PaidOut),
			TotalPoints:     p.TotalPoints,
		})
		report.TotalEarnings = report.TotalEarnings.Add(p.TotalEarnings)
		report.TotalPaidOut = report.TotalPaidOut.Add(p.PaidOut)
	}
	return report, nil
}

func (s *Service) roomCounts(ctx context.Context, night time.Time) (occupied, total int64, err error) {
	db := s.db.WithContext(ctx)
	if err = db.Model(&domain.Room{}).Where("is_enabled = ?", true).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = db.Model(&domain.Booking{}).
		Where("status IN ?", domain.ActiveBookingStatuses).
		Where("check_in_date <= ? AND check_out_date > ?", night, night).
		Count(&occupied).Error
	return occupied, total, err
}
