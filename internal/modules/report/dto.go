package report

import "github.com/shopspring/decimal"

type DashboardStats struct {
	TotalBookings     int64           `json:"totalBookings"`
	ActiveBookings    int64           `json:"activeBookings"`
	PendingPayments   int64           `json:"pendingPayments"`
	ArrivalsToday     int64           `json:"arrivalsToday"`
	DeparturesToday   int64           `json:"departuresToday"`
	RevenueThisMonth  decimal.Decimal `json:"revenueThisMonth"`
	PlatformFeesMonth decimal.Decimal `json:"platformFeesMonth"`
	OccupancyToday    float64         `json:"occupancyToday"`
}

type FinancialRow struct {
	Day          string          `json:"day"`
	Bookings     int64           `json:"bookings"`
	GrossAmount  decimal.Decimal `json:"grossAmount"`
	PlatformFees decimal.Decimal `json:"platformFees"`
	NetAmount    decimal.Decimal `json:"netAmount"`
}

type FinancialReport struct {
	From  string          `json:"from"`
	To    string          `json:"to"`
	Rows  []FinancialRow  `json:"rows"`
	Gross decimal.Decimal `json:"gross"`
	Fees  decimal.Decimal `json:"fees"`
	Net   decimal.Decimal `json:"net"`
}

type OccupancyRow struct {
	Day           string  `json:"day"`
	OccupiedRooms int64   `json:"occupiedRooms"`
	TotalRooms    int64   `json:"totalRooms"`
	Rate          float64 `json:"rate"`
}

type OccupancyReport struct {
	From string         `json:"from"`
	To   string         `json:"to"`
	Rows []OccupancyRow `json:"rows"`
}

type PartnerRow struct {
	PartnerID       int64           `json:"partnerId"`
	ReferralCode    string          `json:"referralCode"`
	IsActive        bool            `json:"isActive"`
	PendingEarnings decimal.Decimal `json:"pendingEarnings"`
	TotalEarnings   decimal.Decimal `json:"totalEarnings"`
	PaidOut         decimal.Decimal `json:"paidOut"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	TotalPoints     int64           `json:"totalPoints"`
}

type PartnerReport struct {
	Rows          []PartnerRow    `json:"rows"`
	TotalEarnings decimal.Decimal `json:"totalEarnings"`
	TotalPaidOut  decimal.Decimal `json:"totalPaidOut"`
}
