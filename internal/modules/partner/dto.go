package partner

import "github.com/shopspring/decimal"

type CreateRequest struct {
	UserID         int64            `json:"userId" binding:"required"`
	CommissionRate *decimal.Decimal `json:"commissionRate"`
}

type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Note   string          `json:"note"`
}

type LevelRequest struct {
	Name           string          `json:"name" binding:"required"`
	MinPoints      int64           `json:"minPoints"`
	CommissionRate decimal.Decimal `json:"commissionRate" binding:"required"`
}
