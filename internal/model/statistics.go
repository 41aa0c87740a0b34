package model

import "github.com/shopspring/decimal"

// ProjectStatistic aggregates a project's approved operations.
// Revenue sums only the positive amounts, profit sums everything.
type ProjectStatistic struct {
	Revenue           decimal.Decimal `json:"revenue"`
	Profit            decimal.Decimal `json:"profit"`
	CountOfOperations int64           `json:"countOfOperations"`
}
