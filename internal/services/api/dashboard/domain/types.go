// Package domain holds the dashboard comparison contract
package domain

import (
	"bizdash/internal/core/period"

	"github.com/shopspring/decimal"
)

// Granularity is the sales trend bucket size
type Granularity string

// Supported trend buckets
const (
	Hour Granularity = "hour"
	Day  Granularity = "day"
)

// QueryInput selects the windows and stores for a comparison endpoint
// the four explicit bounds win over Period when any of them is set
type QueryInput struct {
	Period      string   `json:"period,omitempty"       validate:"omitempty,period"`
	CustomStart string   `json:"custom_start,omitempty"`
	CustomEnd   string   `json:"custom_end,omitempty"`
	StoreIDs    []string `json:"store_ids,omitempty"    validate:"max=200,dive,max=64"`

	StartDate        string `json:"start_date,omitempty"`
	EndDate          string `json:"end_date,omitempty"`
	CompareStartDate string `json:"compare_start_date,omitempty"`
	CompareEndDate   string `json:"compare_end_date,omitempty"`

	Limit       int         `json:"limit,omitempty"       validate:"omitempty,min=1,max=100"`
	Granularity Granularity `json:"granularity,omitempty" validate:"omitempty,oneof=hour day"`
}

// Query is a resolved QueryInput
type Query struct {
	Period   period.Identifier
	Pair     period.Pair
	StoreIDs []string
}

// Window echoes the windows a response was computed for
type Window struct {
	Period         period.Identifier  `json:"period,omitempty" example:"MONTH_TO_DATE"`
	Params         period.QueryParams `json:"params"`
	CurrentDays    int                `json:"current_days"    example:"15"`
	ComparisonDays int                `json:"comparison_days" example:"15"`
}

// Store is a selectable store
type Store struct {
	ID   string `json:"id"   example:"mnl-01"`
	Name string `json:"name" example:"Makati"`
}

// Totals are the headline figures of one window
type Totals struct {
	TotalSales          decimal.Decimal `json:"total_sales"`
	TotalProfit         decimal.Decimal `json:"total_profit"`
	Transactions        int64           `json:"transactions"`
	AvgTransactionValue decimal.Decimal `json:"avg_transaction_value"`
}

// KPIChange holds the percentage change of each headline figure
type KPIChange struct {
	Sales               decimal.Decimal `json:"sales"`
	Profit              decimal.Decimal `json:"profit"`
	Transactions        decimal.Decimal `json:"transactions"`
	AvgTransactionValue decimal.Decimal `json:"avg_transaction_value"`
}

// KPIResp compares the headline figures of both windows
type KPIResp struct {
	Current  Totals    `json:"current"`
	Previous Totals    `json:"previous"`
	Change   KPIChange `json:"change"`
	Window   Window    `json:"window"`
}

// StoreSales is one row of sales by store
type StoreSales struct {
	StoreName     string          `json:"store_name"`
	CurrentSales  decimal.Decimal `json:"current_sales"`
	PreviousSales decimal.Decimal `json:"previous_sales"`
	ChangePct     decimal.Decimal `json:"change_pct"`
}

// ProductSales is one row of top products
type ProductSales struct {
	ProductName   string          `json:"product_name"`
	CurrentSales  decimal.Decimal `json:"current_sales"`
	PreviousSales decimal.Decimal `json:"previous_sales"`
	ChangePct     decimal.Decimal `json:"change_pct"`
}

// CategorySales is one row of top categories
type CategorySales struct {
	Category      string          `json:"category"`
	CurrentSales  decimal.Decimal `json:"current_sales"`
	PreviousSales decimal.Decimal `json:"previous_sales"`
	ChangePct     decimal.Decimal `json:"change_pct"`
}

// Direction tells whether a mover gained or lost sales
type Direction string

// Mover directions
const (
	Up   Direction = "up"
	Down Direction = "down"
	Flat Direction = "flat"
)

// Mover is one product or category ranked by absolute change in sales
type Mover struct {
	Name          string          `json:"name"           example:"Latte"`
	CurrentSales  decimal.Decimal `json:"current_sales"`
	PreviousSales decimal.Decimal `json:"previous_sales"`
	Change        decimal.Decimal `json:"change"`
	ChangePct     decimal.Decimal `json:"change_pct"`
	Direction     Direction       `json:"direction"      example:"up"`
}

// MoversResp lists the products and categories whose sales moved most
type MoversResp struct {
	Products   []Mover `json:"products"`
	Categories []Mover `json:"categories"`
	Window     Window  `json:"window"`
}

// TrendPoint is one bucket of the sales trend
type TrendPoint struct {
	Date  string          `json:"date" example:"2024-03-14T00:00:00.000+08:00"`
	Sales decimal.Decimal `json:"sales"`
}

// TrendResp holds both windows' buckets
type TrendResp struct {
	Granularity Granularity  `json:"granularity"`
	Source      string       `json:"source" example:"pg"`
	Current     []TrendPoint `json:"current"`
	Previous    []TrendPoint `json:"previous"`
	Window      Window       `json:"window"`
}

// InvalidateResp reports how many cached results were dropped
type InvalidateResp struct {
	Evicted int `json:"evicted"`
}
