// Package domain holds the periods API contract
package domain

import (
	"bizdash/internal/core/period"

	"github.com/shopspring/decimal"
)

// PeriodInfo describes one selectable identifier
type PeriodInfo struct {
	ID     period.Identifier `json:"id"     example:"MONTH_TO_DATE"`
	Label  string            `json:"label"  example:"Month To Date"`
	Family period.Family     `json:"family" example:"calendar"`
	ToDate bool              `json:"to_date"`
}

// ListResp is the selector payload
type ListResp struct {
	Periods  []PeriodInfo      `json:"periods"`
	Default  period.Identifier `json:"default"  example:"YESTERDAY"`
	Timezone string            `json:"timezone" example:"Asia/Manila"`
}

// ResolveInput asks for the windows of one identifier
// Now overrides the server clock; CustomStart and CustomEnd are only read for CUSTOM
type ResolveInput struct {
	Period      string `json:"period"                 validate:"required,period" example:"MONTH_TO_DATE"`
	Now         string `json:"now,omitempty"          example:"2024-03-15T10:00:00+08:00"`
	CustomStart string `json:"custom_start,omitempty" example:"2024-03-01"`
	CustomEnd   string `json:"custom_end,omitempty"   example:"2024-03-10"`
	Fallback    bool   `json:"fallback,omitempty"`
}

// Window is a DateRange rendered for clients
type Window struct {
	Start string `json:"start" example:"2024-03-01T00:00:00.000+08:00"`
	End   string `json:"end"   example:"2024-03-15T10:00:00.000+08:00"`
	Days  int    `json:"days"  example:"15"`
}

// ResolveResp carries the pair and the query params a dashboard request would use
type ResolveResp struct {
	Period     period.Identifier  `json:"period"`
	Label      string             `json:"label"`
	Current    Window             `json:"current"`
	Comparison Window             `json:"comparison"`
	Params     period.QueryParams `json:"params"`
	Notice     string             `json:"notice,omitempty"`
}

// ChangeInput is a current and previous measurement
type ChangeInput struct {
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
}

// ChangeResp is the percentage change rounded to two places
type ChangeResp struct {
	ChangePct decimal.Decimal `json:"change_pct"`
}

// WindowOf renders r in the ISO layout
func WindowOf(r period.DateRange) Window {
	return Window{
		Start: r.Start.Format(period.ISOLayout),
		End:   r.End.Format(period.ISOLayout),
		Days:  r.Days(),
	}
}
