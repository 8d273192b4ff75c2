// Package models defines the data structures shared across FundTrack services
package models

import "time"

// Investment is a single mutual-fund position held by a user. The scheme code
// is the external identifier joining the position to fetched NAV prices.
type Investment struct {
	SchemeCode    string    `json:"scheme_code"`
	Scheme        string    `json:"scheme"`
	Units         float64   `json:"units"`
	PurchasePrice float64   `json:"purchasePrice"`
	CurrentPrice  float64   `json:"currentPrice"`
	CreatedAt     time.Time `json:"createdAt"`
}

// MarketValue returns units held times the last known price.
func (i *Investment) MarketValue() float64 {
	return i.Units * i.CurrentPrice
}

// CostValue returns units held times the weighted-average purchase price.
func (i *Investment) CostValue() float64 {
	return i.Units * i.PurchasePrice
}

// Portfolio is the per-user collection of investments. At most one portfolio
// exists per user.
type Portfolio struct {
	UserID      string       `json:"user_id"`
	Investments []Investment `json:"investments"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Find returns the investment with the given scheme code, or nil.
func (p *Portfolio) Find(schemeCode string) *Investment {
	for i := range p.Investments {
		if p.Investments[i].SchemeCode == schemeCode {
			return &p.Investments[i]
		}
	}
	return nil
}

// AddPurchase merges a purchase into the portfolio. An existing position for
// the scheme code accumulates units and re-weights its purchase price; a new
// position is appended with its current price initialized to the purchase
// price (no lookup on add).
func (p *Portfolio) AddPurchase(schemeCode, scheme string, units, purchasePrice float64) {
	if existing := p.Find(schemeCode); existing != nil {
		totalUnits := existing.Units + units
		existing.PurchasePrice = (existing.PurchasePrice*existing.Units + purchasePrice*units) / totalUnits
		existing.Units = totalUnits
		return
	}

	p.Investments = append(p.Investments, Investment{
		SchemeCode:    schemeCode,
		Scheme:        scheme,
		Units:         units,
		PurchasePrice: purchasePrice,
		CurrentPrice:  purchasePrice,
		CreatedAt:     time.Now(),
	})
}

// SchemeCodes returns the scheme codes of all positions in order. Duplicates
// are not removed; positions are already unique per scheme code.
func (p *Portfolio) SchemeCodes() []string {
	codes := make([]string, 0, len(p.Investments))
	for i := range p.Investments {
		codes = append(codes, p.Investments[i].SchemeCode)
	}
	return codes
}

// CurrentValue returns the market value of the whole portfolio.
func (p *Portfolio) CurrentValue() float64 {
	total := 0.0
	for i := range p.Investments {
		total += p.Investments[i].MarketValue()
	}
	return total
}

// InvestmentRequest is a purchase submitted through the API.
type InvestmentRequest struct {
	Scheme        string  `json:"scheme"`
	SchemeCode    string  `json:"scheme_code"`
	Units         float64 `json:"units"`
	PurchasePrice float64 `json:"purchasePrice"`
}

// RefreshResult is the outcome of a portfolio price refresh. Exactly one of
// Portfolio or Message is set; Error carries detail when the refresh failed
// internally. Refresh outcomes are always values, never propagated errors.
type RefreshResult struct {
	Portfolio *Portfolio `json:"portfolio,omitempty"`
	Message   string     `json:"message,omitempty"`
	Error     string     `json:"error,omitempty"`
}
