package interfaces

import (
	"context"

	"github.com/priyanshps/fundtrack/internal/models"
)

// PortfolioService manages per-user investment portfolios and their price
// refresh workflow.
type PortfolioService interface {
	// AddInvestment merges a purchase into the user's portfolio, creating
	// the portfolio on first add, and persists the result.
	AddInvestment(ctx context.Context, userID string, req models.InvestmentRequest) (*models.Portfolio, error)

	// GetPortfolio ensures the user's recurring refresh job is registered,
	// then serves the cached refresh result or computes and caches a fresh
	// one.
	GetPortfolio(ctx context.Context, userID string) *models.RefreshResult

	// RefreshPrices fetches latest NAV prices for the user's positions,
	// merges them in, and persists the portfolio. All outcomes, including
	// internal failures, are returned as values.
	RefreshPrices(ctx context.Context, userID string) *models.RefreshResult
}

// FundService exposes the external fund catalog.
type FundService interface {
	// ListOpenSchemes returns the latest open-scheme NAV list with
	// duplicate scheme codes removed.
	ListOpenSchemes(ctx context.Context) ([]models.NAVRecord, error)
}
