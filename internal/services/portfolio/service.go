// Package portfolio provides portfolio management and the NAV refresh workflow
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/priyanshps/fundtrack/internal/common"
	"github.com/priyanshps/fundtrack/internal/interfaces"
	"github.com/priyanshps/fundtrack/internal/models"
)

// Service implements PortfolioService
type Service struct {
	storage interfaces.StorageManager
	nav     interfaces.NAVFeedClient
	cache   *ResultCache
	sched   *Scheduler
	logger  *common.Logger
}

// NewService creates a new portfolio service. The cache and scheduler are
// constructed by the caller so tests and multi-instance deployments control
// their lifetime.
func NewService(
	storage interfaces.StorageManager,
	nav interfaces.NAVFeedClient,
	cache *ResultCache,
	sched *Scheduler,
	logger *common.Logger,
) *Service {
	return &Service{
		storage: storage,
		nav:     nav,
		cache:   cache,
		sched:   sched,
		logger:  logger,
	}
}

// AddInvestment merges a purchase into the user's portfolio and persists it.
// The portfolio is created lazily on the first add. A successful add drops
// the user's cached refresh result so the next read reflects the new
// position.
func (s *Service) AddInvestment(ctx context.Context, userID string, req models.InvestmentRequest) (*models.Portfolio, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if req.SchemeCode == "" {
		return nil, fmt.Errorf("scheme_code is required")
	}
	if req.Units <= 0 {
		return nil, fmt.Errorf("units must be positive")
	}
	if req.PurchasePrice <= 0 {
		return nil, fmt.Errorf("purchasePrice must be positive")
	}

	p, err := s.storage.PortfolioStore().GetPortfolio(ctx, userID)
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		p = &models.Portfolio{UserID: userID}
	case err != nil:
		// A failed read must not start a fresh portfolio; persisting one
		// would replace the user's existing positions.
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	p.AddPurchase(req.SchemeCode, req.Scheme, req.Units, req.PurchasePrice)
	p.UpdatedAt = time.Now()

	if err := s.storage.PortfolioStore().SavePortfolio(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}

	s.cache.Invalidate(userID)

	s.logger.Info().
		Str("user_id", userID).
		Str("scheme_code", req.SchemeCode).
		Float64("units", req.Units).
		Msg("Investment added")

	return p, nil
}

// GetPortfolio ensures the user's recurring refresh job exists, then serves
// the cached refresh result if one is live, computing and caching a fresh
// result otherwise.
func (s *Service) GetPortfolio(ctx context.Context, userID string) *models.RefreshResult {
	s.sched.Ensure(userID, func(jobCtx context.Context) {
		result := s.RefreshPrices(jobCtx, userID)
		if result.Error != "" {
			s.logger.Warn().
				Str("user_id", userID).
				Str("error", result.Error).
				Msg("Scheduled refresh failed")
		}
		s.cache.Set(userID, result)
	})

	if result, ok := s.cache.Get(userID); ok {
		return result
	}

	result := s.RefreshPrices(ctx, userID)
	s.cache.Set(userID, result)
	return result
}

// RefreshPrices loads the user's portfolio, fetches latest NAV prices for its
// scheme codes in one batch, merges them into the positions, and persists the
// result. Every outcome is a value; this method never returns an error to its
// caller.
func (s *Service) RefreshPrices(ctx context.Context, userID string) *models.RefreshResult {
	if _, err := uuid.Parse(userID); err != nil {
		return &models.RefreshResult{
			Message: fmt.Sprintf("Error updating portfolio prices for userId: %s", userID),
			Error:   "invalid userId provided",
		}
	}

	p, err := s.storage.PortfolioStore().GetPortfolio(ctx, userID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return &models.RefreshResult{
			Message: fmt.Sprintf("Error updating portfolio prices for userId: %s", userID),
			Error:   err.Error(),
		}
	}
	if err != nil || len(p.Investments) == 0 {
		return &models.RefreshResult{
			Message: fmt.Sprintf("No investments found for userId: %s", userID),
		}
	}

	schemeCodes := p.SchemeCodes()
	if len(schemeCodes) == 0 {
		return &models.RefreshResult{
			Message: fmt.Sprintf("No scheme codes found for userId: %s", userID),
		}
	}

	records, err := s.nav.LatestNAV(ctx, schemeCodes)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("NAV feed lookup failed")
		records = nil
	}
	if len(records) == 0 {
		return &models.RefreshResult{
			Message: fmt.Sprintf("No latest prices found for userId: %s", userID),
		}
	}

	navByCode := make(map[string]float64, len(records))
	for _, r := range records {
		navByCode[r.SchemeCode] = r.NetAssetValue
	}

	// A scheme code absent from the lookup zeroes the stored price, erasing
	// any previously known value. Callers depend on this overwrite.
	for i := range p.Investments {
		p.Investments[i].CurrentPrice = navByCode[p.Investments[i].SchemeCode]
	}

	p.UpdatedAt = time.Now()
	if err := s.storage.PortfolioStore().SavePortfolio(ctx, p); err != nil {
		return &models.RefreshResult{
			Message: fmt.Sprintf("Failed to update investments for userId: %s", userID),
			Error:   err.Error(),
		}
	}

	return &models.RefreshResult{Portfolio: p}
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
