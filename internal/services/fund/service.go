// Package fund exposes the external mutual-fund catalog
package fund

import (
	"context"
	"fmt"

	"github.com/priyanshps/fundtrack/internal/common"
	"github.com/priyanshps/fundtrack/internal/interfaces"
	"github.com/priyanshps/fundtrack/internal/models"
)

// Service implements FundService
type Service struct {
	nav    interfaces.NAVFeedClient
	logger *common.Logger
}

// NewService creates a new fund service
func NewService(nav interfaces.NAVFeedClient, logger *common.Logger) *Service {
	return &Service{
		nav:    nav,
		logger: logger,
	}
}

// ListOpenSchemes fetches the full open-scheme NAV list and removes duplicate
// scheme codes, keeping the first occurrence.
func (s *Service) ListOpenSchemes(ctx context.Context) ([]models.NAVRecord, error) {
	records, err := s.nav.ListOpenSchemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fund list: %w", err)
	}

	seen := make(map[string]bool, len(records))
	unique := make([]models.NAVRecord, 0, len(records))
	for _, r := range records {
		if seen[r.SchemeCode] {
			continue
		}
		seen[r.SchemeCode] = true
		unique = append(unique, r)
	}
	return unique, nil
}

// Ensure Service implements FundService
var _ interfaces.FundService = (*Service)(nil)
