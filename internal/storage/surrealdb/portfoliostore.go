package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/priyanshps/fundtrack/internal/common"
	"github.com/priyanshps/fundtrack/internal/interfaces"
	"github.com/priyanshps/fundtrack/internal/models"
)

// PortfolioStore persists portfolios with record ID = user ID, which enforces
// the one-portfolio-per-user invariant at the storage layer.
type PortfolioStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewPortfolioStore(db *surrealdb.DB, logger *common.Logger) *PortfolioStore {
	return &PortfolioStore{
		db:     db,
		logger: logger,
	}
}

func (s *PortfolioStore) GetPortfolio(ctx context.Context, userID string) (*models.Portfolio, error) {
	portfolio, err := surrealdb.Select[models.Portfolio](ctx, s.db, surrealmodels.NewRecordID("portfolio", userID))
	if err != nil {
		return nil, fmt.Errorf("failed to select portfolio: %w", err)
	}
	if portfolio == nil {
		return nil, interfaces.ErrNotFound
	}
	return portfolio, nil
}

func (s *PortfolioStore) SavePortfolio(ctx context.Context, portfolio *models.Portfolio) error {
	sql := "UPSERT type::record('portfolio', $id) CONTENT $portfolio"
	vars := map[string]any{"id": portfolio.UserID, "portfolio": portfolio}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.Portfolio](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to save portfolio after retries: %w", err)
		}
	}
	return nil
}

func (s *PortfolioStore) DeletePortfolio(ctx context.Context, userID string) error {
	_, err := surrealdb.Delete[models.Portfolio](ctx, s.db, surrealmodels.NewRecordID("portfolio", userID))
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	return nil
}
