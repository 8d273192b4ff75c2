package interfaces

import (
	"context"
	"errors"

	"github.com/priyanshps/fundtrack/internal/models"
)

// ErrNotFound is returned by stores when the requested record does not exist.
// Callers distinguish it from transport or query failures with errors.Is.
var ErrNotFound = errors.New("record not found")

// StorageManager provides access to the storage areas.
type StorageManager interface {
	UserStore() UserStore
	PortfolioStore() PortfolioStore
	Close() error
}

// UserStore persists user accounts.
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]string, error)
}

// PortfolioStore persists per-user portfolios, keyed by user ID.
type PortfolioStore interface {
	GetPortfolio(ctx context.Context, userID string) (*models.Portfolio, error)
	SavePortfolio(ctx context.Context, portfolio *models.Portfolio) error
	DeletePortfolio(ctx context.Context, userID string) error
}
