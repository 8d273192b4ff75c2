// Package memory implements FundTrack storage in process memory. It backs
// tests and the "memory" storage backend for local development.
package memory

import (
	"context"
	"sync"

	"github.com/priyanshps/fundtrack/internal/interfaces"
	"github.com/priyanshps/fundtrack/internal/models"
)

// Manager implements interfaces.StorageManager with in-memory maps.
type Manager struct {
	mu         sync.RWMutex
	users      map[string]*models.User
	portfolios map[string]*models.Portfolio
}

// NewManager creates an empty in-memory storage manager.
func NewManager() *Manager {
	return &Manager{
		users:      make(map[string]*models.User),
		portfolios: make(map[string]*models.Portfolio),
	}
}

func (m *Manager) UserStore() interfaces.UserStore           { return (*userStore)(m) }
func (m *Manager) PortfolioStore() interfaces.PortfolioStore { return (*portfolioStore)(m) }
func (m *Manager) Close() error                              { return nil }

type userStore Manager

func (s *userStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *userStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (s *userStore) SaveUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *user
	s.users[user.UserID] = &copied
	return nil
}

func (s *userStore) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, userID)
	return nil
}

func (s *userStore) ListUsers(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var userIDs []string
	for id := range s.users {
		userIDs = append(userIDs, id)
	}
	return userIDs, nil
}

type portfolioStore Manager

// copyPortfolio deep-copies so callers never alias stored investments.
func copyPortfolio(p *models.Portfolio) *models.Portfolio {
	copied := *p
	copied.Investments = make([]models.Investment, len(p.Investments))
	copy(copied.Investments, p.Investments)
	return &copied
}

func (s *portfolioStore) GetPortfolio(_ context.Context, userID string) (*models.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.portfolios[userID]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return copyPortfolio(p), nil
}

func (s *portfolioStore) SavePortfolio(_ context.Context, portfolio *models.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.portfolios[portfolio.UserID] = copyPortfolio(portfolio)
	return nil
}

func (s *portfolioStore) DeletePortfolio(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.portfolios, userID)
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
