package server

import (
	"net/http"

	"github.com/priyanshps/fundtrack/internal/common"
	"github.com/priyanshps/fundtrack/internal/models"
)

// handlePortfolioAdd handles POST /api/portfolio/add — merge a purchase into
// the authenticated user's portfolio.
func (s *Server) handlePortfolioAdd(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.InvestmentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	userID := common.ResolveUserID(r.Context())

	portfolio, err := s.app.PortfolioService.AddInvestment(r.Context(), userID, req)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to add investment")
		WriteError(w, http.StatusInternalServerError, "Error adding investment")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Investment added successfully",
		"portfolio": portfolio,
	})
}

// handlePortfolioGet handles GET /api/portfolio/get — register the user's
// recurring refresh job and serve the cached or freshly computed portfolio.
func (s *Server) handlePortfolioGet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	userID := common.ResolveUserID(r.Context())
	result := s.app.PortfolioService.GetPortfolio(r.Context(), userID)

	WriteJSON(w, http.StatusOK, result)
}
