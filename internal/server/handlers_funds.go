package server

import (
	"net/http"
)

// handleFundsList handles GET /api/funds — the latest open-scheme NAV list,
// deduplicated by scheme code.
func (s *Server) handleFundsList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	funds, err := s.app.FundService.ListOpenSchemes(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch fund list")
		WriteError(w, http.StatusInternalServerError, "Error fetching mutual fund data")
		return
	}

	WriteJSON(w, http.StatusOK, funds)
}
