package web

import (
	"net/http"

	"talenttrack/internal/application/projections"
)

// handleDashboard handles GET /api/dashboard
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	view, err := projections.QueryDashboard(projections.DashboardDeps{
		Users:      c.Session,
		Badges:     c.Game,
		Challenges: c.Game,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleProfile handles GET /api/profile
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	view, err := projections.QueryProfile(projections.ProfileDeps{
		Users:  c.Session,
		Badges: c.Game,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
