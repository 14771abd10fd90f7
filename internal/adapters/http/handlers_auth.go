package web

import (
	"net/http"

	"talenttrack/internal/application/orchestrators"
	"talenttrack/internal/application/session"
	"talenttrack/internal/domain/profile"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// authResponse is the active user with its UI flags.
type authResponse struct {
	User  profile.Profile `json:"user"`
	Flags session.Flags   `json:"flags"`
}

type lastErrorResponse struct {
	Error *session.AuthError `json:"error"`
}

// handleSignup handles POST /api/auth/signup
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	var req signupRequest
	if !decodeOrReject(w, r, &req) {
		return
	}

	p, err := orchestrators.ExecuteSignup(r.Context(), orchestrators.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	}, orchestrators.SignupDeps{
		Session:   c.Session,
		Sender:    s.deps.Sender,
		EmailFrom: s.deps.EmailFrom,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{User: p, Flags: c.Session.Flags()})
}

// handleLogin handles POST /api/auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	var req loginRequest
	if !decodeOrReject(w, r, &req) {
		return
	}

	p, err := c.Session.Login(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: p, Flags: c.Session.Flags()})
}

// handleLogout handles POST /api/auth/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	if err := c.Session.Logout(r.Context()); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetMe handles GET /api/auth/me
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	p, ok := c.Session.Current()
	if !ok {
		writeDomainError(w, session.ErrNoActiveSession)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: p, Flags: c.Session.Flags()})
}

// handlePatchMe handles PATCH /api/auth/me
func (s *Server) handlePatchMe(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	if _, ok := c.Session.Current(); !ok {
		writeDomainError(w, session.ErrNoActiveSession)
		return
	}
	var u profile.Update
	if !decodeOrReject(w, r, &u) {
		return
	}

	if err := c.Session.UpdateUser(r.Context(), u); err != nil {
		writeDomainError(w, err)
		return
	}
	p, ok := c.Session.Current()
	if !ok {
		writeDomainError(w, session.ErrNoActiveSession)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: p, Flags: c.Session.Flags()})
}

// handleGetError handles GET /api/auth/error
func (s *Server) handleGetError(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, lastErrorResponse{Error: c.Session.LastError()})
}

// handleClearError handles DELETE /api/auth/error
func (s *Server) handleClearError(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	c.Session.ClearError()
	w.WriteHeader(http.StatusNoContent)
}

// handleTutorialSeen handles POST /api/auth/tutorial-seen
func (s *Server) handleTutorialSeen(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	if err := c.Session.MarkTutorialSeen(r.Context()); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleOnboarding handles POST /api/auth/onboarding
func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	var u profile.Update
	if !decodeOrReject(w, r, &u) {
		return
	}

	p, err := c.Session.CompleteOnboarding(r.Context(), u)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: p, Flags: c.Session.Flags()})
}
