package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"talenttrack/internal/adapters/http/middleware"
	"talenttrack/internal/app"
	"talenttrack/internal/application/gamification"
	"talenttrack/internal/application/orchestrators"
	"talenttrack/internal/application/projections"
	"talenttrack/internal/application/session"
	analysisDomain "talenttrack/internal/domain/analysis"
	"talenttrack/internal/domain/profile"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Error codes outside the auth kinds.
const (
	codeInvalidRequest     = "invalid_request"
	codeNoSession          = "no_session"
	codeAthleteOnly        = "athlete_only"
	codeNotFound           = "not_found"
	codeChallengeCompleted = "challenge_completed"
	codeTimeout            = "timeout"
	codeInternal           = "internal"
)

// errorResponse is the error envelope of every failed API call.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode_failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// decodeOrReject decodes the body and answers 400 on failure.
// POST: Returns false if a response has been written
func decodeOrReject(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := strictDecode(w, r, v); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "malformed JSON body")
		return false
	}
	return true
}

// clientFrom returns the requesting Client set by the Clients middleware.
func clientFrom(w http.ResponseWriter, r *http.Request) (*app.Client, bool) {
	c, ok := middleware.ClientFromContext(r.Context())
	if !ok {
		internalError(w, errors.New("client middleware not mounted"))
		return nil, false
	}
	return c, true
}

// authStatus maps an auth error kind to its HTTP status.
func authStatus(kind session.ErrorKind) int {
	switch kind {
	case session.KindAccountNotFound:
		return http.StatusNotFound
	case session.KindIncorrectPassword:
		return http.StatusUnauthorized
	case session.KindRoleMismatch:
		return http.StatusForbidden
	case session.KindAccountAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

var badRequestErrors = []error{
	projections.ErrInvalidFilter,
	analysisDomain.ErrUnknownActivity,
	profile.ErrEmptyName,
	profile.ErrNameTooLong,
	profile.ErrNegativeStat,
	profile.ErrNegativeReward,
	profile.ErrRewardOverflow,
}

// writeDomainError answers err with the matching status and envelope.
func writeDomainError(w http.ResponseWriter, err error) {
	var authErr *session.AuthError
	if errors.As(err, &authErr) {
		writeError(w, authStatus(authErr.Kind), string(authErr.Kind), authErr.Message)
		return
	}

	switch {
	case errors.Is(err, session.ErrNoActiveSession), errors.Is(err, projections.ErrNoUser):
		writeError(w, http.StatusUnauthorized, codeNoSession, "log in to continue")
	case errors.Is(err, orchestrators.ErrAthleteOnly), errors.Is(err, profile.ErrNotAnAthlete):
		writeError(w, http.StatusForbidden, codeAthleteOnly, err.Error())
	case errors.Is(err, gamification.ErrBadgeNotFound), errors.Is(err, gamification.ErrChallengeNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, orchestrators.ErrChallengeCompleted):
		writeError(w, http.StatusConflict, codeChallengeCompleted, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, codeTimeout, "the request took too long")
	case errors.Is(err, context.Canceled):
		slog.Info("request_abandoned", "error", err)
	default:
		for _, target := range badRequestErrors {
			if errors.Is(err, target) {
				writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
				return
			}
		}
		internalError(w, err)
	}
}
