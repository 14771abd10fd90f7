package web

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"talenttrack/internal/adapters/email"
	"talenttrack/internal/adapters/http/middleware"
)

// DefaultRequestTimeout bounds a single request, including a simulated analysis.
const DefaultRequestTimeout = 60 * time.Second

// ClientDirectory resolves clients and reports how many are live.
type ClientDirectory interface {
	middleware.ClientResolver
	Len() int
}

// Deps holds what the HTTP layer needs from the rest of the app.
type Deps struct {
	Clients   ClientDirectory
	Sender    email.Sender
	EmailFrom string

	// CSRFKey must be 32 bytes. A nil key is replaced by a random one per process.
	CSRFKey        []byte
	TrustedOrigins []string
	SecureCookies  bool

	Limiter            *middleware.RateLimiter
	RateLimitPerSecond int
	SlowRequest        time.Duration
	RequestTimeout     time.Duration
	Version            string
}

// Server serves the TalentTrack JSON API.
type Server struct {
	deps Deps
}

// NewRouter wires HTTP handlers for the app.
// PRE: deps.Clients is non-nil
// POST: Returns a handler serving /healthz and /api
func NewRouter(deps Deps) (http.Handler, error) {
	if deps.CSRFKey == nil {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate CSRF key: %w", err)
		}
		slog.Warn("csrf_key_random", "detail", "form tokens will not survive a restart; set TALENTTRACK_CSRF_KEY")
		deps.CSRFKey = key
	}
	if deps.Limiter == nil {
		rate := deps.RateLimitPerSecond
		if rate <= 0 {
			rate = 10
		}
		deps.Limiter = middleware.NewRateLimiter(rate, time.Second)
	}
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = DefaultRequestTimeout
	}

	s := &Server{deps: deps}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(deps.SlowRequest))
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(chimw.Timeout(deps.RequestTimeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(deps.Limiter))
		r.Use(middleware.CSRF(deps.CSRFKey, deps.SecureCookies, deps.TrustedOrigins))
		r.Use(middleware.Clients(deps.Clients, deps.SecureCookies))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.handleSignup)
			r.Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.Get("/me", s.handleGetMe)
			r.Patch("/me", s.handlePatchMe)
			r.Get("/error", s.handleGetError)
			r.Delete("/error", s.handleClearError)
			r.Post("/tutorial-seen", s.handleTutorialSeen)
			r.Post("/onboarding", s.handleOnboarding)
		})

		r.Get("/badges", s.handleListBadges)
		r.Post("/badges/{id}/unlock", s.handleUnlockBadge)

		r.Get("/challenges", s.handleListChallenges)
		r.Post("/challenges/{id}/progress", s.handleChallengeProgress)
		r.Post("/challenges/{id}/complete", s.handleCompleteChallenge)
		r.Post("/challenges/{id}/activity", s.handleChallengeActivity)

		r.Post("/rewards", s.handleRewards)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/training-videos", s.handleTrainingVideos)
		r.Post("/analysis", s.handleAnalysis)

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/profile", s.handleProfile)
	})

	return r, nil
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Clients int    `json:"clients"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Service: "talenttrack",
		Version: s.deps.Version,
		Clients: s.deps.Clients.Len(),
	})
}
