package web

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"talenttrack/internal/application/orchestrators"
	"talenttrack/internal/application/projections"
	"talenttrack/internal/domain/catalog"
)

// mdRenderer renders video descriptions. Raw HTML in the Markdown is escaped.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

type progressRequest struct {
	Progress float64 `json:"progress"`
}

type rewardsRequest struct {
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}

type analysisRequest struct {
	Activity    string `json:"activity"`
	ChallengeID string `json:"challengeId"`
}

// videoView is a training video with its description rendered to HTML.
type videoView struct {
	catalog.TrainingVideo
	DescriptionHTML string `json:"descriptionHtml"`
}

// handleListBadges handles GET /api/badges
func (s *Server) handleListBadges(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.Game.Badges())
}

// handleUnlockBadge handles POST /api/badges/{id}/unlock
func (s *Server) handleUnlockBadge(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	b, err := c.Game.UnlockBadge(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// handleListChallenges handles GET /api/challenges?type=
func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	list, err := projections.QueryChallenges(r.URL.Query().Get("type"), c.Game)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleChallengeProgress handles POST /api/challenges/{id}/progress
func (s *Server) handleChallengeProgress(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	var req progressRequest
	if !decodeOrReject(w, r, &req) {
		return
	}
	ch, err := c.Game.UpdateProgress(chi.URLParam(r, "id"), req.Progress)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

// handleCompleteChallenge handles POST /api/challenges/{id}/complete
func (s *Server) handleCompleteChallenge(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	ch, err := c.Game.CompleteChallenge(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

// handleChallengeActivity handles POST /api/challenges/{id}/activity
func (s *Server) handleChallengeActivity(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	result, err := orchestrators.ExecuteLogChallengeActivity(r.Context(),
		orchestrators.LogChallengeActivityInput{ChallengeID: chi.URLParam(r, "id")},
		orchestrators.LogChallengeActivityDeps{Challenges: c.Game, Session: c.Session},
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleRewards handles POST /api/rewards
func (s *Server) handleRewards(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	var req rewardsRequest
	if !decodeOrReject(w, r, &req) {
		return
	}
	p, err := c.Session.GrantRewards(r.Context(), req.XP, req.Coins)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: p, Flags: c.Session.Flags()})
}

// handleLeaderboard handles GET /api/leaderboard
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.Game.Leaderboard())
}

// handleTrainingVideos handles GET /api/training-videos?category=
func (s *Server) handleTrainingVideos(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	videos, err := projections.QueryTrainingVideos(r.URL.Query().Get("category"), c.Game)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]videoView, 0, len(videos))
	for _, v := range videos {
		var buf bytes.Buffer
		if err := mdRenderer.Convert([]byte(v.Description), &buf); err != nil {
			internalError(w, err)
			return
		}
		views = append(views, videoView{TrainingVideo: v, DescriptionHTML: buf.String()})
	}
	writeJSON(w, http.StatusOK, views)
}

// handleAnalysis handles POST /api/analysis
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	c, ok := clientFrom(w, r)
	if !ok {
		return
	}
	var req analysisRequest
	if !decodeOrReject(w, r, &req) {
		return
	}

	result, err := orchestrators.ExecuteAnalyzeUpload(r.Context(),
		orchestrators.AnalyzeUploadInput{Activity: req.Activity, ChallengeID: req.ChallengeID},
		orchestrators.AnalyzeUploadDeps{Analyzer: c.Analyzer, Session: c.Session, Challenges: c.Game},
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
