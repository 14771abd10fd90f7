package email

import (
	"context"
	"strings"
	"testing"

	"talenttrack/internal/domain/profile"
)

// TestWelcomeMessage_Athlete tests the athlete body mentions the starting coins.
func TestWelcomeMessage_Athlete(t *testing.T) {
	p := profile.Profile{ID: "1", Email: "a@x.com", Name: "Ann", Role: profile.RoleAthlete, Stats: profile.NewAthleteStats()}
	req, err := WelcomeMessage(p, "TalentTrack <hello@talenttrack.app>")
	if err != nil {
		t.Fatalf("WelcomeMessage: %v", err)
	}
	if len(req.To) != 1 || req.To[0] != "a@x.com" {
		t.Errorf("To = %v", req.To)
	}
	if !strings.Contains(req.HTML, "<h1>Welcome to TalentTrack, Ann!</h1>") {
		t.Errorf("missing heading in %q", req.HTML)
	}
	if !strings.Contains(req.HTML, "<strong>50 coins</strong>") {
		t.Errorf("missing coins in %q", req.HTML)
	}
}

// TestWelcomeMessage_Coach tests coaches get the coach copy.
func TestWelcomeMessage_Coach(t *testing.T) {
	p := profile.Profile{ID: "2", Email: "c@x.com", Name: "Cal", Role: profile.RoleCoach}
	req, err := WelcomeMessage(p, "")
	if err != nil {
		t.Fatalf("WelcomeMessage: %v", err)
	}
	if !strings.Contains(req.HTML, "coach account") {
		t.Errorf("got %q", req.HTML)
	}
}

// TestNoopSender_Send tests the noop sender returns an id without delivering.
func TestNoopSender_Send(t *testing.T) {
	s := NewNoopSender()
	res, err := s.Send(context.Background(), SendRequest{To: []string{"a@x.com"}, Subject: "hi"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.HasPrefix(res.MessageID, "noop-") {
		t.Errorf("MessageID = %q", res.MessageID)
	}
}
