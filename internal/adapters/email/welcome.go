package email

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"

	"talenttrack/internal/domain/profile"
)

var welcomeRenderer = goldmark.New()

const athleteWelcome = `# Welcome to TalentTrack, %s!

You start at **level 1** with **%d coins**.

- Take today's challenges to earn XP
- Upload a training video for an instant rating
- Unlock badges as you go
`

const coachWelcome = `# Welcome to TalentTrack, %s!

Your coach account is ready. Invite your athletes and follow their progress.
`

// WelcomeMessage builds the signup email for p.
// PRE: p has an email and a name
// POST: Returns a request with an HTML body rendered from Markdown
func WelcomeMessage(p profile.Profile, from string) (SendRequest, error) {
	var md string
	if p.IsAthlete() && p.Stats != nil {
		md = fmt.Sprintf(athleteWelcome, p.Name, p.Coins)
	} else {
		md = fmt.Sprintf(coachWelcome, p.Name)
	}

	var buf bytes.Buffer
	if err := welcomeRenderer.Convert([]byte(md), &buf); err != nil {
		return SendRequest{}, fmt.Errorf("render welcome email: %w", err)
	}
	return SendRequest{
		To:      []string{p.Email},
		From:    from,
		Subject: "Welcome to TalentTrack",
		HTML:    buf.String(),
	}, nil
}
