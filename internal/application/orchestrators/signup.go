package orchestrators

import (
	"context"
	"log/slog"

	"talenttrack/internal/adapters/email"
	"talenttrack/internal/application/session"
	"talenttrack/internal/domain/profile"
)

// SessionForSignup defines the session interface needed by Signup.
type SessionForSignup interface {
	Signup(ctx context.Context, in session.SignupInput) (profile.Profile, error)
}

// SignupInput carries input for the signup orchestrator.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// SignupDeps holds dependencies for Signup.
type SignupDeps struct {
	Session   SessionForSignup
	Sender    email.Sender
	EmailFrom string
}

// ExecuteSignup registers an account and sends the welcome email.
// PRE: input carries a valid email, password, name and role
// POST: Account created and active; welcome email attempted
// INVARIANT: An email failure never fails the signup
func ExecuteSignup(ctx context.Context, input SignupInput, deps SignupDeps) (profile.Profile, error) {
	p, err := deps.Session.Signup(ctx, session.SignupInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Role:     input.Role,
	})
	if err != nil {
		return profile.Profile{}, err
	}

	if deps.Sender == nil {
		return p, nil
	}
	req, err := email.WelcomeMessage(p, deps.EmailFrom)
	if err != nil {
		slog.Error("email_event", "event", "welcome_render_failed", "user_id", p.ID, "error", err)
		return p, nil
	}
	if _, err := deps.Sender.Send(ctx, req); err != nil {
		slog.Error("email_event", "event", "welcome_send_failed", "user_id", p.ID, "error", err)
		return p, nil
	}
	slog.Info("email_event", "event", "welcome_sent", "user_id", p.ID)
	return p, nil
}
