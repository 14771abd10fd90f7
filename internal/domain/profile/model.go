package profile

import (
	"errors"
	"math"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength = 254
	MaxNameLength  = 120
)

// XPPerLevel is the XP band of a single level.
const XPPerLevel = 300

// Starting values for a new athlete.
const (
	StartingXP     = 0
	StartingLevel  = 1
	StartingCoins  = 50
	StartingStreak = 0
)

// Role constants
const (
	RoleAthlete = "athlete"
	RoleCoach   = "coach"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAthlete, RoleCoach}

// Domain errors
var (
	ErrEmptyID        = errors.New("profile ID cannot be empty")
	ErrEmptyEmail     = errors.New("email cannot be empty")
	ErrInvalidEmail   = errors.New("email must contain '@'")
	ErrEmailTooLong   = errors.New("email cannot exceed 254 characters")
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrNameTooLong    = errors.New("name cannot exceed 120 characters")
	ErrInvalidRole    = errors.New("role must be one of: athlete, coach")
	ErrNegativeStat   = errors.New("xp, coins, level and streak cannot be negative")
	ErrCoachHasStats  = errors.New("coach profiles do not carry gamification stats")
	ErrNotAnAthlete   = errors.New("only athletes can earn rewards")
	ErrNegativeReward = errors.New("reward amounts cannot be negative")
	ErrRewardOverflow = errors.New("reward would exceed the maximum balance")
)

// Stats holds the gamification attributes of an athlete.
type Stats struct {
	XP     int `json:"xp"`
	Level  int `json:"level"`
	Coins  int `json:"coins"`
	Streak int `json:"streak"`
}

// Profile is a registered user account as seen by the rest of the app.
type Profile struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Role               string    `json:"role"`
	OnboardingComplete bool      `json:"onboardingComplete"`
	ProfileComplete    bool      `json:"profileComplete"`
	CreatedAt          time.Time `json:"createdAt"`

	// Stats is nil for coaches; its fields are flattened into the JSON object.
	*Stats

	Avatar       string   `json:"avatar,omitempty"`
	Height       string   `json:"height,omitempty"`
	Weight       string   `json:"weight,omitempty"`
	HeightProof  string   `json:"heightProof,omitempty"`
	Gender       string   `json:"gender,omitempty"`
	Mobile       string   `json:"mobile,omitempty"`
	State        string   `json:"state,omitempty"`
	District     string   `json:"district,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Update is a partial profile merge. Nil fields are left untouched.
// Identity, role and the XP/coin totals are deliberately absent.
type Update struct {
	Name               *string   `json:"name,omitempty"`
	Avatar             *string   `json:"avatar,omitempty"`
	Height             *string   `json:"height,omitempty"`
	Weight             *string   `json:"weight,omitempty"`
	HeightProof        *string   `json:"heightProof,omitempty"`
	Gender             *string   `json:"gender,omitempty"`
	Mobile             *string   `json:"mobile,omitempty"`
	State              *string   `json:"state,omitempty"`
	District           *string   `json:"district,omitempty"`
	Achievements       *[]string `json:"achievements,omitempty"`
	OnboardingComplete *bool     `json:"onboardingComplete,omitempty"`
	ProfileComplete    *bool     `json:"profileComplete,omitempty"`
	Streak             *int      `json:"streak,omitempty"`
}

// NormalizeEmail lower-cases and trims an email for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidRole reports whether role is a known role.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// LevelForXP derives the display level from an XP total.
func LevelForXP(xp int) int {
	if xp < 0 {
		return StartingLevel
	}
	return xp/XPPerLevel + 1
}

// NewAthleteStats returns the stats every new athlete starts with.
func NewAthleteStats() *Stats {
	return &Stats{
		XP:     StartingXP,
		Level:  StartingLevel,
		Coins:  StartingCoins,
		Streak: StartingStreak,
	}
}

// Validate checks if the Profile has valid data.
// PRE: Profile struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Profile) Validate() error {
	if p.ID == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(p.Email) == "" {
		return ErrEmptyEmail
	}
	if len(p.Email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	if !strings.Contains(p.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !IsValidRole(p.Role) {
		return ErrInvalidRole
	}
	if p.Role == RoleCoach && p.Stats != nil {
		return ErrCoachHasStats
	}
	if p.Stats != nil {
		if p.XP < 0 || p.Coins < 0 || p.Level < 0 || p.Streak < 0 {
			return ErrNegativeStat
		}
	}
	return nil
}

// IsAthlete returns true if the profile has the athlete role.
// INVARIANT: Profile fields are not mutated
func (p *Profile) IsAthlete() bool {
	return p.Role == RoleAthlete
}

// Clone returns a deep copy so callers cannot alias store state.
func (p Profile) Clone() Profile {
	out := p
	if p.Stats != nil {
		s := *p.Stats
		out.Stats = &s
	}
	if p.Achievements != nil {
		out.Achievements = append([]string(nil), p.Achievements...)
	}
	return out
}

// Apply merges u into the profile. Later-specified fields overwrite.
// PRE: u has been validated by the caller
// POST: Non-nil fields of u are copied onto p
func (p *Profile) Apply(u Update) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Avatar != nil {
		p.Avatar = *u.Avatar
	}
	if u.Height != nil {
		p.Height = *u.Height
	}
	if u.Weight != nil {
		p.Weight = *u.Weight
	}
	if u.HeightProof != nil {
		p.HeightProof = *u.HeightProof
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.Mobile != nil {
		p.Mobile = *u.Mobile
	}
	if u.State != nil {
		p.State = *u.State
	}
	if u.District != nil {
		p.District = *u.District
	}
	if u.Achievements != nil {
		p.Achievements = append([]string(nil), (*u.Achievements)...)
	}
	if u.OnboardingComplete != nil {
		p.OnboardingComplete = *u.OnboardingComplete
	}
	if u.ProfileComplete != nil {
		p.ProfileComplete = *u.ProfileComplete
	}
	if u.Streak != nil && p.Stats != nil {
		p.Streak = *u.Streak
	}
}

// Validate checks that an Update carries acceptable values.
func (u Update) Validate() error {
	if u.Name != nil {
		if strings.TrimSpace(*u.Name) == "" {
			return ErrEmptyName
		}
		if len(*u.Name) > MaxNameLength {
			return ErrNameTooLong
		}
	}
	if u.Streak != nil && *u.Streak < 0 {
		return ErrNegativeStat
	}
	return nil
}

// GrantRewards adds XP and coins and recomputes the level.
// PRE: Profile is an athlete
// POST: XP and Coins increased, Level == LevelForXP(XP), or an error with no change
func (p *Profile) GrantRewards(xp, coins int) error {
	if !p.IsAthlete() || p.Stats == nil {
		return ErrNotAnAthlete
	}
	if xp < 0 || coins < 0 {
		return ErrNegativeReward
	}
	if xp > math.MaxInt-p.XP || coins > math.MaxInt-p.Coins {
		return ErrRewardOverflow
	}
	p.XP += xp
	p.Coins += coins
	p.Level = LevelForXP(p.XP)
	return nil
}

// XPIntoLevel returns how much XP the athlete has inside the current level band.
func (p *Profile) XPIntoLevel() int {
	if p.Stats == nil {
		return 0
	}
	return p.XP % XPPerLevel
}

// XPForNextLevel returns the XP total displayed as the next level target.
func (p *Profile) XPForNextLevel() int {
	level := StartingLevel
	if p.Stats != nil && p.Level > 0 {
		level = p.Level
	}
	return level * XPPerLevel
}
