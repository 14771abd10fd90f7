package profile_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"talenttrack/internal/domain/profile"
)

// TestProfile_Validate tests validation of Profile.
func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		profile profile.Profile
		wantErr error
	}{
		{
			name:    "valid athlete",
			profile: profile.Profile{ID: "1", Email: "a@x.com", Name: "Ann", Role: profile.RoleAthlete, Stats: profile.NewAthleteStats()},
		},
		{
			name:    "valid coach",
			profile: profile.Profile{ID: "2", Email: "c@x.com", Name: "Cal", Role: profile.RoleCoach},
		},
		{
			name:    "empty id",
			profile: profile.Profile{Email: "a@x.com", Name: "Ann", Role: profile.RoleAthlete},
			wantErr: profile.ErrEmptyID,
		},
		{
			name:    "email without at",
			profile: profile.Profile{ID: "1", Email: "ax.com", Name: "Ann", Role: profile.RoleAthlete},
			wantErr: profile.ErrInvalidEmail,
		},
		{
			name:    "blank name",
			profile: profile.Profile{ID: "1", Email: "a@x.com", Name: "  ", Role: profile.RoleAthlete},
			wantErr: profile.ErrEmptyName,
		},
		{
			name:    "unknown role",
			profile: profile.Profile{ID: "1", Email: "a@x.com", Name: "Ann", Role: "admin"},
			wantErr: profile.ErrInvalidRole,
		},
		{
			name:    "coach with stats",
			profile: profile.Profile{ID: "1", Email: "c@x.com", Name: "Cal", Role: profile.RoleCoach, Stats: profile.NewAthleteStats()},
			wantErr: profile.ErrCoachHasStats,
		},
		{
			name:    "negative coins",
			profile: profile.Profile{ID: "1", Email: "a@x.com", Name: "Ann", Role: profile.RoleAthlete, Stats: &profile.Stats{Coins: -1, Level: 1}},
			wantErr: profile.ErrNegativeStat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestLevelForXP tests the 300-XP level bands.
func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1}, {299, 1}, {300, 2}, {1250, 5}, {-5, 1},
	}
	for _, tt := range tests {
		if got := profile.LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

// TestProfile_GrantRewards tests reward application and level recomputation.
func TestProfile_GrantRewards(t *testing.T) {
	p := profile.Profile{ID: "1", Role: profile.RoleAthlete, Stats: profile.NewAthleteStats()}
	if err := p.GrantRewards(310, 25); err != nil {
		t.Fatalf("GrantRewards: %v", err)
	}
	if p.XP != 310 || p.Coins != 75 || p.Level != 2 {
		t.Errorf("got xp=%d coins=%d level=%d", p.XP, p.Coins, p.Level)
	}
	if p.XPIntoLevel() != 10 || p.XPForNextLevel() != 600 {
		t.Errorf("into=%d next=%d, want 10/600", p.XPIntoLevel(), p.XPForNextLevel())
	}
	if err := p.GrantRewards(0, -1); !errors.Is(err, profile.ErrNegativeReward) {
		t.Errorf("got %v, want ErrNegativeReward", err)
	}

	coach := profile.Profile{ID: "2", Role: profile.RoleCoach}
	if err := coach.GrantRewards(1, 1); !errors.Is(err, profile.ErrNotAnAthlete) {
		t.Errorf("got %v, want ErrNotAnAthlete", err)
	}
}

// TestProfile_GrantRewardsOverflow tests that balances never wrap negative.
func TestProfile_GrantRewardsOverflow(t *testing.T) {
	half := math.MaxInt/2 + 1
	tests := []struct {
		name      string
		xp, coins int
		grantXP   int
		grantCoin int
		wantErr   error
	}{
		{"xp wraps", half, 0, half, 0, profile.ErrRewardOverflow},
		{"coins wrap", 0, half, 0, half, profile.ErrRewardOverflow},
		{"xp at max", math.MaxInt, 0, 1, 0, profile.ErrRewardOverflow},
		{"fills to max", math.MaxInt - 10, 0, 10, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profile.Profile{ID: "1", Role: profile.RoleAthlete, Stats: profile.NewAthleteStats()}
			p.XP, p.Coins = tt.xp, tt.coins
			err := p.GrantRewards(tt.grantXP, tt.grantCoin)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && (p.XP != tt.xp || p.Coins != tt.coins) {
				t.Errorf("balances changed on error: xp=%d coins=%d", p.XP, p.Coins)
			}
			if p.XP < 0 || p.Coins < 0 {
				t.Errorf("negative balance: xp=%d coins=%d", p.XP, p.Coins)
			}
		})
	}
}

// TestProfile_Apply tests the shallow merge.
func TestProfile_Apply(t *testing.T) {
	p := profile.Profile{ID: "1", Name: "Ann", Role: profile.RoleAthlete, Gender: "f", Stats: profile.NewAthleteStats()}
	name := "Annie"
	streak := 3
	achievements := []string{"state finals"}
	p.Apply(profile.Update{Name: &name, Streak: &streak, Achievements: &achievements})

	if p.Name != "Annie" || p.Streak != 3 || p.Gender != "f" {
		t.Errorf("got name=%q streak=%d gender=%q", p.Name, p.Streak, p.Gender)
	}
	achievements[0] = "changed"
	if p.Achievements[0] != "state finals" {
		t.Error("achievements alias the update")
	}

	coach := profile.Profile{ID: "2", Role: profile.RoleCoach}
	coach.Apply(profile.Update{Streak: &streak})
	if coach.Stats != nil {
		t.Error("streak update must not create coach stats")
	}
}

// TestProfile_Clone tests that clones do not share stats.
func TestProfile_Clone(t *testing.T) {
	p := profile.Profile{ID: "1", Role: profile.RoleAthlete, Stats: profile.NewAthleteStats()}
	c := p.Clone()
	c.XP = 99
	if p.XP != 0 {
		t.Error("clone shares stats")
	}
}

// TestProfile_JSON tests that stats flatten into the object and vanish for coaches.
func TestProfile_JSON(t *testing.T) {
	athlete := profile.Profile{ID: "1", Email: "a@x.com", Name: "Ann", Role: profile.RoleAthlete, Stats: profile.NewAthleteStats()}
	data, err := json.Marshal(athlete)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	json.Unmarshal(data, &m)
	if m["coins"] != float64(50) {
		t.Errorf("coins = %v, want 50", m["coins"])
	}

	coach := profile.Profile{ID: "2", Email: "c@x.com", Name: "Cal", Role: profile.RoleCoach}
	data, _ = json.Marshal(coach)
	m = map[string]any{}
	json.Unmarshal(data, &m)
	if _, ok := m["xp"]; ok {
		t.Error("coach JSON should have no xp")
	}
	var back profile.Profile
	json.Unmarshal(data, &back)
	if back.Stats != nil {
		t.Error("coach decoded with stats")
	}
}
