package projections

import (
	"errors"
	"testing"

	"talenttrack/internal/domain/badge"
	"talenttrack/internal/domain/catalog"
	"talenttrack/internal/domain/challenge"
	"talenttrack/internal/domain/profile"
)

// mockUsers implements UserSource for testing.
type mockUsers struct {
	user *profile.Profile
}

func (m mockUsers) Current() (profile.Profile, bool) {
	if m.user == nil {
		return profile.Profile{}, false
	}
	return *m.user, true
}

// mockCatalog implements the catalog sources for testing.
type mockCatalog struct {
	seed catalog.Catalog
}

func (m mockCatalog) Badges() []badge.Badge { return m.seed.Badges }

func (m mockCatalog) Challenges() []challenge.Challenge { return m.seed.Challenges }

func (m mockCatalog) TrainingVideos() []catalog.TrainingVideo { return m.seed.TrainingVideos }

func athlete(xp, streak int) *profile.Profile {
	return &profile.Profile{ID: "test-id-001", Name: "Ann", Role: profile.RoleAthlete, Stats: &profile.Stats{XP: xp, Level: profile.LevelForXP(xp), Coins: 50, Streak: streak}}
}

// TestQueryDashboard tests counts, preview size and active challenges.
func TestQueryDashboard(t *testing.T) {
	cat := mockCatalog{catalog.Default()}
	cat.seed.Challenges[0].Complete()
	for i := 0; i < 5; i++ {
		cat.seed.Badges[i].Unlock()
	}

	view, err := QueryDashboard(DashboardDeps{Users: mockUsers{athlete(0, 12)}, Badges: cat, Challenges: cat})
	if err != nil {
		t.Fatalf("QueryDashboard: %v", err)
	}
	if view.CompletedChallenges != 1 {
		t.Errorf("completed = %d, want 1", view.CompletedChallenges)
	}
	if len(view.ActiveChallenges) != len(cat.seed.Challenges)-1 {
		t.Errorf("active = %d", len(view.ActiveChallenges))
	}
	for _, c := range view.ActiveChallenges {
		if c.Completed {
			t.Errorf("completed challenge %s listed as active", c.ID)
		}
	}
	if len(view.RecentBadges) != DashboardBadgePreview {
		t.Errorf("preview = %d, want %d", len(view.RecentBadges), DashboardBadgePreview)
	}
	if view.TotalBadges != 30 {
		t.Errorf("total = %d, want 30", view.TotalBadges)
	}
	if view.UnlockedBadges < 5 {
		t.Errorf("unlocked = %d, want at least 5", view.UnlockedBadges)
	}
	if view.Streak != 12 {
		t.Errorf("streak = %d, want 12", view.Streak)
	}
}

// TestQueryDashboard_NoUser tests a logged-out client gets ErrNoUser.
func TestQueryDashboard_NoUser(t *testing.T) {
	cat := mockCatalog{catalog.Default()}
	if _, err := QueryDashboard(DashboardDeps{Users: mockUsers{}, Badges: cat, Challenges: cat}); !errors.Is(err, ErrNoUser) {
		t.Errorf("got %v, want ErrNoUser", err)
	}
}

// TestQueryProfile tests the level band and badge shelves.
func TestQueryProfile(t *testing.T) {
	cat := mockCatalog{catalog.Default()}
	view, err := QueryProfile(ProfileDeps{Users: mockUsers{athlete(1250, 0)}, Badges: cat})
	if err != nil {
		t.Fatalf("QueryProfile: %v", err)
	}
	if view.Level != 5 || view.XPIntoLevel != 50 || view.XPForNextLevel != 1500 {
		t.Errorf("level=%d into=%d next=%d, want 5/50/1500", view.Level, view.XPIntoLevel, view.XPForNextLevel)
	}
	for _, b := range view.UnlockedBadges {
		if !b.Unlocked {
			t.Errorf("locked badge %s on unlocked shelf", b.ID)
		}
	}
	for _, b := range view.InProgressBadges {
		if b.Unlocked || b.Progress <= 0 {
			t.Errorf("badge %s is not in progress", b.ID)
		}
	}
	if len(view.InProgressBadges) == 0 {
		t.Error("expected seeded in-progress badges")
	}
}

// TestQueryChallenges tests the type filter.
func TestQueryChallenges(t *testing.T) {
	cat := mockCatalog{catalog.Default()}
	tests := []struct {
		filter  string
		want    int
		wantErr error
	}{
		{"", 7, nil},
		{FilterAll, 7, nil},
		{challenge.TypeDaily, 2, nil},
		{challenge.TypeWeekly, 3, nil},
		{challenge.TypeTeam, 1, nil},
		{challenge.TypeSeasonal, 1, nil},
		{"yearly", 0, ErrInvalidFilter},
	}
	for _, tt := range tests {
		got, err := QueryChallenges(tt.filter, cat)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("filter %q: got err %v, want %v", tt.filter, err, tt.wantErr)
			continue
		}
		if len(got) != tt.want {
			t.Errorf("filter %q: got %d, want %d", tt.filter, len(got), tt.want)
		}
	}
}

// TestQueryTrainingVideos tests the category filter.
func TestQueryTrainingVideos(t *testing.T) {
	cat := mockCatalog{catalog.Default()}
	got, err := QueryTrainingVideos(catalog.VideoStrength, cat)
	if err != nil {
		t.Fatalf("QueryTrainingVideos: %v", err)
	}
	if len(got) != 1 || got[0].ID != "strength-basics" {
		t.Errorf("got %+v", got)
	}
	all, _ := QueryTrainingVideos(FilterAll, cat)
	if len(all) != 4 {
		t.Errorf("all = %d, want 4", len(all))
	}
	if _, err := QueryTrainingVideos("yoga", cat); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("got %v, want ErrInvalidFilter", err)
	}
}
