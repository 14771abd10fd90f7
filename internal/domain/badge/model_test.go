package badge_test

import (
	"testing"

	"talenttrack/internal/domain/badge"
)

func newBadge(progress, max float64) badge.Badge {
	return badge.Badge{ID: "b", Name: "B", Category: badge.CategoryStrength, Progress: progress, MaxProgress: max}
}

// TestBadge_SetProgress tests clamping and the unlock transition.
func TestBadge_SetProgress(t *testing.T) {
	tests := []struct {
		name         string
		v            float64
		wantProgress float64
		wantUnlocked bool
	}{
		{"partial", 3, 3, false},
		{"fractional", 3.2, 3.2, false},
		{"exact max", 5, 5, true},
		{"over max", 9, 5, true},
		{"negative", -1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBadge(0, 5)
			b.SetProgress(tt.v)
			if b.Progress != tt.wantProgress || b.Unlocked != tt.wantUnlocked {
				t.Errorf("got progress=%v unlocked=%v, want %v/%v", b.Progress, b.Unlocked, tt.wantProgress, tt.wantUnlocked)
			}
		})
	}
}

// TestBadge_Unlock tests explicit unlock.
func TestBadge_Unlock(t *testing.T) {
	b := newBadge(1, 5)
	b.Unlock()
	if !b.Unlocked || b.Progress != 5 {
		t.Errorf("got progress=%v unlocked=%v", b.Progress, b.Unlocked)
	}
	if b.IsInProgress() {
		t.Error("unlocked badge is not in progress")
	}
}

// TestBadge_Validate tests validation of Badge.
func TestBadge_Validate(t *testing.T) {
	tests := []struct {
		name    string
		badge   badge.Badge
		wantErr error
	}{
		{"valid", newBadge(1, 5), nil},
		{"missing id", badge.Badge{Name: "B", Category: badge.CategorySpeed, MaxProgress: 1}, badge.ErrEmptyID},
		{"bad category", badge.Badge{ID: "b", Name: "B", Category: "luck", MaxProgress: 1}, badge.ErrInvalidCategory},
		{"zero max", newBadge(0, 0), badge.ErrZeroMaxProgress},
		{"overflow", newBadge(6, 5), badge.ErrProgressOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.badge.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
