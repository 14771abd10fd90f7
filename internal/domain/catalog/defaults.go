package catalog

import (
	"time"

	"talenttrack/internal/domain/badge"
	"talenttrack/internal/domain/challenge"
)

// Default returns the catalog every new client starts with.
//
// IDs are stable: clients keep challenge and badge IDs in links and stored state.
func Default() Catalog {
	return Catalog{
		Badges:         DefaultBadges(),
		Challenges:     DefaultChallenges(),
		Leaderboard:    DefaultLeaderboard(),
		TrainingVideos: DefaultTrainingVideos(),
	}
}

func deadline(day int) time.Time {
	return time.Date(2025, time.January, day, 23, 59, 59, 0, time.UTC)
}

// DefaultBadges returns the 30 seeded badges.
func DefaultBadges() []badge.Badge {
	return []badge.Badge{
		// Consistency
		{ID: "day-one-champ", Name: "Day One Champ", Description: "Complete your first challenge", Category: badge.CategoryConsistency, Icon: "🏆", Unlocked: true, Progress: 1, MaxProgress: 1, XPReward: 50, CoinReward: 10, Requirements: "Complete any challenge"},
		{ID: "weekly-warrior", Name: "Weekly Warrior", Description: "Log in for 7 consecutive days", Category: badge.CategoryConsistency, Icon: "🔥", Progress: 5, MaxProgress: 7, XPReward: 200, CoinReward: 50, Requirements: "Login for 7 consecutive days"},
		{ID: "streak-master", Name: "Streak Master", Description: "Maintain a 30-day activity streak", Category: badge.CategoryConsistency, Icon: "⚡", Progress: 12, MaxProgress: 30, XPReward: 500, CoinReward: 150, Requirements: "Maintain 30-day streak"},
		{ID: "night-owl", Name: "Night Owl", Description: "Train after 10 PM for 5 days", Category: badge.CategoryConsistency, Icon: "🦉", Progress: 2, MaxProgress: 5, XPReward: 150, CoinReward: 30, Requirements: "Train after 10 PM for 5 days"},
		{ID: "early-bird", Name: "Early Bird", Description: "Train before 6 AM for 5 days", Category: badge.CategoryConsistency, Icon: "🐦", Progress: 0, MaxProgress: 5, XPReward: 150, CoinReward: 30, Requirements: "Train before 6 AM for 5 days"},

		// Strength
		{ID: "pushup-pro", Name: "Push-up Pro", Description: "Complete 50 push-ups in a single session", Category: badge.CategoryStrength, Icon: "💪", Progress: 28, MaxProgress: 50, XPReward: 200, CoinReward: 40, Requirements: "50 push-ups in one session", LinkedChallenge: "daily-pushups"},
		{ID: "core-crusher", Name: "Core Crusher", Description: "Complete 100 sit-ups", Category: badge.CategoryStrength, Icon: "🔥", Progress: 0, MaxProgress: 100, XPReward: 250, CoinReward: 50, Requirements: "100 sit-ups in one session"},
		{ID: "iron-arms", Name: "Iron Arms", Description: "Do 200 push-ups total across sessions", Category: badge.CategoryStrength, Icon: "🦾", Progress: 85, MaxProgress: 200, XPReward: 300, CoinReward: 60, Requirements: "200 total push-ups"},
		{ID: "abs-of-steel", Name: "Abs of Steel", Description: "300 sit-ups total", Category: badge.CategoryStrength, Icon: "⚙️", Progress: 120, MaxProgress: 300, XPReward: 400, CoinReward: 80, Requirements: "300 total sit-ups"},
		{ID: "muscle-machine", Name: "Muscle Machine", Description: "Reach a combined 1000 push-ups + sit-ups", Category: badge.CategoryStrength, Icon: "🤖", Progress: 205, MaxProgress: 1000, XPReward: 750, CoinReward: 200, Requirements: "1000 combined push-ups and sit-ups"},

		// Endurance
		{ID: "shuttle-starter", Name: "Shuttle Starter", Description: "Complete 10 shuttle runs", Category: badge.CategoryEndurance, Icon: "🏃", Progress: 3, MaxProgress: 10, XPReward: 150, CoinReward: 30, Requirements: "Complete 10 shuttle runs"},
		{ID: "distance-destroyer", Name: "Distance Destroyer", Description: "Run 2 km nonstop", Category: badge.CategoryEndurance, Icon: "🎯", Progress: 0, MaxProgress: 1, XPReward: 300, CoinReward: 75, Requirements: "Run 2km without stopping", LinkedChallenge: "weekly-run"},
		{ID: "marathon-mindset", Name: "Marathon Mindset", Description: "Run 5 km total across challenges", Category: badge.CategoryEndurance, Icon: "🧠", Progress: 3.2, MaxProgress: 5, XPReward: 400, CoinReward: 100, Requirements: "5km total distance"},
		{ID: "never-stopper", Name: "Never Stopper", Description: "Run 10 km total across sessions", Category: badge.CategoryEndurance, Icon: "🚀", Progress: 3.2, MaxProgress: 10, XPReward: 600, CoinReward: 150, Requirements: "10km total distance"},
		{ID: "endurance-elite", Name: "Endurance Elite", Description: "Run 20 km total across sessions", Category: badge.CategoryEndurance, Icon: "👑", Progress: 3.2, MaxProgress: 20, XPReward: 1000, CoinReward: 300, Requirements: "20km total distance"},

		// Speed
		{ID: "sprint-rookie", Name: "Sprint Rookie", Description: "Complete your first sprint challenge", Category: badge.CategorySpeed, Icon: "🏃‍♂️", Progress: 0, MaxProgress: 1, XPReward: 100, CoinReward: 20, Requirements: "Complete first sprint challenge"},
		{ID: "speed-demon", Name: "Speed Demon", Description: "Finish a shuttle run under benchmark time", Category: badge.CategorySpeed, Icon: "👹", Progress: 0, MaxProgress: 1, XPReward: 250, CoinReward: 60, Requirements: "Shuttle run under 12 seconds"},
		{ID: "quick-feet", Name: "Quick Feet", Description: "Improve shuttle run time by 20%", Category: badge.CategorySpeed, Icon: "🦶", Progress: 0, MaxProgress: 1, XPReward: 300, CoinReward: 75, Requirements: "Improve shuttle time by 20%"},
		{ID: "flash-runner", Name: "Flash Runner", Description: "Sprint 100m in benchmark time", Category: badge.CategorySpeed, Icon: "⚡", Progress: 0, MaxProgress: 1, XPReward: 350, CoinReward: 90, Requirements: "Sprint 100m under 15 seconds"},
		{ID: "lightning-bolt", Name: "Lightning Bolt", Description: "Win 5 speed-based challenges", Category: badge.CategorySpeed, Icon: "🌩️", Progress: 1, MaxProgress: 5, XPReward: 500, CoinReward: 125, Requirements: "Win 5 speed challenges"},

		// Special
		{ID: "video-verified", Name: "Video Verified", Description: "Successfully upload your first verified video", Category: badge.CategorySpecial, Icon: "📹", Unlocked: true, Progress: 1, MaxProgress: 1, XPReward: 75, CoinReward: 15, Requirements: "Upload first verified video"},
		{ID: "cheat-buster", Name: "Cheat Buster", Description: "Pass AI cheat detection 10 times in a row", Category: badge.CategorySpecial, Icon: "🛡️", Progress: 3, MaxProgress: 10, XPReward: 300, CoinReward: 80, Requirements: "Pass cheat detection 10 times"},
		{ID: "perfect-form", Name: "Perfect Form", Description: "Receive a coach's \"excellent form\" rating", Category: badge.CategorySpecial, Icon: "✨", Progress: 0, MaxProgress: 1, XPReward: 200, CoinReward: 50, Requirements: "Get excellent form rating from coach"},
		{ID: "challenge-crusher", Name: "Challenge Crusher", Description: "Complete 10 different challenges", Category: badge.CategorySpecial, Icon: "🔨", Progress: 7, MaxProgress: 10, XPReward: 400, CoinReward: 100, Requirements: "Complete 10 different challenges"},
		{ID: "badge-collector", Name: "Badge Collector", Description: "Unlock 10 badges", Category: badge.CategorySpecial, Icon: "🎖️", Progress: 2, MaxProgress: 10, XPReward: 500, CoinReward: 150, Requirements: "Unlock 10 badges"},
		{ID: "ultimate-athlete", Name: "Ultimate Athlete", Description: "Unlock all 30 badges", Category: badge.CategorySpecial, Icon: "🌟", Progress: 2, MaxProgress: 30, XPReward: 2000, CoinReward: 500, Requirements: "Unlock all badges"},
		{ID: "festival-hero", Name: "Festival Hero", Description: "Participate in a special seasonal event", Category: badge.CategorySpecial, Icon: "🎉", Progress: 0, MaxProgress: 1, XPReward: 300, CoinReward: 100, Requirements: "Join seasonal event"},
		{ID: "community-player", Name: "Community Player", Description: "Share a training tip in community section", Category: badge.CategorySpecial, Icon: "🤝", Progress: 0, MaxProgress: 1, XPReward: 150, CoinReward: 40, Requirements: "Share training tip"},
		{ID: "most-improved", Name: "Most Improved", Description: "Earn a coach-recommended badge", Category: badge.CategorySpecial, Icon: "📈", Progress: 0, MaxProgress: 1, XPReward: 400, CoinReward: 120, Requirements: "Get coach recommendation"},
		{ID: "champion-of-champions", Name: "Champion of Champions", Description: "Top the overall challenge scoreboard for a week", Category: badge.CategorySpecial, Icon: "👑", Progress: 0, MaxProgress: 1, XPReward: 1000, CoinReward: 300, Requirements: "Top leaderboard for 1 week"},
	}
}

// DefaultChallenges returns the seeded challenge board.
func DefaultChallenges() []challenge.Challenge {
	return []challenge.Challenge{
		{ID: "daily-jump", Title: "Daily Leap", Description: "Complete a jump test today", Type: challenge.TypeDaily, ActivityType: challenge.ActivityJump, Progress: 0, MaxProgress: 1, XPReward: 50, CoinReward: 10, Deadline: deadline(13)},
		{ID: "weekly-endurance", Title: "Distance Destroyer", Description: "Complete 3 endurance tests this week", Type: challenge.TypeWeekly, ActivityType: challenge.ActivityGeneral, Progress: 1, MaxProgress: 3, XPReward: 200, CoinReward: 40, Deadline: deadline(19)},
		{ID: "daily-pushups", Title: "Power Push-ups", Description: "Complete 25 push-ups with proper form", Type: challenge.TypeDaily, ActivityType: challenge.ActivityPushup, Progress: 18, MaxProgress: 25, XPReward: 60, CoinReward: 12, Deadline: deadline(13), Difficulty: "Medium", Category: "Strength"},
		{ID: "weekly-run", Title: "Distance Destroyer", Description: "Run a total of 10km this week", Type: challenge.TypeWeekly, ActivityType: challenge.ActivityEndurance, Progress: 3.2, MaxProgress: 10, XPReward: 200, CoinReward: 50, Deadline: deadline(19), Difficulty: "Hard", Category: "Endurance"},
		{ID: "shuttle-sprint", Title: "Shuttle Sprint Challenge", Description: "Complete 5 shuttle runs under 13 seconds each", Type: challenge.TypeWeekly, ActivityType: challenge.ActivityShuttle, Progress: 2, MaxProgress: 5, XPReward: 300, CoinReward: 75, Deadline: deadline(19), Difficulty: "Hard", Category: "Speed"},
		{ID: "team-village", Title: "Village Championship", Description: "Help your village win the monthly fitness challenge", Type: challenge.TypeTeam, ActivityType: challenge.ActivityGeneral, Progress: 450, MaxProgress: 1000, XPReward: 300, CoinReward: 100, Deadline: deadline(31), Difficulty: "Epic", Category: "Community"},
		{ID: "seasonal-winter", Title: "Winter Warrior", Description: "Complete 15 different exercise types this month", Type: challenge.TypeSeasonal, ActivityType: challenge.ActivityGeneral, Progress: 8, MaxProgress: 15, XPReward: 500, CoinReward: 150, Deadline: deadline(31), Difficulty: "Legendary", Category: "Variety"},
	}
}

// DefaultLeaderboard returns the seeded leaderboard.
func DefaultLeaderboard() []LeaderboardEntry {
	return []LeaderboardEntry{
		{ID: "1", Name: "Alex Champion", Avatar: "https://images.pexels.com/photos/1239291/pexels-photo-1239291.jpeg?auto=compress&cs=tinysrgb&w=150", Score: 2450, Rank: 1, XP: 2450},
		{ID: "2", Name: "Sarah Speedster", Avatar: "https://images.pexels.com/photos/415829/pexels-photo-415829.jpeg?auto=compress&cs=tinysrgb&w=150", Score: 2280, Rank: 2, XP: 2280},
		{ID: "3", Name: "Mike Muscle", Avatar: "https://images.pexels.com/photos/614810/pexels-photo-614810.jpeg?auto=compress&cs=tinysrgb&w=150", Score: 2150, Rank: 3, XP: 2150},
	}
}

// DefaultTrainingVideos returns the seeded training library.
func DefaultTrainingVideos() []TrainingVideo {
	return []TrainingVideo{
		{ID: "strength-basics", Title: "Strength Training Fundamentals", Description: "Learn the basics of building strength **safely** and effectively", Category: VideoStrength, Thumbnail: "https://images.pexels.com/photos/1552242/pexels-photo-1552242.jpeg?auto=compress&cs=tinysrgb&w=400", Duration: "12:30", Instructor: "Coach Sarah"},
		{ID: "endurance-training", Title: "Building Cardiovascular Endurance", Description: "Techniques to improve your stamina and running performance", Category: VideoEndurance, Thumbnail: "https://images.pexels.com/photos/2294361/pexels-photo-2294361.jpeg?auto=compress&cs=tinysrgb&w=400", Duration: "15:45", Instructor: "Coach Mike"},
		{ID: "flexibility-routine", Title: "Dynamic Stretching Routine", Description: "Essential stretches for athletes to prevent injury", Category: VideoFlexibility, Thumbnail: "https://images.pexels.com/photos/4056723/pexels-photo-4056723.jpeg?auto=compress&cs=tinysrgb&w=400", Duration: "8:20", Instructor: "Coach Emma"},
		{ID: "recovery-methods", Title: "Recovery and Rest Techniques", Description: "Learn how to recover properly between training sessions", Category: VideoRecovery, Thumbnail: "https://images.pexels.com/photos/3822864/pexels-photo-3822864.jpeg?auto=compress&cs=tinysrgb&w=400", Duration: "10:15", Instructor: "Coach Alex"},
	}
}
