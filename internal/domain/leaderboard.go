package domain

// LeaderboardEntry is a denormalized read-only projection; it is never
// written back to storage.
type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	UserID   uint    `json:"userId"`
	Username string  `json:"username"`
	Mascot   string  `json:"mascot,omitempty"`
	Entries  int     `json:"entries"`
	Wins     int     `json:"wins"`
	WinRate  float64 `json:"winRate"`
	Streak   int     `json:"streak"`
}
