package domain

import "time"

type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"isAdmin"`
	IsPremium bool      `json:"isPremium"`
	Mascot    string    `json:"mascot,omitempty"`
	// WalletBalance is held in minor currency units.
	WalletBalance int64     `json:"walletBalance"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// UserStats is the per-user slice of the leaderboard projection.
type UserStats struct {
	UserID  uint    `json:"userId"`
	Entries int     `json:"entries"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"winRate"`
	Streak  int     `json:"streak"`
}
