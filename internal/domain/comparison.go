package domain

import "time"

// Comparison is the audit record of one pairwise duel. WinnerID nil means the
// judge skipped; deltas are then exactly zero.
type Comparison struct {
	ID         int64
	WebsiteAID int64
	WebsiteBID int64
	WinnerID   *int64
	DeltaA     float64
	DeltaB     float64
	CreatedAt  time.Time
}

// LeaderboardEntry is a website plus its dense 1-based position by ELO desc.
type LeaderboardEntry struct {
	Website
	Rank int
}
