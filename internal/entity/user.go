package entity

// DefaultElo is the rating every new account starts with.
const DefaultElo = 1000

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Elo      int    `json:"elo"`
}

// PlayerRating is one leaderboard row.
type PlayerRating struct {
	Username string `json:"username"`
	Elo      int    `json:"elo"`
}
