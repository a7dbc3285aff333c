package members

import "time"

// Member is the identity unit that owns posts, comments and votes.
// Members are provisioned by the authentication side; the board only reads them.
type Member struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Email     string    `json:"email" db:"email"`
	Nickname  string    `json:"nickname" db:"nickname"`
	ID        int64     `json:"id" db:"id"`
}

// CreateMemberRequest is the input for provisioning a member record
type CreateMemberRequest struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}
