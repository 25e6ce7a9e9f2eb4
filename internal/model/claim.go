package model

import "time"

// Claim represents an ownership claim filed against a found item.
// The claimant gets a reference code to check the claim's status.
type Claim struct {
	ID          int64      `json:"id"`
	ItemID      int64      `json:"item_id"`
	Reference   string     `json:"reference"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`

	// Joined fields (not always populated).
	ItemTitle string `json:"item_title,omitempty"`
}

// Claim statuses.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)
