package complaint

import "time"

// Priorities a complaint can carry.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Statuses a complaint moves through. The wire values match what existing
// clients expect, including the space in "In Progress".
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusRejected   = "Rejected"
)

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Complaint as persisted. Owner and creation time are set once at creation
// and never change afterwards.
type Complaint struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Department  string    `json:"department"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	OwnerID     string    `json:"user"`
	CreatedAt   time.Time `json:"date"`
}

// OwnerRef is the expanded owner returned by listings.
type OwnerRef struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// WithOwner is a complaint with its owner expanded for listings. When the
// owner record cannot be resolved only the raw id is populated.
type WithOwner struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Department  string    `json:"department"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	Owner       OwnerRef  `json:"user"`
	CreatedAt   time.Time `json:"date"`
}

// Bucket is one aggregation bucket in the admin report. The key serializes as
// "_id" for compatibility with the dashboard the original frontend shipped.
type Bucket struct {
	Key   string `json:"_id"`
	Count int    `json:"count"`
}

// OwnerCount is a complaint count per owning user.
type OwnerCount struct {
	OwnerID string
	Count   int
}
