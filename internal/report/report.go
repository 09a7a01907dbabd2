package report

import (
	"context"

	"complainthub.org/internal/activity"
	"complainthub.org/internal/auth"
	"complainthub.org/internal/complaint"
)

const (
	topUsersLimit  = 5
	recentLogLines = 10
)

// UserRef identifies a top-ranked complainer. When the user record cannot be
// resolved only the raw id is populated.
type UserRef struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// ActiveUser pairs a user with their complaint count.
type ActiveUser struct {
	User  UserRef `json:"user"`
	Count int     `json:"count"`
}

// Snapshot is the aggregate structure behind GET /admin/reports.
type Snapshot struct {
	TotalComplaints  int                `json:"totalComplaints"`
	StatusCounts     []complaint.Bucket `json:"statusCounts"`
	DepartmentCounts []complaint.Bucket `json:"departmentCounts"`
	PriorityCounts   []complaint.Bucket `json:"priorityCounts"`
	MostActiveUsers  []ActiveUser       `json:"mostActiveUsers"`
	RecentLogs       []string           `json:"recentLogs"`
}

// Service aggregates complaint statistics for administrators.
type Service struct {
	complaints complaint.Store
	users      auth.UserStore
	activity   *activity.Log
}

// NewService constructs the report service.
func NewService(complaints complaint.Store, users auth.UserStore, log *activity.Log) *Service {
	return &Service{complaints: complaints, users: users, activity: log}
}

// Generate computes the full snapshot over the complaint store. Role
// enforcement happens at the HTTP layer before this is called.
func (s *Service) Generate(ctx context.Context) (Snapshot, error) {
	total, err := s.complaints.CountTotal(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	statusCounts, err := s.complaints.CountByStatus(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	departmentCounts, err := s.complaints.CountByDepartment(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	priorityCounts, err := s.complaints.CountByPriority(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	top, err := s.complaints.TopOwners(ctx, topUsersLimit)
	if err != nil {
		return Snapshot{}, err
	}
	ownerIDs := make([]string, 0, len(top))
	for _, oc := range top {
		ownerIDs = append(ownerIDs, oc.OwnerID)
	}
	owners, err := s.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return Snapshot{}, err
	}
	mostActive := make([]ActiveUser, 0, len(top))
	for _, oc := range top {
		ref := UserRef{ID: oc.OwnerID}
		if u, ok := owners[oc.OwnerID]; ok {
			ref = UserRef{Username: u.Username, Email: u.Email}
		}
		mostActive = append(mostActive, ActiveUser{User: ref, Count: oc.Count})
	}

	recent, err := s.activity.Tail(recentLogLines)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		TotalComplaints:  total,
		StatusCounts:     emptyIfNil(statusCounts),
		DepartmentCounts: emptyIfNil(departmentCounts),
		PriorityCounts:   emptyIfNil(priorityCounts),
		MostActiveUsers:  mostActive,
		RecentLogs:       recent,
	}, nil
}

func emptyIfNil(buckets []complaint.Bucket) []complaint.Bucket {
	if buckets == nil {
		return []complaint.Bucket{}
	}
	return buckets
}
