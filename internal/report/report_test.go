package report

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"complainthub.org/internal/activity"
	"complainthub.org/internal/auth"
	"complainthub.org/internal/complaint"
)

func seedComplaints(t *testing.T, store complaint.Store, owner string, n int, dept string) {
	t.Helper()
	for i := 0; i < n; i++ {
		err := store.Create(context.Background(), &complaint.Complaint{
			Title:       fmt.Sprintf("c-%s-%d", owner, i),
			Description: "d",
			Department:  dept,
			Priority:    complaint.PriorityMedium,
			Status:      complaint.StatusPending,
			OwnerID:     owner,
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
}

func TestGenerateAggregates(t *testing.T) {
	ctx := context.Background()
	complaints := complaint.NewMemory()
	users := auth.NewMemoryStore()
	log := activity.Open(filepath.Join(t.TempDir(), "log.txt"))
	svc := NewService(complaints, users, log)

	alice := &auth.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: auth.RoleUser}
	if err := users.Create(ctx, alice); err != nil {
		t.Fatalf("create user: %v", err)
	}
	seedComplaints(t, complaints, alice.ID, 3, "IT")
	seedComplaints(t, complaints, "ghost-user", 1, "HR")
	for i := 0; i < 12; i++ {
		if err := log.Append(activity.EventLogin, fmt.Sprintf("User u%d logged in", i)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	snap, err := svc.Generate(ctx)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if snap.TotalComplaints != 4 {
		t.Fatalf("expected 4 complaints, got %d", snap.TotalComplaints)
	}

	sum := 0
	for _, b := range snap.StatusCounts {
		sum += b.Count
	}
	if sum != snap.TotalComplaints {
		t.Fatalf("status bucket sum %d != total %d", sum, snap.TotalComplaints)
	}

	foundIT := false
	for _, b := range snap.DepartmentCounts {
		if b.Key == "IT" && b.Count == 3 {
			foundIT = true
		}
	}
	if !foundIT {
		t.Fatalf("expected IT department bucket, got %+v", snap.DepartmentCounts)
	}

	if len(snap.MostActiveUsers) != 2 {
		t.Fatalf("expected 2 active users, got %d", len(snap.MostActiveUsers))
	}
	if snap.MostActiveUsers[0].User.Username != "alice" || snap.MostActiveUsers[0].Count != 3 {
		t.Fatalf("expected alice on top, got %+v", snap.MostActiveUsers[0])
	}
	// Unresolvable owner falls back to the raw id.
	if snap.MostActiveUsers[1].User.ID != "ghost-user" || snap.MostActiveUsers[1].User.Username != "" {
		t.Fatalf("expected raw id fallback, got %+v", snap.MostActiveUsers[1])
	}

	if len(snap.RecentLogs) != 10 {
		t.Fatalf("expected 10 recent log lines, got %d", len(snap.RecentLogs))
	}
	if !strings.Contains(snap.RecentLogs[9], "User u11 logged in") {
		t.Fatalf("expected newest line last, got %q", snap.RecentLogs[9])
	}
}

func TestGenerateEmptyStore(t *testing.T) {
	svc := NewService(complaint.NewMemory(), auth.NewMemoryStore(), activity.Open(filepath.Join(t.TempDir(), "none.txt")))

	snap, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if snap.TotalComplaints != 0 {
		t.Fatalf("expected zero total, got %d", snap.TotalComplaints)
	}
	if snap.StatusCounts == nil || snap.RecentLogs == nil {
		t.Fatal("expected empty slices, not nil")
	}
	if len(snap.RecentLogs) != 0 {
		t.Fatalf("expected no recent logs, got %v", snap.RecentLogs)
	}
}

func TestTopFiveTieBreakIsOwnerIDAscending(t *testing.T) {
	ctx := context.Background()
	complaints := complaint.NewMemory()
	svc := NewService(complaints, auth.NewMemoryStore(), activity.Open(filepath.Join(t.TempDir(), "log.txt")))

	for _, owner := range []string{"owner-b", "owner-a", "owner-c"} {
		seedComplaints(t, complaints, owner, 2, "IT")
	}
	for i := 0; i < 4; i++ {
		seedComplaints(t, complaints, fmt.Sprintf("busy-%d", i), 3, "IT")
	}

	snap, err := svc.Generate(ctx)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(snap.MostActiveUsers) != 5 {
		t.Fatalf("expected top 5, got %d", len(snap.MostActiveUsers))
	}
	// Four owners with 3 complaints, then the tied 2-complaint owners in id order.
	if snap.MostActiveUsers[4].User.ID != "owner-a" {
		t.Fatalf("expected owner-a as fifth, got %+v", snap.MostActiveUsers[4])
	}
}
