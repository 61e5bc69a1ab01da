package sqlite

import (
	"context"
	"database/sql"
	"net/netip"
	"reflect"
	"testing"
	"time"

	"bpauto/internal/domain"
)

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

// assertNoError fails the test if err is not nil
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// assertEqual fails the test if expected != actual
func assertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

func testPlan(network string) *domain.Plan {
	return &domain.Plan{
		Network: network,
		Objects: []domain.Object{
			{ID: 0, Name: "eth1", Class: domain.ClassInterface, Container: domain.NoObject, Number: 1, MAC: "02:1A:c5:01:00:00"},
			{ID: 1, Name: "rtr1", Class: domain.ClassIPRouter, Container: 0, ContainerName: "eth1",
				IP: netip.MustParseAddr("10.0.0.1"), Gateway: netip.MustParseAddr("10.0.0.254"), Netmask: 24},
			{ID: 2, Name: "A1", Class: domain.ClassIPStaticHosts, Container: 1, ContainerName: "rtr1",
				IP: netip.MustParseAddr("10.0.0.10"), Netmask: 24, IPCount: 10, Tag: "A"},
			{ID: 3, Name: "B1", Class: domain.ClassIPStaticHosts, Container: 1, ContainerName: "rtr1",
				IP: netip.MustParseAddr("10.0.0.100"), Netmask: 24, IPCount: 10, Tag: "B"},
		},
		Paths:    []domain.Path{domain.NewPath("A1", "B1")},
		Commands: []string{`set n [$bps createNetwork -name "NN"]`, "$n begin", "$n commit"},
	}
}

func TestNullHelpers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want sql.NullString
	}{
		{"empty", "", sql.NullString{}},
		{"value", "eth1", sql.NullString{String: "eth1", Valid: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stringToNull(tt.in)
			assertEqual(t, tt.want, got)
			assertEqual(t, tt.in, nullToString(got))
		})
	}
}

func TestSaveAndGetPlan(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	plan := testPlan("NN")
	assertNoError(t, repo.SavePlan(ctx, plan))
	if plan.ID == "" {
		t.Fatal("SavePlan did not assign an ID")
	}
	if plan.CreatedAt.IsZero() {
		t.Fatal("SavePlan did not set CreatedAt")
	}

	got, err := repo.GetPlan(ctx, plan.ID)
	assertNoError(t, err)
	if got == nil {
		t.Fatal("plan not found")
	}

	assertEqual(t, plan.Network, got.Network)
	assertEqual(t, plan.Objects, got.Objects)
	assertEqual(t, plan.Paths, got.Paths)
	assertEqual(t, plan.Commands, got.Commands)
	if !got.CreatedAt.Equal(plan.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, plan.CreatedAt)
	}
	if got.Objects[2].HasGateway() {
		t.Error("absent gateway came back set")
	}
}

func TestSavePlanKeepsID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	plan := testPlan("NN")
	plan.ID = "fixed-id"
	assertNoError(t, repo.SavePlan(ctx, plan))
	assertEqual(t, "fixed-id", plan.ID)

	if err := repo.SavePlan(ctx, plan); err == nil {
		t.Error("saving the same ID twice should fail")
	}
}

func TestGetPlanNotFound(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetPlan(context.Background(), "missing")
	assertNoError(t, err)
	if got != nil {
		t.Errorf("expected nil plan, got %+v", got)
	}
}

func TestListPlans(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		plan := testPlan(name)
		plan.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		assertNoError(t, repo.SavePlan(ctx, plan))
	}

	all, err := repo.ListPlans(ctx, 0)
	assertNoError(t, err)
	if len(all) != 3 {
		t.Fatalf("got %d plans, want 3", len(all))
	}
	assertEqual(t, "third", all[0].Network)
	assertEqual(t, 4, all[0].Objects)
	assertEqual(t, 1, all[0].Paths)

	limited, err := repo.ListPlans(ctx, 2)
	assertNoError(t, err)
	if len(limited) != 2 {
		t.Fatalf("got %d plans, want 2", len(limited))
	}
	assertEqual(t, "second", limited[1].Network)
}

func TestDeletePlan(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	plan := testPlan("NN")
	assertNoError(t, repo.SavePlan(ctx, plan))
	assertNoError(t, repo.DeletePlan(ctx, plan.ID))

	got, err := repo.GetPlan(ctx, plan.ID)
	assertNoError(t, err)
	if got != nil {
		t.Fatal("plan still present after delete")
	}

	var n int
	err = repo.db.QueryRow("SELECT COUNT(*) FROM plan_objects WHERE plan_id = ?", plan.ID).Scan(&n)
	assertNoError(t, err)
	assertEqual(t, 0, n)
}

func TestSavePlanWithoutScript(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	plan := testPlan("NN")
	plan.Commands = nil
	assertNoError(t, repo.SavePlan(ctx, plan))

	got, err := repo.GetPlan(ctx, plan.ID)
	assertNoError(t, err)
	if got.Commands != nil {
		t.Errorf("Commands = %q, want nil", got.Commands)
	}
}
