package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mkowalik/peervote/internal/models"
)

// newTestRepo creates a new in-memory repository for testing.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testEmployee(id string) models.Employee {
	return models.Employee{
		ID:         id,
		Name:       "Ann",
		Email:      id + "@example.com",
		Department: "Platform",
		Position:   "Engineer",
		Location:   "Berlin",
		Active:     true,
	}
}

func testPeriod(id string, year, month int) models.VotingPeriod {
	return models.VotingPeriod{
		ID:        id,
		Year:      year,
		Month:     month,
		StartDate: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		Status:    models.PeriodActive,
	}
}

func testWinner(id, periodID string) models.WinnerHistory {
	return models.WinnerHistory{
		ID:           id,
		PeriodID:     periodID,
		Year:         2026,
		Month:        3,
		EmployeeID:   "emp-1",
		EmployeeName: "Ann",
		Count:        3,
		Percentage:   60,
		Rank:         1,
		WinnerType:   models.WinnerByGroup,
		CreatedAt:    time.Now(),
	}
}

// ==================== Employee Tests ====================

func TestUpsertEmployee_CreateThenUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.UpsertEmployee(ctx, testEmployee("emp-1"))
	if err != nil {
		t.Fatalf("UpsertEmployee failed: %v", err)
	}
	if !created {
		t.Error("expected the first upsert to report created")
	}

	emp := testEmployee("emp-1")
	emp.Name = "Ann Updated"
	emp.Active = false
	created, err = repo.UpsertEmployee(ctx, emp)
	if err != nil {
		t.Fatalf("second UpsertEmployee failed: %v", err)
	}
	if created {
		t.Error("expected the second upsert to report updated")
	}

	got, err := repo.GetEmployee(ctx, "emp-1")
	if err != nil {
		t.Fatalf("GetEmployee failed: %v", err)
	}
	if got.Name != "Ann Updated" || got.Active {
		t.Errorf("expected updated row, got %+v", got)
	}
}

func TestGetEmployee_NonExistent(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.GetEmployee(context.Background(), "missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetEmployeeByEmail_CaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.UpsertEmployee(ctx, testEmployee("emp-1")); err != nil {
		t.Fatalf("UpsertEmployee failed: %v", err)
	}
	got, err := repo.GetEmployeeByEmail(ctx, "EMP-1@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("GetEmployeeByEmail failed: %v", err)
	}
	if got.ID != "emp-1" {
		t.Errorf("expected emp-1, got %s", got.ID)
	}
}

func TestCountActiveEmployees(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.UpsertEmployee(ctx, testEmployee("emp-1")); err != nil {
		t.Fatalf("UpsertEmployee failed: %v", err)
	}
	inactive := testEmployee("emp-2")
	inactive.Active = false
	if _, err := repo.UpsertEmployee(ctx, inactive); err != nil {
		t.Fatalf("UpsertEmployee failed: %v", err)
	}

	count, err := repo.CountActiveEmployees(ctx)
	if err != nil {
		t.Fatalf("CountActiveEmployees failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 active employee, got %d", count)
	}
}

// ==================== Voting Period Tests ====================

func TestGetActivePeriod_PrefersLatest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.CreatePeriod(ctx, testPeriod("p1", 2026, 2)); err != nil {
		t.Fatalf("CreatePeriod failed: %v", err)
	}
	if err := repo.CreatePeriod(ctx, testPeriod("p2", 2026, 3)); err != nil {
		t.Fatalf("CreatePeriod failed: %v", err)
	}

	active, err := repo.GetActivePeriod(ctx)
	if err != nil {
		t.Fatalf("GetActivePeriod failed: %v", err)
	}
	if active.ID != "p2" {
		t.Errorf("expected the latest active period, got %s", active.ID)
	}
}

func TestGetPeriodByYearMonth_NonExistent(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.GetPeriodByYearMonth(context.Background(), 2026, 3); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePeriod_NonExistent(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.UpdatePeriod(context.Background(), testPeriod("missing", 2026, 3)); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ==================== Nomination Tests ====================

func testNomination(id, periodID, nominatorID string) models.Nomination {
	return models.Nomination{
		ID:          id,
		PeriodID:    periodID,
		EmployeeID:  "emp-1",
		NominatorID: nominatorID,
		Reason:      "Always jumps on incidents first",
		Criteria:    models.Criteria{Teamwork: 4, Communication: 4, Innovation: 3, Reliability: 5, Leadership: 3, Helpfulness: 5},
		CreatedAt:   time.Now(),
	}
}

func TestNominationRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.CreatePeriod(ctx, testPeriod("p1", 2026, 3)); err != nil {
		t.Fatalf("CreatePeriod failed: %v", err)
	}
	if err := repo.CreateNomination(ctx, testNomination("n1", "p1", "v1")); err != nil {
		t.Fatalf("CreateNomination failed: %v", err)
	}

	got, err := repo.GetNomination(ctx, "n1")
	if err != nil {
		t.Fatalf("GetNomination failed: %v", err)
	}
	if got.Criteria.Reliability != 5 || got.Reason == "" {
		t.Errorf("expected criteria and reason persisted, got %+v", got)
	}
	if got.UpdatedAt != nil {
		t.Error("expected no update timestamp on a fresh row")
	}

	byNominator, err := repo.GetNominationByNominator(ctx, "p1", "v1")
	if err != nil {
		t.Fatalf("GetNominationByNominator failed: %v", err)
	}
	if byNominator.ID != "n1" {
		t.Errorf("expected n1, got %s", byNominator.ID)
	}
}

func TestDeleteNominationsForPeriod_ReportsCount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.CreatePeriod(ctx, testPeriod("p1", 2026, 3)); err != nil {
		t.Fatalf("CreatePeriod failed: %v", err)
	}
	if err := repo.CreateNomination(ctx, testNomination("n1", "p1", "v1")); err != nil {
		t.Fatalf("CreateNomination failed: %v", err)
	}
	if err := repo.CreateNomination(ctx, testNomination("n2", "p1", "v2")); err != nil {
		t.Fatalf("CreateNomination failed: %v", err)
	}

	deleted, err := repo.DeleteNominationsForPeriod(ctx, "p1")
	if err != nil {
		t.Fatalf("DeleteNominationsForPeriod failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", deleted)
	}

	deleted, err = repo.DeleteNominationsForPeriod(ctx, "p1")
	if err != nil {
		t.Fatalf("second DeleteNominationsForPeriod failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 on an empty period, got %d", deleted)
	}
}

// ==================== Winner History Tests ====================

func TestSaveWinner_ReplacesSameID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	w := testWinner("w1", "p1")
	if err := repo.SaveWinner(ctx, w); err != nil {
		t.Fatalf("SaveWinner failed: %v", err)
	}
	w.Count = 7
	if err := repo.SaveWinner(ctx, w); err != nil {
		t.Fatalf("second SaveWinner failed: %v", err)
	}

	rows, err := repo.ListWinnersForPeriod(ctx, "p1")
	if err != nil {
		t.Fatalf("ListWinnersForPeriod failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected a single row after replace, got %d", len(rows))
	}
	if rows[0].Count != 7 {
		t.Errorf("expected the replaced count, got %d", rows[0].Count)
	}
}

func TestSaveWinner_GroupLabelRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	grouped := testWinner("w1", "p1")
	grouped.VotingGroup = models.NamedGroup("berlin")
	if err := repo.SaveWinner(ctx, grouped); err != nil {
		t.Fatalf("SaveWinner failed: %v", err)
	}
	ungrouped := testWinner("w2", "p1")
	ungrouped.Rank = 2
	if err := repo.SaveWinner(ctx, ungrouped); err != nil {
		t.Fatalf("SaveWinner failed: %v", err)
	}

	got, err := repo.GetWinner(ctx, "w1")
	if err != nil {
		t.Fatalf("GetWinner failed: %v", err)
	}
	if got.VotingGroup.String() != "berlin" {
		t.Errorf("expected group berlin, got %q", got.VotingGroup.String())
	}
	got, err = repo.GetWinner(ctx, "w2")
	if err != nil {
		t.Fatalf("GetWinner failed: %v", err)
	}
	if !got.VotingGroup.IsDefault() {
		t.Errorf("expected the default group, got %q", got.VotingGroup.String())
	}
}

func TestYearlyWinnerFlag(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveWinner(ctx, testWinner("w1", "p1")); err != nil {
		t.Fatalf("SaveWinner failed: %v", err)
	}
	if err := repo.SetYearlyWinner(ctx, "w1", true); err != nil {
		t.Fatalf("SetYearlyWinner failed: %v", err)
	}

	got, err := repo.GetYearlyWinner(ctx, 2026)
	if err != nil {
		t.Fatalf("GetYearlyWinner failed: %v", err)
	}
	if got.ID != "w1" {
		t.Errorf("expected w1, got %s", got.ID)
	}

	if err := repo.ClearYearlyWinnerForYear(ctx, 2026); err != nil {
		t.Fatalf("ClearYearlyWinnerForYear failed: %v", err)
	}
	if _, err := repo.GetYearlyWinner(ctx, 2026); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after clear, got %v", err)
	}
}

func TestSetYearlyWinner_NonExistent(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.SetYearlyWinner(context.Background(), "missing", true); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ==================== Reaction Tests ====================

func TestAddReaction_UniqueTriple(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveWinner(ctx, testWinner("w1", "p1")); err != nil {
		t.Fatalf("SaveWinner failed: %v", err)
	}
	r := models.Reaction{UserID: "u1", UserName: "Ben", Emoji: "🎉", CreatedAt: time.Now()}
	if err := repo.AddReaction(ctx, "w1", r); err != nil {
		t.Fatalf("AddReaction failed: %v", err)
	}
	// Same triple again is ignored, not an error.
	if err := repo.AddReaction(ctx, "w1", r); err != nil {
		t.Fatalf("duplicate AddReaction failed: %v", err)
	}

	reactions, err := repo.ListReactions(ctx, "w1")
	if err != nil {
		t.Fatalf("ListReactions failed: %v", err)
	}
	if len(reactions) != 1 {
		t.Errorf("expected 1 reaction, got %d", len(reactions))
	}
}

func TestRemoveReaction_Absent(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.RemoveReaction(context.Background(), "w1", "u1", "🎉"); err != nil {
		t.Errorf("expected removing an absent reaction to be a no-op, got %v", err)
	}
}

// ==================== Config Tests ====================

func TestEligibilityConfigRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetEligibilityConfig(ctx); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound before any save, got %v", err)
	}

	cfg := models.EligibilityConfig{ExcludedDepartments: []string{"Management"}}
	if err := repo.SetEligibilityConfig(ctx, cfg); err != nil {
		t.Fatalf("SetEligibilityConfig failed: %v", err)
	}
	got, err := repo.GetEligibilityConfig(ctx)
	if err != nil {
		t.Fatalf("GetEligibilityConfig failed: %v", err)
	}
	if len(got.ExcludedDepartments) != 1 || got.ExcludedDepartments[0] != "Management" {
		t.Errorf("expected the saved config back, got %+v", got)
	}

	// A second save replaces the singleton.
	cfg.ExcludedDepartments = nil
	cfg.ExcludedPositions = []string{"Director"}
	if err := repo.SetEligibilityConfig(ctx, cfg); err != nil {
		t.Fatalf("second SetEligibilityConfig failed: %v", err)
	}
	got, err = repo.GetEligibilityConfig(ctx)
	if err != nil {
		t.Fatalf("GetEligibilityConfig failed: %v", err)
	}
	if len(got.ExcludedDepartments) != 0 || len(got.ExcludedPositions) != 1 {
		t.Errorf("expected the replaced config, got %+v", got)
	}
}

func TestVotingGroupConfigRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cfg := models.VotingGroupConfig{
		Strategy:       models.StrategyLocation,
		LocationMap:    map[string]string{"berlin": "EU-Central"},
		WinnersDivisor: 25,
		MinWinners:     1,
	}
	if err := repo.SetVotingGroupConfig(ctx, cfg); err != nil {
		t.Fatalf("SetVotingGroupConfig failed: %v", err)
	}
	got, err := repo.GetVotingGroupConfig(ctx)
	if err != nil {
		t.Fatalf("GetVotingGroupConfig failed: %v", err)
	}
	if got.Strategy != models.StrategyLocation || got.LocationMap["berlin"] != "EU-Central" {
		t.Errorf("expected the saved config back, got %+v", got)
	}
}
