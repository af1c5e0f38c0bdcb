package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mkowalik/peervote/internal/errors"
	"github.com/mkowalik/peervote/internal/logger"
	"github.com/mkowalik/peervote/internal/models"
	"github.com/mkowalik/peervote/internal/notify"
	"github.com/mkowalik/peervote/internal/services"
)

// failingRecorder rejects every audit write.
type failingRecorder struct{}

func (failingRecorder) Record(ctx context.Context, actor, action, entityType, entityID string, before, after any) error {
	return fmt.Errorf("audit store unavailable")
}

// TestCreateNomination tests the submission happy path
func TestCreateNomination(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()
	period := seedPeriod(t, s.repo, 2026, 3)
	ann := seedEmployee(t, s.repo, "Ann", "ann@example.com", "Platform", "Berlin")
	ben := seedEmployee(t, s.repo, "Ben", "ben@example.com", "Support", "Berlin")

	nom, err := s.nominations.Create(ctx, period.ID, services.NominationInput{
		EmployeeID:     ann.ID,
		NominatorEmail: "  Ben@Example.com ",
		NominatorName:  "Ben",
		Reason:         "Ann unblocked three releases this month and mentored the new hires.",
		Criteria:       allFives(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if nom.EmployeeID != ann.ID {
		t.Errorf("expected nominee %s, got %s", ann.ID, nom.EmployeeID)
	}
	if nom.NominatorID != ben.ID {
		t.Errorf("expected the nominator resolved to %s, got %s", ben.ID, nom.NominatorID)
	}
	if nom.ID == "" || nom.CreatedAt.IsZero() {
		t.Error("expected a generated id and timestamp")
	}
}

// TestCreateNomination_ClosedPeriod tests the period status guard
func TestCreateNomination_ClosedPeriod(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()
	period := seedPeriod(t, s.repo, 2026, 3)
	ann := seedEmployee(t, s.repo, "Ann", "ann@example.com", "Platform", "Berlin")
	seedEmployee(t, s.repo, "Ben", "ben@example.com", "Support", "Berlin")
	if _, err := s.periods.Close(ctx, period.ID, "admin"); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	_, err := s.nominations.Create(ctx, period.ID, services.NominationInput{
		EmployeeID:     ann.ID,
		NominatorEmail: "ben@example.com",
		Reason:         "Ann unblocked three releases this month and mentored the new hires.",
		Criteria:       allFives(),
	})
	if errors.CodeOf(err) != services.CodePeriodNotActive {
		t.Fatalf("expected %s, got %v", services.CodePeriodNotActive, err)
	}

	_, err = s.nominations.Create(ctx, "no-such-period", services.NominationInput{EmployeeID: ann.ID})
	if errors.CodeOf(err) != services.CodePeriodNotFound {
		t.Fatalf("expected %s, got %v", services.CodePeriodNotFound, err)
	}
}

// TestCreateNomination_ExcludedDepartment tests the eligibility policy on
// both sides of the submission
func TestCreateNomination_ExcludedDepartment(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()
	period := seedPeriod(t, s.repo, 2026, 3)
	ann := seedEmployee(t, s.repo, "Ann", "ann@example.com", "Management", "Berlin")
	ben := seedEmployee(t, s.repo, "Ben", "ben@example.com", "Support", "Berlin")

	if err := s.eligibility.UpdateConfig(ctx, models.EligibilityConfig{
		ExcludedDepartments: []string{"management"},
	}); err != nil {
		t.Fatalf("UpdateConfig failed: %v", err)
	}

	_, err := s.nominations.Create(ctx, period.ID, services.NominationInput{
		EmployeeID:     ann.ID,
		NominatorEmail: "ben@example.com",
		Reason:         "Ann unblocked three releases this month and mentored the new hires.",
		Criteria:       allFives(),
	})
	if errors.CodeOf(err) != services.CodeNotEligible {
		t.Fatalf("expected %s for the nominee, got %v", services.CodeNotEligible, err)
	}

	// The same policy blocks an excluded nominator.
	_, err = s.nominations.Create(ctx, period.ID, services.NominationInput{
		EmployeeID:     ben.ID,
		NominatorEmail: "ann@example.com",
		Reason:         "Ben answered every escalation within the hour all month long.",
		Criteria:       allFives(),
	})
	if errors.CodeOf(err) != services.CodeNotEligible {
		t.Fatalf("expected %s for the nominator, got %v", services.CodeNotEligible, err)
	}
}

// TestCreateNomination_AuditFailureDoesNotBlock tests that a broken audit
// store never rejects a valid submission
func TestCreateNomination_AuditFailureDoesNotBlock(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()
	period := seedPeriod(t, s.repo, 2026, 3)
	ann := seedEmployee(t, s.repo, "Ann", "ann@example.com", "Platform", "Berlin")
	seedEmployee(t, s.repo, "Ben", "ben@example.com", "Support", "Berlin")

	svc := services.NewNominationService(logger.New(), s.repo, s.validation, s.eligibility,
		s.cache, failingRecorder{}, notify.Nop{})

	nom, err := svc.Create(ctx, period.ID, services.NominationInput{
		EmployeeID:     ann.ID,
		NominatorEmail: "ben@example.com",
		Reason:         "Ann unblocked three releases this month and mentored the new hires.",
		Criteria:       allFives(),
	})
	if err != nil {
		t.Fatalf("Create failed despite audit being best-effort: %v", err)
	}
	if _, err := s.nominations.Get(ctx, nom.ID); err != nil {
		t.Errorf("expected the nomination to be stored: %v", err)
	}
}

// TestUpdateNomination tests field merging and revalidation
func TestUpdateNomination(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()
	period := seedPeriod(t, s.repo, 2026, 3)
	ann := seedEmployee(t, s.repo, "Ann", "ann@example.com", "Platform", "Berlin")
	nom := seedNomination(t, s.repo, period.ID, ann.ID, "voter-1", allThrees())

	reason := "Updated: Ann also ran the incident review and wrote the postmortem."
	updated, err := s.nominations.Update(ctx, nom.ID, services.UpdateNominationInput{Reason: &reason}, "admin")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Reason != reason {
		t.Errorf("expected the reason replaced, got %q", updated.Reason)
	}
	if updated.Criteria != nom.Criteria {
		t.Errorf("expected criteria untouched, got %+v", updated.Criteria)
	}
	if updated.UpdatedAt == nil {
		t.Error("expected UpdatedAt to be stamped")
	}

	short := "too short"
	if _, err := s.nominations.Update(ctx, nom.ID, services.UpdateNominationInput{Reason: &short}, "admin"); errors.CodeOf(err) != services.CodeInvalidReason {
		t.Errorf("expected %s, got %v", services.CodeInvalidReason, err)
	}

	// Bounds count characters, not bytes: 400 multibyte characters fit.
	wide := strings.Repeat("協", 400)
	if _, err := s.nominations.Update(ctx, nom.ID, services.UpdateNominationInput{Reason: &wide}, "admin"); err != nil {
		t.Errorf("a 400-character multibyte reason should pass, got %v", err)
	}

	bad := allThrees()
	bad.Leadership = 9
	if _, err := s.nominations.Update(ctx, nom.ID, services.UpdateNominationInput{Criteria: &bad}, "admin"); errors.CodeOf(err) != services.CodeInvalidCriteria {
		t.Errorf("expected %s, got %v", services.CodeInvalidCriteria, err)
	}
}

// TestNominationMutationsInvalidateCache tests that results never serve
// stale counts after a mutation
func TestNominationMutationsInvalidateCache(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()
	period := seedPeriod(t, s.repo, 2026, 3)
	ann := seedEmployee(t, s.repo, "Ann", "ann@example.com", "Platform", "Berlin")
	seedEmployee(t, s.repo, "Ben", "ben@example.com", "Support", "Berlin")

	results, err := s.results.ComputeResults(ctx, period.ID)
	if err != nil {
		t.Fatalf("ComputeResults failed: %v", err)
	}
	if results.TotalNominations != 0 {
		t.Fatalf("expected an empty period, got %d nominations", results.TotalNominations)
	}

	nom, err := s.nominations.Create(ctx, period.ID, services.NominationInput{
		EmployeeID:     ann.ID,
		NominatorEmail: "ben@example.com",
		Reason:         "Ann unblocked three releases this month and mentored the new hires.",
		Criteria:       allFives(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	results, err = s.results.ComputeResults(ctx, period.ID)
	if err != nil {
		t.Fatalf("ComputeResults failed: %v", err)
	}
	if results.TotalNominations != 1 {
		t.Errorf("expected the cache invalidated after create, got %d nominations", results.TotalNominations)
	}

	if err := s.nominations.Delete(ctx, nom.ID, "admin"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	results, err = s.results.ComputeResults(ctx, period.ID)
	if err != nil {
		t.Fatalf("ComputeResults failed: %v", err)
	}
	if results.TotalNominations != 0 {
		t.Errorf("expected the cache invalidated after delete, got %d nominations", results.TotalNominations)
	}
}

// TestGetByNominator tests the one-per-voter lookup
func TestGetByNominator(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()
	period := seedPeriod(t, s.repo, 2026, 3)
	ann := seedEmployee(t, s.repo, "Ann", "ann@example.com", "Platform", "Berlin")
	nom := seedNomination(t, s.repo, period.ID, ann.ID, "voter-1", allThrees())

	found, err := s.nominations.GetByNominator(ctx, period.ID, "voter-1")
	if err != nil {
		t.Fatalf("GetByNominator failed: %v", err)
	}
	if found.ID != nom.ID {
		t.Errorf("expected nomination %s, got %s", nom.ID, found.ID)
	}

	_, err = s.nominations.GetByNominator(ctx, period.ID, "voter-2")
	if errors.CodeOf(err) != services.CodeNominationNotFound {
		t.Errorf("expected %s, got %v", services.CodeNominationNotFound, err)
	}
}

// TestDeleteNomination_Unknown tests the not-found code on delete
func TestDeleteNomination_Unknown(t *testing.T) {
	s := newTestStack(t, nil)

	err := s.nominations.Delete(context.Background(), "no-such-nomination", "admin")
	if errors.CodeOf(err) != services.CodeNominationNotFound {
		t.Fatalf("expected %s, got %v", services.CodeNominationNotFound, err)
	}
}
