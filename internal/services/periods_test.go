package services_test

import (
	"context"
	"testing"

	"github.com/mkowalik/peervote/internal/errors"
	"github.com/mkowalik/peervote/internal/models"
	"github.com/mkowalik/peervote/internal/services"
)

// TestCreatePeriod_StartsActive tests creation defaults
func TestCreatePeriod_StartsActive(t *testing.T) {
	s := newTestStack(t, nil)

	period, err := s.periods.Create(context.Background(), services.CreatePeriodInput{
		Year: 2026, Month: 3, Description: "March voting",
	}, "admin")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if period.Status != models.PeriodActive {
		t.Errorf("expected ACTIVE status, got %s", period.Status)
	}
	if period.StartDate.IsZero() {
		t.Error("expected a defaulted start date")
	}
	if period.ID == "" {
		t.Error("expected a generated id")
	}
}

// TestCreatePeriod_RejectsDuplicateMonth tests the (year, month) uniqueness
func TestCreatePeriod_RejectsDuplicateMonth(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()

	if _, err := s.periods.Create(ctx, services.CreatePeriodInput{Year: 2026, Month: 3}, "admin"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := s.periods.Create(ctx, services.CreatePeriodInput{Year: 2026, Month: 3}, "admin")
	if errors.CodeOf(err) != services.CodeDuplicatePeriod {
		t.Fatalf("expected %s, got %v", services.CodeDuplicatePeriod, err)
	}

	// A different month in the same year is fine.
	if _, err := s.periods.Create(ctx, services.CreatePeriodInput{Year: 2026, Month: 4}, "admin"); err != nil {
		t.Errorf("Create for another month failed: %v", err)
	}
}

// TestCreatePeriod_RejectsInvalidMonth tests input validation
func TestCreatePeriod_RejectsInvalidMonth(t *testing.T) {
	s := newTestStack(t, nil)

	for _, month := range []int{0, 13, -1} {
		if _, err := s.periods.Create(context.Background(),
			services.CreatePeriodInput{Year: 2026, Month: month}, "admin"); err == nil {
			t.Errorf("expected an error for month %d", month)
		}
	}
}

// TestCreatePeriod_PendingUntilActivated tests the optional initial status
func TestCreatePeriod_PendingUntilActivated(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()

	period, err := s.periods.Create(ctx, services.CreatePeriodInput{
		Year: 2026, Month: 5, Status: models.PeriodPending,
	}, "admin")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if period.Status != models.PeriodPending {
		t.Fatalf("expected PENDING status, got %s", period.Status)
	}
	if _, err := s.periods.GetCurrent(ctx); errors.CodeOf(err) != services.CodePeriodNotFound {
		t.Errorf("expected no active period while pending, got %v", err)
	}

	activated, err := s.periods.Activate(ctx, period.ID, "admin")
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if activated.Status != models.PeriodActive {
		t.Errorf("expected ACTIVE status after activation, got %s", activated.Status)
	}
	current, err := s.periods.GetCurrent(ctx)
	if err != nil {
		t.Fatalf("GetCurrent failed: %v", err)
	}
	if current.ID != period.ID {
		t.Errorf("expected the activated period to be current, got %s", current.ID)
	}

	// Activating twice is harmless.
	if _, err := s.periods.Activate(ctx, period.ID, "admin"); err != nil {
		t.Errorf("expected repeated activation to succeed, got %v", err)
	}
}

// TestCreatePeriod_RejectsUnknownStatus tests the initial status whitelist
func TestCreatePeriod_RejectsUnknownStatus(t *testing.T) {
	s := newTestStack(t, nil)

	_, err := s.periods.Create(context.Background(), services.CreatePeriodInput{
		Year: 2026, Month: 5, Status: models.PeriodClosed,
	}, "admin")
	if !errors.IsKind(err, errors.ErrValidation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

// TestActivatePeriod_ClosedStaysClosed tests that only reset reopens
func TestActivatePeriod_ClosedStaysClosed(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()
	period := seedPeriod(t, s.repo, 2026, 3)

	if _, err := s.periods.Close(ctx, period.ID, "admin"); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	_, err := s.periods.Activate(ctx, period.ID, "admin")
	if errors.CodeOf(err) != services.CodeAlreadyClosed {
		t.Fatalf("expected %s, got %v", services.CodeAlreadyClosed, err)
	}
}

// TestGetCurrent_ReturnsActivePeriod tests the active period lookup
func TestGetCurrent_ReturnsActivePeriod(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()

	if _, err := s.periods.GetCurrent(ctx); errors.CodeOf(err) != services.CodePeriodNotFound {
		t.Fatalf("expected %s with no periods, got %v", services.CodePeriodNotFound, err)
	}

	created, err := s.periods.Create(ctx, services.CreatePeriodInput{Year: 2026, Month: 3}, "admin")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	current, err := s.periods.GetCurrent(ctx)
	if err != nil {
		t.Fatalf("GetCurrent failed: %v", err)
	}
	if current.ID != created.ID {
		t.Errorf("expected period %s, got %s", created.ID, current.ID)
	}
}

// TestClosePeriod tests the close transition and its idempotence guard
func TestClosePeriod(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()
	period := seedPeriod(t, s.repo, 2026, 3)

	closed, err := s.periods.Close(ctx, period.ID, "admin")
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if closed.Status != models.PeriodClosed {
		t.Errorf("expected CLOSED, got %s", closed.Status)
	}
	if closed.EndDate.IsZero() {
		t.Error("expected the end date to be stamped")
	}

	_, err = s.periods.Close(ctx, period.ID, "admin")
	if errors.CodeOf(err) != services.CodeAlreadyClosed {
		t.Fatalf("expected %s on second close, got %v", services.CodeAlreadyClosed, err)
	}
}

// TestUpdatePeriod_MoveToTakenMonth tests the uniqueness re-check on update
func TestUpdatePeriod_MoveToTakenMonth(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()
	seedPeriod(t, s.repo, 2026, 3)
	period := seedPeriod(t, s.repo, 2026, 4)

	month := 3
	_, err := s.periods.Update(ctx, period.ID, services.UpdatePeriodInput{Month: &month}, "admin")
	if errors.CodeOf(err) != services.CodeDuplicatePeriod {
		t.Fatalf("expected %s, got %v", services.CodeDuplicatePeriod, err)
	}

	// Updating other fields in place is allowed.
	desc := "April voting"
	updated, err := s.periods.Update(ctx, period.ID, services.UpdatePeriodInput{Description: &desc}, "admin")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Description != desc {
		t.Errorf("expected description update, got %q", updated.Description)
	}
}

// TestResetPeriod tests the wipe counts and loss of the yearly flag
func TestResetPeriod(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()
	period := seedPeriod(t, s.repo, 2026, 3)
	ann := seedEmployee(t, s.repo, "Ann", "ann@example.com", "Platform", "Berlin")

	seedNomination(t, s.repo, period.ID, ann.ID, "v1", allThrees())
	seedNomination(t, s.repo, period.ID, ann.ID, "v2", allThrees())
	if _, err := s.winners.RecordWinners(ctx, period.ID, "admin"); err != nil {
		t.Fatalf("RecordWinners failed: %v", err)
	}

	result := s.periods.Reset(ctx, period.ID, "admin")
	if result.Status != "ok" {
		t.Fatalf("expected ok status, got %+v", result)
	}
	if result.NominationsDeleted != 2 || result.WinnersDeleted != 2 {
		t.Errorf("expected 2 nominations and 2 winners deleted, got %+v", result)
	}

	// The period itself remains and reopens for voting; its history is
	// gone, including any yearly flags it carried.
	reopened, err := s.repo.GetPeriod(ctx, period.ID)
	if err != nil {
		t.Fatalf("expected period to survive reset: %v", err)
	}
	if reopened.Status != models.PeriodActive {
		t.Errorf("expected reset to reopen the period, got status %s", reopened.Status)
	}
	rows, err := s.repo.ListWinnersForPeriod(ctx, period.ID)
	if err != nil {
		t.Fatalf("ListWinnersForPeriod failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no winner rows after reset, got %d", len(rows))
	}
}

// TestResetPeriod_UnknownPeriod tests that reset reports instead of failing
func TestResetPeriod_UnknownPeriod(t *testing.T) {
	s := newTestStack(t, nil)

	result := s.periods.Reset(context.Background(), "no-such-period", "admin")
	if result.Status != "not_found" {
		t.Errorf("expected not_found status, got %+v", result)
	}
}

// TestDeletePeriod tests cascade removal of voting data
func TestDeletePeriod(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()
	period := seedPeriod(t, s.repo, 2026, 3)
	ann := seedEmployee(t, s.repo, "Ann", "ann@example.com", "Platform", "Berlin")
	seedNomination(t, s.repo, period.ID, ann.ID, "v1", allThrees())

	if err := s.periods.Delete(ctx, period.ID, "admin"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.periods.Get(ctx, period.ID); errors.CodeOf(err) != services.CodePeriodNotFound {
		t.Errorf("expected the period to be gone, got %v", err)
	}
	noms, err := s.repo.ListNominationsForPeriod(ctx, period.ID)
	if err != nil {
		t.Fatalf("ListNominationsForPeriod failed: %v", err)
	}
	if len(noms) != 0 {
		t.Errorf("expected nominations removed with the period, got %d", len(noms))
	}
}

// TestListPeriods tests listing
func TestListPeriods(t *testing.T) {
	s := newTestStack(t, nil)
	seedPeriod(t, s.repo, 2026, 3)
	seedPeriod(t, s.repo, 2026, 4)

	periods, err := s.periods.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(periods) != 2 {
		t.Errorf("expected 2 periods, got %d", len(periods))
	}
}
