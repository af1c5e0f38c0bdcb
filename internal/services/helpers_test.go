package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mkowalik/peervote/internal/audit"
	"github.com/mkowalik/peervote/internal/logger"
	"github.com/mkowalik/peervote/internal/models"
	"github.com/mkowalik/peervote/internal/notify"
	"github.com/mkowalik/peervote/internal/repository"
	"github.com/mkowalik/peervote/internal/services"
	"github.com/mkowalik/peervote/internal/testutil"
)

// testStack bundles the fully wired service layer over an in-memory
// repository. Tests reach into the fields they exercise.
type testStack struct {
	repo        *repository.Repository
	cache       *services.ResultCache
	eligibility *services.EligibilityService
	groups      *services.GroupService
	validation  *services.ValidationService
	results     *services.ResultsService
	periods     *services.PeriodService
	winners     *services.WinnersService
	nominations *services.NominationService
	history     *services.HistoryService
	employees   *services.EmployeeService
}

// newTestStack wires every service against a fresh in-memory database.
// rng drives the general winner draw; pass nil for a fixed zero draw.
func newTestStack(t *testing.T, rng func() float64) *testStack {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	log := logger.New()
	if rng == nil {
		rng = func() float64 { return 0 }
	}

	cache := services.NewResultCache(time.Minute)
	eligibility := services.NewEligibilityService(log, repo)
	groups := services.NewGroupService(log, repo)
	validation := services.NewValidationService(log, repo, false)
	results := services.NewResultsService(log, repo, groups, cache)
	periods := services.NewPeriodService(log, repo, cache, audit.Nop{})
	winners := services.NewWinnersService(log, repo, results, groups, periods, audit.Nop{}, notify.Nop{}, rng)
	nominations := services.NewNominationService(log, repo, validation, eligibility, cache, audit.Nop{}, notify.Nop{})
	history := services.NewHistoryService(log, repo, audit.Nop{})
	employees := services.NewEmployeeService(log, repo, audit.Nop{})

	return &testStack{
		repo:        repo,
		cache:       cache,
		eligibility: eligibility,
		groups:      groups,
		validation:  validation,
		results:     results,
		periods:     periods,
		winners:     winners,
		nominations: nominations,
		history:     history,
		employees:   employees,
	}
}

// seedEmployee inserts an active employee and returns it
func seedEmployee(t *testing.T, repo *repository.Repository, name, email, department, location string) models.Employee {
	t.Helper()
	emp := models.Employee{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		Department: department,
		Position:   "Engineer",
		Location:   location,
		Active:     true,
	}
	if _, err := repo.UpsertEmployee(context.Background(), emp); err != nil {
		t.Fatalf("UpsertEmployee failed: %v", err)
	}
	return emp
}

// seedPeriod inserts an ACTIVE voting period and returns it
func seedPeriod(t *testing.T, repo *repository.Repository, year, month int) models.VotingPeriod {
	t.Helper()
	period := models.VotingPeriod{
		ID:        uuid.NewString(),
		Year:      year,
		Month:     month,
		StartDate: time.Now(),
		Status:    models.PeriodActive,
	}
	if err := repo.CreatePeriod(context.Background(), period); err != nil {
		t.Fatalf("CreatePeriod failed: %v", err)
	}
	return period
}

// seedNomination inserts a nomination directly, bypassing validation
func seedNomination(t *testing.T, repo *repository.Repository, periodID, employeeID, nominatorID string, c models.Criteria) models.Nomination {
	t.Helper()
	nom := models.Nomination{
		ID:          uuid.NewString(),
		PeriodID:    periodID,
		EmployeeID:  employeeID,
		NominatorID: nominatorID,
		Reason:      "Consistently helps the whole team ship",
		Criteria:    c,
		CreatedAt:   time.Now(),
	}
	if err := repo.CreateNomination(context.Background(), nom); err != nil {
		t.Fatalf("CreateNomination failed: %v", err)
	}
	return nom
}

// allFives is a criteria block with every score at the maximum
func allFives() models.Criteria {
	return models.Criteria{
		Teamwork:      5,
		Communication: 5,
		Innovation:    5,
		Reliability:   5,
		Leadership:    5,
		Helpfulness:   5,
	}
}

// allThrees is a criteria block with every score at 3
func allThrees() models.Criteria {
	return models.Criteria{
		Teamwork:      3,
		Communication: 3,
		Innovation:    3,
		Reliability:   3,
		Leadership:    3,
		Helpfulness:   3,
	}
}
