package mock

import (
	"context"

	"github.com/mkowalik/peervote/internal/models"
	"github.com/mkowalik/peervote/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database
// manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.ListNominationsForPeriodError = errors.New("database error")
//	svc := services.NewResultsService(log, mockRepo, groups, cache)
//	_, err := svc.ComputeResults(ctx, periodID)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Employee errors =====
	GetEmployeeError          error
	GetEmployeeByEmailError   error
	ListActiveEmployeesError  error
	CountActiveEmployeesError error
	UpsertEmployeeError       error

	// ===== Period errors =====
	CreatePeriodError         error
	GetPeriodError            error
	GetPeriodByYearMonthError error
	GetActivePeriodError      error
	ListPeriodsError          error
	UpdatePeriodError         error
	DeletePeriodError         error

	// ===== Nomination errors =====
	CreateNominationError           error
	GetNominationError              error
	GetNominationByNominatorError   error
	ListNominationsForPeriodError   error
	UpdateNominationError           error
	DeleteNominationError           error
	DeleteNominationsForPeriodError error

	// ===== Winner errors =====
	SaveWinnerError             error
	GetWinnerError              error
	ListWinnersForPeriodError   error
	SetYearlyWinnerError        error
	DeleteWinnersForPeriodError error
	AddReactionError            error
	RemoveReactionError         error

	// ===== Config errors =====
	GetEligibilityConfigError error
	SetEligibilityConfigError error
	GetVotingGroupConfigError error
	SetVotingGroupConfigError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

func (m *Repository) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	if m.GetEmployeeError != nil {
		return nil, m.GetEmployeeError
	}
	return m.FullRepository.GetEmployee(ctx, id)
}

func (m *Repository) GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	if m.GetEmployeeByEmailError != nil {
		return nil, m.GetEmployeeByEmailError
	}
	return m.FullRepository.GetEmployeeByEmail(ctx, email)
}

func (m *Repository) ListActiveEmployees(ctx context.Context) ([]models.Employee, error) {
	if m.ListActiveEmployeesError != nil {
		return nil, m.ListActiveEmployeesError
	}
	return m.FullRepository.ListActiveEmployees(ctx)
}

func (m *Repository) CountActiveEmployees(ctx context.Context) (int, error) {
	if m.CountActiveEmployeesError != nil {
		return 0, m.CountActiveEmployeesError
	}
	return m.FullRepository.CountActiveEmployees(ctx)
}

func (m *Repository) UpsertEmployee(ctx context.Context, emp models.Employee) (bool, error) {
	if m.UpsertEmployeeError != nil {
		return false, m.UpsertEmployeeError
	}
	return m.FullRepository.UpsertEmployee(ctx, emp)
}

func (m *Repository) CreatePeriod(ctx context.Context, p models.VotingPeriod) error {
	if m.CreatePeriodError != nil {
		return m.CreatePeriodError
	}
	return m.FullRepository.CreatePeriod(ctx, p)
}

func (m *Repository) GetPeriod(ctx context.Context, id string) (*models.VotingPeriod, error) {
	if m.GetPeriodError != nil {
		return nil, m.GetPeriodError
	}
	return m.FullRepository.GetPeriod(ctx, id)
}

func (m *Repository) GetPeriodByYearMonth(ctx context.Context, year, month int) (*models.VotingPeriod, error) {
	if m.GetPeriodByYearMonthError != nil {
		return nil, m.GetPeriodByYearMonthError
	}
	return m.FullRepository.GetPeriodByYearMonth(ctx, year, month)
}

func (m *Repository) GetActivePeriod(ctx context.Context) (*models.VotingPeriod, error) {
	if m.GetActivePeriodError != nil {
		return nil, m.GetActivePeriodError
	}
	return m.FullRepository.GetActivePeriod(ctx)
}

func (m *Repository) ListPeriods(ctx context.Context) ([]models.VotingPeriod, error) {
	if m.ListPeriodsError != nil {
		return nil, m.ListPeriodsError
	}
	return m.FullRepository.ListPeriods(ctx)
}

func (m *Repository) UpdatePeriod(ctx context.Context, p models.VotingPeriod) error {
	if m.UpdatePeriodError != nil {
		return m.UpdatePeriodError
	}
	return m.FullRepository.UpdatePeriod(ctx, p)
}

func (m *Repository) DeletePeriod(ctx context.Context, id string) error {
	if m.DeletePeriodError != nil {
		return m.DeletePeriodError
	}
	return m.FullRepository.DeletePeriod(ctx, id)
}

func (m *Repository) CreateNomination(ctx context.Context, n models.Nomination) error {
	if m.CreateNominationError != nil {
		return m.CreateNominationError
	}
	return m.FullRepository.CreateNomination(ctx, n)
}

func (m *Repository) GetNomination(ctx context.Context, id string) (*models.Nomination, error) {
	if m.GetNominationError != nil {
		return nil, m.GetNominationError
	}
	return m.FullRepository.GetNomination(ctx, id)
}

func (m *Repository) GetNominationByNominator(ctx context.Context, periodID, nominatorID string) (*models.Nomination, error) {
	if m.GetNominationByNominatorError != nil {
		return nil, m.GetNominationByNominatorError
	}
	return m.FullRepository.GetNominationByNominator(ctx, periodID, nominatorID)
}

func (m *Repository) ListNominationsForPeriod(ctx context.Context, periodID string) ([]models.Nomination, error) {
	if m.ListNominationsForPeriodError != nil {
		return nil, m.ListNominationsForPeriodError
	}
	return m.FullRepository.ListNominationsForPeriod(ctx, periodID)
}

func (m *Repository) UpdateNomination(ctx context.Context, n models.Nomination) error {
	if m.UpdateNominationError != nil {
		return m.UpdateNominationError
	}
	return m.FullRepository.UpdateNomination(ctx, n)
}

func (m *Repository) DeleteNomination(ctx context.Context, id string) error {
	if m.DeleteNominationError != nil {
		return m.DeleteNominationError
	}
	return m.FullRepository.DeleteNomination(ctx, id)
}

func (m *Repository) DeleteNominationsForPeriod(ctx context.Context, periodID string) (int, error) {
	if m.DeleteNominationsForPeriodError != nil {
		return 0, m.DeleteNominationsForPeriodError
	}
	return m.FullRepository.DeleteNominationsForPeriod(ctx, periodID)
}

func (m *Repository) SaveWinner(ctx context.Context, w models.WinnerHistory) error {
	if m.SaveWinnerError != nil {
		return m.SaveWinnerError
	}
	return m.FullRepository.SaveWinner(ctx, w)
}

func (m *Repository) GetWinner(ctx context.Context, id string) (*models.WinnerHistory, error) {
	if m.GetWinnerError != nil {
		return nil, m.GetWinnerError
	}
	return m.FullRepository.GetWinner(ctx, id)
}

func (m *Repository) ListWinnersForPeriod(ctx context.Context, periodID string) ([]models.WinnerHistory, error) {
	if m.ListWinnersForPeriodError != nil {
		return nil, m.ListWinnersForPeriodError
	}
	return m.FullRepository.ListWinnersForPeriod(ctx, periodID)
}

func (m *Repository) SetYearlyWinner(ctx context.Context, id string, yearly bool) error {
	if m.SetYearlyWinnerError != nil {
		return m.SetYearlyWinnerError
	}
	return m.FullRepository.SetYearlyWinner(ctx, id, yearly)
}

func (m *Repository) DeleteWinnersForPeriod(ctx context.Context, periodID string) (int, error) {
	if m.DeleteWinnersForPeriodError != nil {
		return 0, m.DeleteWinnersForPeriodError
	}
	return m.FullRepository.DeleteWinnersForPeriod(ctx, periodID)
}

func (m *Repository) AddReaction(ctx context.Context, winnerID string, r models.Reaction) error {
	if m.AddReactionError != nil {
		return m.AddReactionError
	}
	return m.FullRepository.AddReaction(ctx, winnerID, r)
}

func (m *Repository) RemoveReaction(ctx context.Context, winnerID, userID, emoji string) error {
	if m.RemoveReactionError != nil {
		return m.RemoveReactionError
	}
	return m.FullRepository.RemoveReaction(ctx, winnerID, userID, emoji)
}

func (m *Repository) GetEligibilityConfig(ctx context.Context) (*models.EligibilityConfig, error) {
	if m.GetEligibilityConfigError != nil {
		return nil, m.GetEligibilityConfigError
	}
	return m.FullRepository.GetEligibilityConfig(ctx)
}

func (m *Repository) SetEligibilityConfig(ctx context.Context, cfg models.EligibilityConfig) error {
	if m.SetEligibilityConfigError != nil {
		return m.SetEligibilityConfigError
	}
	return m.FullRepository.SetEligibilityConfig(ctx, cfg)
}

func (m *Repository) GetVotingGroupConfig(ctx context.Context) (*models.VotingGroupConfig, error) {
	if m.GetVotingGroupConfigError != nil {
		return nil, m.GetVotingGroupConfigError
	}
	return m.FullRepository.GetVotingGroupConfig(ctx)
}

func (m *Repository) SetVotingGroupConfig(ctx context.Context, cfg models.VotingGroupConfig) error {
	if m.SetVotingGroupConfigError != nil {
		return m.SetVotingGroupConfigError
	}
	return m.FullRepository.SetVotingGroupConfig(ctx, cfg)
}
