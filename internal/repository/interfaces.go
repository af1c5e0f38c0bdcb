package repository

import (
	"context"

	"github.com/mkowalik/peervote/internal/models"
)

// EmployeeRepository defines employee-directory data operations.
// The core treats the directory as read-only apart from the CSV import.
type EmployeeRepository interface {
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error)
	ListActiveEmployees(ctx context.Context) ([]models.Employee, error)
	CountActiveEmployees(ctx context.Context) (int, error)
	UpsertEmployee(ctx context.Context, emp models.Employee) (created bool, err error)
}

// PeriodRepository defines voting-period data operations.
type PeriodRepository interface {
	CreatePeriod(ctx context.Context, p models.VotingPeriod) error
	GetPeriod(ctx context.Context, id string) (*models.VotingPeriod, error)
	GetPeriodByYearMonth(ctx context.Context, year, month int) (*models.VotingPeriod, error)
	GetActivePeriod(ctx context.Context) (*models.VotingPeriod, error)
	ListPeriods(ctx context.Context) ([]models.VotingPeriod, error)
	UpdatePeriod(ctx context.Context, p models.VotingPeriod) error
	DeletePeriod(ctx context.Context, id string) error
}

// NominationRepository defines nomination data operations.
type NominationRepository interface {
	CreateNomination(ctx context.Context, n models.Nomination) error
	GetNomination(ctx context.Context, id string) (*models.Nomination, error)
	GetNominationByNominator(ctx context.Context, periodID, nominatorID string) (*models.Nomination, error)
	ListNominationsForPeriod(ctx context.Context, periodID string) ([]models.Nomination, error)
	UpdateNomination(ctx context.Context, n models.Nomination) error
	DeleteNomination(ctx context.Context, id string) error
	DeleteNominationsForPeriod(ctx context.Context, periodID string) (int, error)
}

// WinnerRepository defines winner-history and reaction data operations.
type WinnerRepository interface {
	SaveWinner(ctx context.Context, w models.WinnerHistory) error
	GetWinner(ctx context.Context, id string) (*models.WinnerHistory, error)
	ListWinnersByYear(ctx context.Context, year int) ([]models.WinnerHistory, error)
	ListWinnersByYearMonth(ctx context.Context, year, month int) ([]models.WinnerHistory, error)
	ListWinnersForPeriod(ctx context.Context, periodID string) ([]models.WinnerHistory, error)
	GetGeneralWinnerForPeriod(ctx context.Context, periodID string) (*models.WinnerHistory, error)
	ListGroupWinnersForPeriod(ctx context.Context, periodID string) ([]models.WinnerHistory, error)
	GetYearlyWinner(ctx context.Context, year int) (*models.WinnerHistory, error)
	SetYearlyWinner(ctx context.Context, id string, yearly bool) error
	ClearYearlyWinnerForYear(ctx context.Context, year int) error
	DeleteWinnersForPeriod(ctx context.Context, periodID string) (int, error)
	AddReaction(ctx context.Context, winnerID string, r models.Reaction) error
	RemoveReaction(ctx context.Context, winnerID, userID, emoji string) error
	ListReactions(ctx context.Context, winnerID string) ([]models.Reaction, error)
}

// ConfigRepository defines access to the singleton configuration documents.
// Getters return ErrNotFound when no document has been stored yet; callers
// are expected to fall back to defaults.
type ConfigRepository interface {
	GetEligibilityConfig(ctx context.Context) (*models.EligibilityConfig, error)
	SetEligibilityConfig(ctx context.Context, cfg models.EligibilityConfig) error
	GetVotingGroupConfig(ctx context.Context) (*models.VotingGroupConfig, error)
	SetVotingGroupConfig(ctx context.Context, cfg models.VotingGroupConfig) error
}

// FullRepository combines all repository interfaces.
// Use this when a service needs access to multiple domains.
type FullRepository interface {
	EmployeeRepository
	PeriodRepository
	NominationRepository
	WinnerRepository
	ConfigRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
