package services

import (
	"context"
	"io"

	"github.com/mkowalik/peervote/internal/models"
)

// Servicer interfaces describe what the transport layer may call. Handlers
// depend on these, never on the concrete services.

type PeriodServicer interface {
	Create(ctx context.Context, input CreatePeriodInput, actor string) (*models.VotingPeriod, error)
	Get(ctx context.Context, id string) (*models.VotingPeriod, error)
	GetCurrent(ctx context.Context) (*models.VotingPeriod, error)
	List(ctx context.Context) ([]models.VotingPeriod, error)
	Update(ctx context.Context, id string, input UpdatePeriodInput, actor string) (*models.VotingPeriod, error)
	Close(ctx context.Context, id, actor string) (*models.VotingPeriod, error)
	Activate(ctx context.Context, id, actor string) (*models.VotingPeriod, error)
	Reset(ctx context.Context, id, actor string) ResetResult
	Delete(ctx context.Context, id, actor string) error
}

type NominationServicer interface {
	Create(ctx context.Context, periodID string, input NominationInput) (*models.Nomination, error)
	Get(ctx context.Context, id string) (*models.Nomination, error)
	GetByNominator(ctx context.Context, periodID, nominatorID string) (*models.Nomination, error)
	ListForPeriod(ctx context.Context, periodID string) ([]models.Nomination, error)
	Update(ctx context.Context, id string, input UpdateNominationInput, actor string) (*models.Nomination, error)
	Delete(ctx context.Context, id, actor string) error
}

type ResultsServicer interface {
	ComputeResults(ctx context.Context, periodID string) (*PeriodResults, error)
	RecomputeResults(ctx context.Context, periodID string) (*PeriodResults, error)
}

type WinnersServicer interface {
	RecordWinners(ctx context.Context, periodID, actor string) (*RecordedWinners, error)
}

type HistoryServicer interface {
	Get(ctx context.Context, id string) (*models.WinnerHistory, error)
	ByYear(ctx context.Context, year int) ([]models.WinnerHistory, error)
	ByYearMonth(ctx context.Context, year, month int) ([]models.WinnerHistory, error)
	ForPeriod(ctx context.Context, periodID string) ([]models.WinnerHistory, error)
	GeneralForPeriod(ctx context.Context, periodID string) (*models.WinnerHistory, error)
	GroupWinnersForPeriod(ctx context.Context, periodID string) ([]models.WinnerHistory, error)
	YearlyWinner(ctx context.Context, year int) (*models.WinnerHistory, error)
	MarkYearlyWinner(ctx context.Context, id, actor string) (*models.WinnerHistory, error)
	UnmarkYearlyWinner(ctx context.Context, id, actor string) error
	AddReaction(ctx context.Context, winnerID, userID, userName, emoji string) error
	RemoveReaction(ctx context.Context, winnerID, userID, emoji string) error
	Reactions(ctx context.Context, winnerID string) ([]models.Reaction, error)
}

type EmployeeServicer interface {
	FindByID(ctx context.Context, id string) (*models.Employee, error)
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)
	ListActive(ctx context.Context) ([]models.Employee, error)
	CountActive(ctx context.Context) (int, error)
	ImportCSV(ctx context.Context, r io.Reader, actor string) (*ImportResult, error)
}

type EligibilityServicer interface {
	Config(ctx context.Context) (models.EligibilityConfig, error)
	UpdateConfig(ctx context.Context, cfg models.EligibilityConfig) error
	CanBeNominated(ctx context.Context, emp models.Employee) (bool, error)
	CanNominate(ctx context.Context, emp models.Employee) (bool, error)
}

type GroupServicer interface {
	Config() models.VotingGroupConfig
	UpdateConfig(ctx context.Context, cfg models.VotingGroupConfig) error
	Assign(emp models.Employee) models.GroupLabel
	Formula() WinnersFormula
}

var (
	_ PeriodServicer      = (*PeriodService)(nil)
	_ NominationServicer  = (*NominationService)(nil)
	_ ResultsServicer     = (*ResultsService)(nil)
	_ WinnersServicer     = (*WinnersService)(nil)
	_ HistoryServicer     = (*HistoryService)(nil)
	_ EmployeeServicer    = (*EmployeeService)(nil)
	_ EligibilityServicer = (*EligibilityService)(nil)
	_ GroupServicer       = (*GroupService)(nil)
)
