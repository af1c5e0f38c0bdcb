package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mkowalik/peervote/internal/audit"
	"github.com/mkowalik/peervote/internal/errors"
	"github.com/mkowalik/peervote/internal/logger"
	"github.com/mkowalik/peervote/internal/models"
	"github.com/mkowalik/peervote/internal/notify"
	"github.com/mkowalik/peervote/internal/repository"
)

// generalWinnerNamespace seeds the deterministic id of a period's GENERAL
// winner record: recomputing the same period overwrites the previous record
// instead of duplicating it.
var generalWinnerNamespace = uuid.MustParse("9adf49a1-4b37-4c22-b383-1d5af2f9c3a6")

// WinnersFormula converts a group's nomination volume into its number of
// winners: max(minWinners, round(total/divisor)). A non-positive divisor
// means unconfigured, which yields exactly one winner per group.
type WinnersFormula struct {
	Divisor    int
	MinWinners int
}

// WinnersFor returns the winner count for a group with the given total.
func (f WinnersFormula) WinnersFor(totalNominations int) int {
	if f.Divisor <= 0 {
		return 1
	}
	min := f.MinWinners
	if min < 1 {
		min = 1
	}
	n := int(math.Floor(float64(totalNominations)/float64(f.Divisor) + 0.5))
	if n < min {
		n = min
	}
	return n
}

// WinnersServiceRepository defines the repository methods needed by
// WinnersService.
type WinnersServiceRepository interface {
	GetPeriod(ctx context.Context, id string) (*models.VotingPeriod, error)
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	SaveWinner(ctx context.Context, w models.WinnerHistory) error
	DeleteWinnersForPeriod(ctx context.Context, periodID string) (int, error)
}

// RecordedWinners is the outcome of recording a period's winners.
type RecordedWinners struct {
	PeriodID     string                 `json:"period_id"`
	GroupWinners []models.WinnerHistory `json:"group_winners"`
	General      models.WinnerHistory   `json:"general"`
	Replaced     int                    `json:"replaced"`
}

// WinnersService selects winners from aggregated results and persists them
// as immutable winner history. The random source for the general draw is
// injected so tests can supply a fixed sequence.
type WinnersService struct {
	log     logger.Logger
	repo    WinnersServiceRepository
	results *ResultsService
	groups  *GroupService
	periods *PeriodService
	audit   audit.Recorder
	notif   notify.Notifier
	rand    func() float64
}

// NewWinnersService creates a new WinnersService. rand must return values
// in [0,1); production wiring passes math/rand's Float64.
func NewWinnersService(log logger.Logger, repo WinnersServiceRepository, results *ResultsService,
	groups *GroupService, periods *PeriodService, recorder audit.Recorder, notifier notify.Notifier,
	rand func() float64) *WinnersService {
	return &WinnersService{
		log:     log,
		repo:    repo,
		results: results,
		groups:  groups,
		periods: periods,
		audit:   recorder,
		notif:   notifier,
		rand:    rand,
	}
}

// SelectWinners applies the winners formula to each group and returns the
// top-ranked nominees of every group, in group order.
func (s *WinnersService) SelectWinners(results *PeriodResults, formula WinnersFormula) []models.VoteResult {
	var winners []models.VoteResult
	for _, group := range results.Groups {
		n := formula.WinnersFor(group.TotalNominations)
		if n > len(group.Results) {
			n = len(group.Results)
		}
		winners = append(winners, group.Results[:n]...)
	}
	return winners
}

// DrawGeneralWinner picks one winner uniformly at random from the per-group
// winners, for ceremony purposes.
func (s *WinnersService) DrawGeneralWinner(perGroupWinners []models.VoteResult, rng func() float64) (models.VoteResult, error) {
	if len(perGroupWinners) == 0 {
		return models.VoteResult{}, errors.InvalidInput("no winners to draw from").WithCode(CodeNoNominations)
	}
	idx := int(rng() * float64(len(perGroupWinners)))
	if idx >= len(perGroupWinners) {
		idx = len(perGroupWinners) - 1
	}
	return perGroupWinners[idx], nil
}

// RecordWinners recomputes the period's results, selects winners, replaces
// all previously stored winner history for the period and closes the
// period. Audit and notification failures are logged and never block the
// recording.
func (s *WinnersService) RecordWinners(ctx context.Context, periodID, actor string) (*RecordedWinners, error) {
	period, err := s.repo.GetPeriod(ctx, periodID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("voting period %q not found", periodID).WithCode(CodePeriodNotFound)
		}
		return nil, errors.Dependency("voting period lookup failed", err)
	}

	results, err := s.results.RecomputeResults(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if results.TotalNominations == 0 {
		return nil, errors.Validation("no nominations were submitted for this voting period").
			WithCode(CodeNoNominations)
	}

	perGroup := s.SelectWinners(results, s.groups.Formula())
	general, err := s.DrawGeneralWinner(perGroup, s.rand)
	if err != nil {
		return nil, err
	}

	// Recomputation replaces the period's history wholesale.
	replaced, err := s.repo.DeleteWinnersForPeriod(ctx, periodID)
	if err != nil {
		return nil, errors.Dependency("replacing winner history failed", err)
	}

	now := time.Now()
	recorded := &RecordedWinners{PeriodID: periodID, Replaced: replaced}
	for _, w := range perGroup {
		row := winnerRow(uuid.NewString(), *period, w, models.WinnerByGroup, now)
		if err := s.repo.SaveWinner(ctx, row); err != nil {
			return nil, errors.Dependency("saving winner history failed", err)
		}
		recorded.GroupWinners = append(recorded.GroupWinners, row)
	}

	generalRow := winnerRow(generalWinnerID(period.Year, period.Month), *period, general, models.WinnerGeneral, now)
	if err := s.repo.SaveWinner(ctx, generalRow); err != nil {
		return nil, errors.Dependency("saving general winner failed", err)
	}
	recorded.General = generalRow

	// Winners are final: transition the period to CLOSED. A period closed
	// before recomputation stays closed.
	if _, err := s.periods.Close(ctx, periodID, actor); err != nil && !errors.IsKind(err, errors.ErrConflict) {
		s.log.Warn("Closing period after recording winners failed", "period_id", periodID, "error", err)
	}

	if err := s.audit.Record(ctx, actor, "winners.record", "voting_period", periodID, nil, recorded); err != nil {
		s.log.Warn("Audit record failed", "action", "winners.record", "error", err)
	}
	s.periods.broadcastWinners(periodID, len(recorded.GroupWinners))
	s.notifyWinners(ctx, *period, recorded)

	s.log.Info("Winners recorded", "period_id", periodID,
		"group_winners", len(recorded.GroupWinners), "general", generalRow.EmployeeID, "replaced", replaced)
	return recorded, nil
}

func (s *WinnersService) notifyWinners(ctx context.Context, period models.VotingPeriod, recorded *RecordedWinners) {
	for _, w := range recorded.GroupWinners {
		emp, err := s.repo.GetEmployee(ctx, w.EmployeeID)
		if err != nil || emp.Email == "" {
			continue
		}
		subject := fmt.Sprintf("Congratulations, you won for %d-%02d!", period.Year, period.Month)
		body := fmt.Sprintf("You received %d nominations (%.2f%%) in the %s group.", w.Count, w.Percentage, w.VotingGroup)
		if err := s.notif.Notify(ctx, emp.Email, subject, body); err != nil {
			s.log.Warn("Winner notification failed", "employee_id", w.EmployeeID, "error", err)
		}
	}
}

func winnerRow(id string, period models.VotingPeriod, result models.VoteResult, winnerType models.WinnerType, now time.Time) models.WinnerHistory {
	return models.WinnerHistory{
		ID:           id,
		PeriodID:     period.ID,
		Year:         period.Year,
		Month:        period.Month,
		EmployeeID:   result.EmployeeID,
		EmployeeName: result.EmployeeName,
		Department:   result.Department,
		Position:     result.Position,
		Count:        result.Count,
		Percentage:   result.Percentage,
		Rank:         result.Rank,
		AvgCriteria:  result.AvgCriteria,
		VotingGroup:  result.VotingGroup,
		WinnerType:   winnerType,
		CreatedAt:    now,
	}
}

func generalWinnerID(year, month int) string {
	return uuid.NewSHA1(generalWinnerNamespace, []byte(fmt.Sprintf("%04d-%02d", year, month))).String()
}
