package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkowalik/peervote/internal/audit"
	"github.com/mkowalik/peervote/internal/errors"
	"github.com/mkowalik/peervote/internal/logger"
	"github.com/mkowalik/peervote/internal/models"
	"github.com/mkowalik/peervote/internal/repository"
)

// Broadcaster pushes lifecycle events to connected clients. Implementations
// must never block the caller.
type Broadcaster interface {
	BroadcastPeriodStatus(periodID string, status models.PeriodStatus)
	BroadcastWinnersRecorded(periodID string, groupWinners int)
}

// NopBroadcaster discards all events.
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastPeriodStatus(string, models.PeriodStatus) {}
func (NopBroadcaster) BroadcastWinnersRecorded(string, int)             {}

// PeriodServiceRepository defines the repository methods needed by
// PeriodService.
type PeriodServiceRepository interface {
	CreatePeriod(ctx context.Context, p models.VotingPeriod) error
	GetPeriod(ctx context.Context, id string) (*models.VotingPeriod, error)
	GetPeriodByYearMonth(ctx context.Context, year, month int) (*models.VotingPeriod, error)
	GetActivePeriod(ctx context.Context) (*models.VotingPeriod, error)
	ListPeriods(ctx context.Context) ([]models.VotingPeriod, error)
	UpdatePeriod(ctx context.Context, p models.VotingPeriod) error
	DeletePeriod(ctx context.Context, id string) error
	DeleteNominationsForPeriod(ctx context.Context, periodID string) (int, error)
	DeleteWinnersForPeriod(ctx context.Context, periodID string) (int, error)
}

// CreatePeriodInput carries the fields for opening a new voting period.
// Status may be left empty, in which case the period starts ACTIVE; the
// only other accepted value is PENDING.
type CreatePeriodInput struct {
	Year        int
	Month       int
	StartDate   time.Time
	EndDate     time.Time
	Description string
	Status      models.PeriodStatus
}

// UpdatePeriodInput carries the mutable fields of a voting period. Nil
// fields are left unchanged.
type UpdatePeriodInput struct {
	Year        *int
	Month       *int
	StartDate   *time.Time
	EndDate     *time.Time
	Description *string
}

// ResetResult reports the outcome of wiping a period's voting data. Reset
// is an administrative recovery action and reports problems through Status
// rather than an error.
type ResetResult struct {
	Status             string `json:"status"`
	Message            string `json:"message"`
	NominationsDeleted int    `json:"nominations_deleted"`
	WinnersDeleted     int    `json:"winners_deleted"`
}

// PeriodService manages the voting period lifecycle.
type PeriodService struct {
	log   logger.Logger
	repo  PeriodServiceRepository
	cache *ResultCache
	audit audit.Recorder
	hub   Broadcaster
}

// NewPeriodService creates a new PeriodService. Events are discarded until
// a broadcaster is attached.
func NewPeriodService(log logger.Logger, repo PeriodServiceRepository, cache *ResultCache,
	recorder audit.Recorder) *PeriodService {
	return &PeriodService{log: log, repo: repo, cache: cache, audit: recorder, hub: NopBroadcaster{}}
}

// SetBroadcaster attaches the hub after construction; the hub itself needs
// the service to greet new clients.
func (s *PeriodService) SetBroadcaster(hub Broadcaster) {
	s.hub = hub
}

// Create opens a new voting period. At most one period may exist per
// (year, month); new periods start ACTIVE unless PENDING is requested.
func (s *PeriodService) Create(ctx context.Context, input CreatePeriodInput, actor string) (*models.VotingPeriod, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, errors.Validationf("month must be between 1 and 12, got %d", input.Month)
	}
	if input.Year < 2000 || input.Year > 2200 {
		return nil, errors.Validationf("year %d is out of range", input.Year)
	}
	status := input.Status
	switch status {
	case "":
		status = models.PeriodActive
	case models.PeriodActive, models.PeriodPending:
	default:
		return nil, errors.Validationf("a period cannot be created with status %q", status)
	}

	if existing, err := s.repo.GetPeriodByYearMonth(ctx, input.Year, input.Month); err == nil {
		return nil, errors.Conflictf("a voting period for %d-%02d already exists (%s)",
			input.Year, input.Month, existing.ID).WithCode(CodeDuplicatePeriod)
	} else if err != repository.ErrNotFound {
		return nil, errors.Dependency("voting period lookup failed", err)
	}

	if status == models.PeriodActive {
		if active, err := s.repo.GetActivePeriod(ctx); err == nil {
			// Multiple active periods are allowed but usually a mistake.
			s.log.Warn("Creating a period while another is active", "active_period_id", active.ID)
		}
	}

	period := models.VotingPeriod{
		ID:          uuid.NewString(),
		Year:        input.Year,
		Month:       input.Month,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      status,
		Description: input.Description,
	}
	if period.StartDate.IsZero() {
		period.StartDate = time.Now()
	}
	if err := s.repo.CreatePeriod(ctx, period); err != nil {
		return nil, errors.Dependency("creating voting period failed", err)
	}

	s.recordAudit(ctx, actor, "period.create", period.ID, nil, period)
	s.hub.BroadcastPeriodStatus(period.ID, period.Status)
	s.log.Info("Voting period created", "period_id", period.ID, "year", period.Year, "month", period.Month)
	return &period, nil
}

// Get returns a voting period by id.
func (s *PeriodService) Get(ctx context.Context, id string) (*models.VotingPeriod, error) {
	period, err := s.repo.GetPeriod(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("voting period %q not found", id).WithCode(CodePeriodNotFound)
		}
		return nil, errors.Dependency("voting period lookup failed", err)
	}
	return period, nil
}

// GetCurrent returns the active voting period, if any.
func (s *PeriodService) GetCurrent(ctx context.Context) (*models.VotingPeriod, error) {
	period, err := s.repo.GetActivePeriod(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFound("no active voting period").WithCode(CodePeriodNotFound)
		}
		return nil, errors.Dependency("voting period lookup failed", err)
	}
	return period, nil
}

// List returns all voting periods, newest first.
func (s *PeriodService) List(ctx context.Context) ([]models.VotingPeriod, error) {
	periods, err := s.repo.ListPeriods(ctx)
	if err != nil {
		return nil, errors.Dependency("listing voting periods failed", err)
	}
	return periods, nil
}

// Update modifies a voting period's descriptive fields. Moving a period to
// a different (year, month) re-checks uniqueness.
func (s *PeriodService) Update(ctx context.Context, id string, input UpdatePeriodInput, actor string) (*models.VotingPeriod, error) {
	period, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *period

	if input.Year != nil {
		period.Year = *input.Year
	}
	if input.Month != nil {
		if *input.Month < 1 || *input.Month > 12 {
			return nil, errors.Validationf("month must be between 1 and 12, got %d", *input.Month)
		}
		period.Month = *input.Month
	}
	if input.StartDate != nil {
		period.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		period.EndDate = *input.EndDate
	}
	if input.Description != nil {
		period.Description = *input.Description
	}

	if period.Year != before.Year || period.Month != before.Month {
		if existing, err := s.repo.GetPeriodByYearMonth(ctx, period.Year, period.Month); err == nil && existing.ID != id {
			return nil, errors.Conflictf("a voting period for %d-%02d already exists (%s)",
				period.Year, period.Month, existing.ID).WithCode(CodeDuplicatePeriod)
		} else if err != nil && err != repository.ErrNotFound {
			return nil, errors.Dependency("voting period lookup failed", err)
		}
	}

	if err := s.repo.UpdatePeriod(ctx, *period); err != nil {
		return nil, errors.Dependency("updating voting period failed", err)
	}
	s.recordAudit(ctx, actor, "period.update", id, before, *period)
	return period, nil
}

// Close transitions a period to CLOSED and stamps its end date. Closing an
// already closed period is a conflict.
func (s *PeriodService) Close(ctx context.Context, id, actor string) (*models.VotingPeriod, error) {
	period, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if period.Status == models.PeriodClosed {
		return nil, errors.Conflictf("voting period %q is already closed", id).WithCode(CodeAlreadyClosed)
	}
	before := *period

	period.Status = models.PeriodClosed
	period.EndDate = time.Now()
	if err := s.repo.UpdatePeriod(ctx, *period); err != nil {
		return nil, errors.Dependency("closing voting period failed", err)
	}

	s.recordAudit(ctx, actor, "period.close", id, before, *period)
	s.hub.BroadcastPeriodStatus(id, period.Status)
	s.log.Info("Voting period closed", "period_id", id)
	return period, nil
}

// Activate opens a PENDING period for voting. Activating an ACTIVE period
// is a no-op; a CLOSED period stays closed and can only be reopened through
// Reset.
func (s *PeriodService) Activate(ctx context.Context, id, actor string) (*models.VotingPeriod, error) {
	period, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if period.Status == models.PeriodClosed {
		return nil, errors.Conflictf("voting period %q is already closed", id).WithCode(CodeAlreadyClosed)
	}
	if period.Status == models.PeriodActive {
		return period, nil
	}
	before := *period

	period.Status = models.PeriodActive
	if err := s.repo.UpdatePeriod(ctx, *period); err != nil {
		return nil, errors.Dependency("activating voting period failed", err)
	}

	s.recordAudit(ctx, actor, "period.activate", id, before, *period)
	s.hub.BroadcastPeriodStatus(id, period.Status)
	s.log.Info("Voting period activated", "period_id", id)
	return period, nil
}

// Reset deletes every nomination and winner record of a period and reopens
// it as ACTIVE, leaving the period itself in place. Deleted winner rows take
// their yearly flags with them. The outcome is always a ResetResult;
// failures surface in its Status.
func (s *PeriodService) Reset(ctx context.Context, id, actor string) ResetResult {
	period, err := s.repo.GetPeriod(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return ResetResult{Status: "not_found", Message: fmt.Sprintf("voting period %q not found", id)}
		}
		return ResetResult{Status: "error", Message: "voting period lookup failed"}
	}

	noms, err := s.repo.DeleteNominationsForPeriod(ctx, id)
	if err != nil {
		s.log.Error("Resetting nominations failed", "period_id", id, "error", err)
		return ResetResult{Status: "error", Message: "deleting nominations failed"}
	}
	winners, err := s.repo.DeleteWinnersForPeriod(ctx, id)
	if err != nil {
		s.log.Error("Resetting winners failed", "period_id", id, "error", err)
		return ResetResult{
			Status: "partial", Message: "nominations deleted but deleting winners failed",
			NominationsDeleted: noms,
		}
	}

	// A reset returns the period to voting, even if winners had already
	// closed it.
	if period.Status != models.PeriodActive {
		period.Status = models.PeriodActive
		if err := s.repo.UpdatePeriod(ctx, *period); err != nil {
			s.log.Error("Reopening period failed", "period_id", id, "error", err)
			return ResetResult{
				Status: "partial", Message: "voting data deleted but reopening the period failed",
				NominationsDeleted: noms, WinnersDeleted: winners,
			}
		}
		s.hub.BroadcastPeriodStatus(id, period.Status)
	}

	s.cache.Invalidate(id)
	s.recordAudit(ctx, actor, "period.reset", id, nil,
		map[string]int{"nominations_deleted": noms, "winners_deleted": winners})
	s.log.Info("Voting period reset", "period_id", id, "nominations", noms, "winners", winners)
	return ResetResult{
		Status:             "ok",
		Message:            fmt.Sprintf("deleted %d nominations and %d winner records", noms, winners),
		NominationsDeleted: noms,
		WinnersDeleted:     winners,
	}
}

// Delete removes a period together with its nominations and winner history.
func (s *PeriodService) Delete(ctx context.Context, id, actor string) error {
	period, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.repo.DeleteNominationsForPeriod(ctx, id); err != nil {
		return errors.Dependency("deleting nominations failed", err)
	}
	if _, err := s.repo.DeleteWinnersForPeriod(ctx, id); err != nil {
		return errors.Dependency("deleting winner history failed", err)
	}
	if err := s.repo.DeletePeriod(ctx, id); err != nil {
		return errors.Dependency("deleting voting period failed", err)
	}

	s.cache.Invalidate(id)
	s.recordAudit(ctx, actor, "period.delete", id, *period, nil)
	s.log.Info("Voting period deleted", "period_id", id)
	return nil
}

func (s *PeriodService) broadcastWinners(periodID string, groupWinners int) {
	s.hub.BroadcastWinnersRecorded(periodID, groupWinners)
}

// recordAudit logs audit failures and carries on. Audit is an observer of
// state changes, never a gate.
func (s *PeriodService) recordAudit(ctx context.Context, actor, action, periodID string, before, after any) {
	if err := s.audit.Record(ctx, actor, action, "voting_period", periodID, before, after); err != nil {
		s.log.Warn("Audit record failed", "action", action, "period_id", periodID, "error", err)
	}
}
