package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mkowalik/peervote/internal/audit"
	"github.com/mkowalik/peervote/internal/errors"
	"github.com/mkowalik/peervote/internal/logger"
	"github.com/mkowalik/peervote/internal/models"
	"github.com/mkowalik/peervote/internal/notify"
	"github.com/mkowalik/peervote/internal/repository"
)

// NominationServiceRepository defines the repository methods needed by
// NominationService.
type NominationServiceRepository interface {
	GetPeriod(ctx context.Context, id string) (*models.VotingPeriod, error)
	CreateNomination(ctx context.Context, n models.Nomination) error
	GetNomination(ctx context.Context, id string) (*models.Nomination, error)
	GetNominationByNominator(ctx context.Context, periodID, nominatorID string) (*models.Nomination, error)
	ListNominationsForPeriod(ctx context.Context, periodID string) ([]models.Nomination, error)
	UpdateNomination(ctx context.Context, n models.Nomination) error
	DeleteNomination(ctx context.Context, id string) error
}

// UpdateNominationInput carries the mutable fields of a nomination. Nil
// fields are left unchanged; the nominee and nominator are fixed at
// submission.
type UpdateNominationInput struct {
	Reason   *string
	Criteria *models.Criteria
}

// NominationService handles nomination submission and maintenance. Every
// mutation invalidates the period's cached results.
type NominationService struct {
	log         logger.Logger
	repo        NominationServiceRepository
	validation  *ValidationService
	eligibility *EligibilityService
	cache       *ResultCache
	audit       audit.Recorder
	notif       notify.Notifier
}

// NewNominationService creates a new NominationService.
func NewNominationService(log logger.Logger, repo NominationServiceRepository,
	validation *ValidationService, eligibility *EligibilityService, cache *ResultCache,
	recorder audit.Recorder, notifier notify.Notifier) *NominationService {
	return &NominationService{
		log:         log,
		repo:        repo,
		validation:  validation,
		eligibility: eligibility,
		cache:       cache,
		audit:       recorder,
		notif:       notifier,
	}
}

// Create validates and stores a nomination in the given voting period.
func (s *NominationService) Create(ctx context.Context, periodID string, input NominationInput) (*models.Nomination, error) {
	period, err := s.repo.GetPeriod(ctx, periodID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("voting period %q not found", periodID).WithCode(CodePeriodNotFound)
		}
		return nil, errors.Dependency("voting period lookup failed", err)
	}
	if period.Status != models.PeriodActive {
		return nil, errors.Validationf("voting period %d-%02d is not accepting nominations", period.Year, period.Month).
			WithCode(CodePeriodNotActive)
	}

	validated, err := s.validation.Validate(ctx, input, periodID)
	if err != nil {
		return nil, err
	}

	if ok, err := s.eligibility.CanBeNominated(ctx, validated.Employee); err != nil {
		return nil, errors.Dependency("eligibility check failed", err)
	} else if !ok {
		return nil, errors.Validationf("%s is not eligible to be nominated", validated.Employee.Name).
			WithCode(CodeNotEligible)
	}
	// The nominator may be unresolved under the development bypass, in
	// which case only the nominee-side policy applies.
	if nominator, err := s.validation.repo.GetEmployee(ctx, validated.NominatorID); err == nil {
		if ok, err := s.eligibility.CanNominate(ctx, *nominator); err != nil {
			return nil, errors.Dependency("eligibility check failed", err)
		} else if !ok {
			return nil, errors.Validation("you are not eligible to submit nominations").
				WithCode(CodeNotEligible)
		}
	}

	nomination := models.Nomination{
		ID:            uuid.NewString(),
		PeriodID:      periodID,
		EmployeeID:    validated.Employee.ID,
		NominatorID:   validated.NominatorID,
		NominatorName: strings.TrimSpace(input.NominatorName),
		Reason:        strings.TrimSpace(input.Reason),
		Criteria:      input.Criteria,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.CreateNomination(ctx, nomination); err != nil {
		return nil, errors.Dependency("saving nomination failed", err)
	}

	s.cache.Invalidate(periodID)
	s.recordAudit(ctx, nomination.NominatorID, "nomination.create", nomination.ID, nil, nomination)
	s.thankNominator(ctx, input.NominatorEmail, *period)
	s.log.Info("Nomination created", "nomination_id", nomination.ID,
		"period_id", periodID, "employee_id", nomination.EmployeeID)
	return &nomination, nil
}

// Get returns a nomination by id.
func (s *NominationService) Get(ctx context.Context, id string) (*models.Nomination, error) {
	n, err := s.repo.GetNomination(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("nomination %q not found", id).WithCode(CodeNominationNotFound)
		}
		return nil, errors.Dependency("nomination lookup failed", err)
	}
	return n, nil
}

// GetByNominator returns the nomination a nominator submitted in a period,
// if any.
func (s *NominationService) GetByNominator(ctx context.Context, periodID, nominatorID string) (*models.Nomination, error) {
	n, err := s.repo.GetNominationByNominator(ctx, periodID, nominatorID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("no nomination by %q in this period", nominatorID).
				WithCode(CodeNominationNotFound)
		}
		return nil, errors.Dependency("nomination lookup failed", err)
	}
	return n, nil
}

// ListForPeriod returns all nominations of a period in submission order.
func (s *NominationService) ListForPeriod(ctx context.Context, periodID string) ([]models.Nomination, error) {
	noms, err := s.repo.ListNominationsForPeriod(ctx, periodID)
	if err != nil {
		return nil, errors.Dependency("listing nominations failed", err)
	}
	return noms, nil
}

// Update modifies a nomination's reason or criteria, re-running the
// corresponding submission checks.
func (s *NominationService) Update(ctx context.Context, id string, input UpdateNominationInput, actor string) (*models.Nomination, error) {
	n, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *n

	if input.Reason != nil {
		reason := strings.TrimSpace(*input.Reason)
		if n := utf8.RuneCountInString(reason); n < ReasonMinLength || n > ReasonMaxLength {
			return nil, errors.Validationf("reason must be between %d and %d characters",
				ReasonMinLength, ReasonMaxLength).WithCode(CodeInvalidReason)
		}
		n.Reason = reason
	}
	if input.Criteria != nil {
		for _, field := range input.Criteria.Fields() {
			if field.Value < CriteriaMin || field.Value > CriteriaMax {
				return nil, errors.Validationf("criteria %q must be between %d and %d",
					field.Name, CriteriaMin, CriteriaMax).WithCode(CodeInvalidCriteria)
			}
		}
		n.Criteria = *input.Criteria
	}

	now := time.Now()
	n.UpdatedAt = &now
	if err := s.repo.UpdateNomination(ctx, *n); err != nil {
		return nil, errors.Dependency("updating nomination failed", err)
	}

	s.cache.Invalidate(n.PeriodID)
	s.recordAudit(ctx, actor, "nomination.update", id, before, *n)
	return n, nil
}

// Delete removes a nomination.
func (s *NominationService) Delete(ctx context.Context, id, actor string) error {
	n, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteNomination(ctx, id); err != nil {
		return errors.Dependency("deleting nomination failed", err)
	}

	s.cache.Invalidate(n.PeriodID)
	s.recordAudit(ctx, actor, "nomination.delete", id, *n, nil)
	s.log.Info("Nomination deleted", "nomination_id", id, "period_id", n.PeriodID)
	return nil
}

func (s *NominationService) thankNominator(ctx context.Context, email string, period models.VotingPeriod) {
	email = strings.TrimSpace(email)
	if email == "" {
		return
	}
	subject := fmt.Sprintf("Your nomination for %d-%02d was received", period.Year, period.Month)
	body := "Thank you for recognizing a colleague. Your nomination has been recorded."
	if err := s.notif.Notify(ctx, email, subject, body); err != nil {
		s.log.Warn("Nominator notification failed", "error", err)
	}
}

func (s *NominationService) recordAudit(ctx context.Context, actor, action, nominationID string, before, after any) {
	if err := s.audit.Record(ctx, actor, action, "nomination", nominationID, before, after); err != nil {
		s.log.Warn("Audit record failed", "action", action, "nomination_id", nominationID, "error", err)
	}
}
