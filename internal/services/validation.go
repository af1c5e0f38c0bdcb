package services

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/mkowalik/peervote/internal/errors"
	"github.com/mkowalik/peervote/internal/logger"
	"github.com/mkowalik/peervote/internal/models"
	"github.com/mkowalik/peervote/internal/repository"
)

// ValidationServiceRepository defines the repository methods needed by
// ValidationService. All access is read-only.
type ValidationServiceRepository interface {
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error)
	GetNominationByNominator(ctx context.Context, periodID, nominatorID string) (*models.Nomination, error)
}

// NominationInput is a nomination as submitted, before validation.
type NominationInput struct {
	EmployeeID     string
	NominatorEmail string
	NominatorName  string
	Reason         string
	Criteria       models.Criteria
}

// ValidatedNomination carries the resolved entities of a submission that
// passed every check.
type ValidatedNomination struct {
	Employee    models.Employee
	NominatorID string
}

// ValidationService enforces all submission-time invariants on nominations.
// The development bypass disables only the nominator-existence check; every
// other check always runs.
type ValidationService struct {
	log               logger.Logger
	repo              ValidationServiceRepository
	developmentBypass bool
}

// NewValidationService creates a new ValidationService
func NewValidationService(log logger.Logger, repo ValidationServiceRepository, developmentBypass bool) *ValidationService {
	return &ValidationService{log: log, repo: repo, developmentBypass: developmentBypass}
}

// Validate runs the submission checks in order, each independently
// reportable, and returns the resolved nominee and nominator identity.
// It performs no writes.
func (s *ValidationService) Validate(ctx context.Context, input NominationInput, periodID string) (*ValidatedNomination, error) {
	// 1. Nominated employee exists and is active.
	employee, err := s.repo.GetEmployee(ctx, input.EmployeeID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("nominated employee %q not found", input.EmployeeID).
				WithCode(CodeEmployeeNotFound)
		}
		return nil, errors.Dependency("employee lookup failed", err)
	}
	if !employee.Active {
		return nil, errors.Validationf("employee %q is not active", employee.Name).
			WithCode(CodeEmployeeInactive)
	}

	// 2. Nominator identity is well-formed and, outside development mode,
	// resolves to an active employee.
	nominatorID, nominator, err := s.resolveNominator(ctx, input.NominatorEmail)
	if err != nil {
		return nil, err
	}

	// 3. Reason length after trimming, counted in runes.
	reason := strings.TrimSpace(input.Reason)
	if n := utf8.RuneCountInString(reason); n < ReasonMinLength || n > ReasonMaxLength {
		return nil, errors.Validationf("reason must be between %d and %d characters", ReasonMinLength, ReasonMaxLength).
			WithCode(CodeInvalidReason)
	}

	// 4. Every criteria score present and in range.
	for _, field := range input.Criteria.Fields() {
		if field.Value < CriteriaMin || field.Value > CriteriaMax {
			return nil, errors.Validationf("criteria %q must be between %d and %d", field.Name, CriteriaMin, CriteriaMax).
				WithCode(CodeInvalidCriteria)
		}
	}

	// 5. One nomination per nominator per period. Read-then-write: a
	// concurrent submission can race past this check, which is an accepted
	// limitation of the storage model.
	existing, err := s.repo.GetNominationByNominator(ctx, periodID, nominatorID)
	if err != nil && err != repository.ErrNotFound {
		return nil, errors.Dependency("nomination lookup failed", err)
	}
	if existing != nil {
		return nil, errors.Conflict("you have already submitted a nomination for this voting period").
			WithCode(CodeDuplicateNomination)
	}

	// 6. No self-nomination.
	if employee.ID == nominatorID ||
		(nominator != nil && nominator.ID == employee.ID) ||
		strings.EqualFold(strings.TrimSpace(employee.Email), strings.TrimSpace(input.NominatorEmail)) {
		return nil, errors.Validation("you cannot nominate yourself").
			WithCode(CodeSelfNomination)
	}

	return &ValidatedNomination{Employee: *employee, NominatorID: nominatorID}, nil
}

// resolveNominator maps the submitted email to a stable nominator identity:
// the matching employee's id, or the normalized email itself when the
// development bypass is active and no directory entry exists.
func (s *ValidationService) resolveNominator(ctx context.Context, email string) (string, *models.Employee, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", nil, errors.Validationf("nominator email %q is not valid", email).
			WithCode(CodeInvalidNominator)
	}

	nominator, err := s.repo.GetEmployeeByEmail(ctx, email)
	if err != nil {
		if err != repository.ErrNotFound {
			return "", nil, errors.Dependency("nominator lookup failed", err)
		}
		if s.developmentBypass {
			return strings.ToLower(email), nil, nil
		}
		return "", nil, errors.Validationf("nominator %q is not a known employee", email).
			WithCode(CodeInvalidNominator)
	}

	if !nominator.Active && !s.developmentBypass {
		return "", nil, errors.Validationf("nominator %q is not an active employee", email).
			WithCode(CodeInvalidNominator)
	}
	return nominator.ID, nominator, nil
}
