package services

import (
	"context"
	"strings"

	"github.com/mkowalik/peervote/internal/logger"
	"github.com/mkowalik/peervote/internal/models"
	"github.com/mkowalik/peervote/internal/repository"
)

// EligibilityService decides whether an employee may nominate or be
// nominated, based on the singleton eligibility configuration. An absent
// configuration allows everyone.
type EligibilityService struct {
	log  logger.Logger
	repo repository.ConfigRepository
}

// NewEligibilityService creates a new EligibilityService
func NewEligibilityService(log logger.Logger, repo repository.ConfigRepository) *EligibilityService {
	return &EligibilityService{log: log, repo: repo}
}

// Config returns the stored eligibility policy, or the permissive default
// when none has been saved yet.
func (s *EligibilityService) Config(ctx context.Context) (models.EligibilityConfig, error) {
	cfg, err := s.repo.GetEligibilityConfig(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return models.EligibilityConfig{}, nil
		}
		return models.EligibilityConfig{}, err
	}
	return *cfg, nil
}

// UpdateConfig replaces the stored eligibility policy.
func (s *EligibilityService) UpdateConfig(ctx context.Context, cfg models.EligibilityConfig) error {
	return s.repo.SetEligibilityConfig(ctx, cfg)
}

// CanBeNominated reports whether the employee may receive nominations.
func (s *EligibilityService) CanBeNominated(ctx context.Context, emp models.Employee) (bool, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return false, err
	}
	return eligible(cfg, emp), nil
}

// CanNominate reports whether the employee may submit nominations.
// The policy is symmetric with CanBeNominated.
func (s *EligibilityService) CanNominate(ctx context.Context, emp models.Employee) (bool, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return false, err
	}
	return eligible(cfg, emp), nil
}

func eligible(cfg models.EligibilityConfig, emp models.Employee) bool {
	for _, id := range cfg.ExcludedEmployeeIDs {
		if strings.EqualFold(strings.TrimSpace(id), emp.ID) {
			return false
		}
	}
	for _, dept := range cfg.ExcludedDepartments {
		if strings.EqualFold(strings.TrimSpace(dept), strings.TrimSpace(emp.Department)) {
			return false
		}
	}
	for _, pos := range cfg.ExcludedPositions {
		if strings.EqualFold(strings.TrimSpace(pos), strings.TrimSpace(emp.Position)) {
			return false
		}
	}
	return true
}
