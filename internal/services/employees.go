package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/mkowalik/peervote/internal/audit"
	"github.com/mkowalik/peervote/internal/errors"
	"github.com/mkowalik/peervote/internal/logger"
	"github.com/mkowalik/peervote/internal/models"
	"github.com/mkowalik/peervote/internal/repository"
)

// EmployeeService exposes the employee directory. The directory is
// read-only for voting; the only write path is the administrative CSV
// import.
type EmployeeService struct {
	log   logger.Logger
	repo  repository.EmployeeRepository
	audit audit.Recorder
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(log logger.Logger, repo repository.EmployeeRepository, recorder audit.Recorder) *EmployeeService {
	return &EmployeeService{log: log, repo: repo, audit: recorder}
}

// FindByID returns an employee by id.
func (s *EmployeeService) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	emp, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("employee %q not found", id).WithCode(CodeEmployeeNotFound)
		}
		return nil, errors.Dependency("employee lookup failed", err)
	}
	return emp, nil
}

// FindByEmail returns an employee by email, case-insensitively.
func (s *EmployeeService) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	emp, err := s.repo.GetEmployeeByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("no employee with email %q", email).WithCode(CodeEmployeeNotFound)
		}
		return nil, errors.Dependency("employee lookup failed", err)
	}
	return emp, nil
}

// ListActive returns all active employees.
func (s *EmployeeService) ListActive(ctx context.Context) ([]models.Employee, error) {
	emps, err := s.repo.ListActiveEmployees(ctx)
	if err != nil {
		return nil, errors.Dependency("listing employees failed", err)
	}
	return emps, nil
}

// CountActive returns the number of active employees.
func (s *EmployeeService) CountActive(ctx context.Context) (int, error) {
	n, err := s.repo.CountActiveEmployees(ctx)
	if err != nil {
		return 0, errors.Dependency("counting employees failed", err)
	}
	return n, nil
}

// ImportResult summarizes a directory import.
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// csv column order: id,name,email,department,position,location,active.
// The header row is recognized and skipped; id may be empty, in which case
// one is generated.
const csvColumns = 7

// ImportCSV reads employee records from r and upserts them into the
// directory. Rows that cannot be parsed are skipped and reported in the
// result, they never abort the import.
func (s *EmployeeService) ImportCSV(ctx context.Context, r io.Reader, actor string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = csvColumns
	reader.TrimLeadingSpace = true

	result := &ImportResult{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "id") {
			continue
		}

		emp, err := employeeFromRecord(record)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		created, err := s.repo.UpsertEmployee(ctx, emp)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	if err := s.audit.Record(ctx, actor, "employees.import", "employee", "", nil, result); err != nil {
		s.log.Warn("Audit record failed", "action", "employees.import", "error", err)
	}
	s.log.Info("Employee import finished",
		"created", result.Created, "updated", result.Updated, "skipped", result.Skipped)
	return result, nil
}

func employeeFromRecord(record []string) (models.Employee, error) {
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}
	emp := models.Employee{
		ID:         record[0],
		Name:       record[1],
		Email:      strings.ToLower(record[2]),
		Department: record[3],
		Position:   record[4],
		Location:   record[5],
	}
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	if emp.Name == "" {
		return models.Employee{}, fmt.Errorf("name is required")
	}
	if emp.Email == "" {
		return models.Employee{}, fmt.Errorf("email is required")
	}
	switch strings.ToLower(record[6]) {
	case "", "true", "1", "yes", "active":
		emp.Active = true
	case "false", "0", "no", "inactive":
		emp.Active = false
	default:
		return models.Employee{}, fmt.Errorf("unrecognized active value %q", record[6])
	}
	return emp, nil
}
