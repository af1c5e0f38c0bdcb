package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/mkowalik/peervote/internal/errors"
	"github.com/mkowalik/peervote/internal/logger"
	"github.com/mkowalik/peervote/internal/models"
	"github.com/mkowalik/peervote/internal/repository"
)

// ResultsServiceRepository defines the repository methods needed by
// ResultsService.
type ResultsServiceRepository interface {
	GetPeriod(ctx context.Context, id string) (*models.VotingPeriod, error)
	ListNominationsForPeriod(ctx context.Context, periodID string) ([]models.Nomination, error)
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	CountActiveEmployees(ctx context.Context) (int, error)
}

// GroupAssigner resolves an employee's voting group.
type GroupAssigner interface {
	Assign(emp models.Employee) models.GroupLabel
}

// GroupResults is the ranked standing of one voting group.
type GroupResults struct {
	Group            models.GroupLabel   `json:"group"`
	TotalNominations int                 `json:"total_nominations"`
	Results          []models.VoteResult `json:"results"`
}

// PeriodResults is the full aggregation output for one voting period.
type PeriodResults struct {
	PeriodID         string              `json:"period_id"`
	Groups           []GroupResults      `json:"groups"`
	Results          []models.VoteResult `json:"results"`
	TotalNominations int                 `json:"total_nominations"`
	AverageVotes     float64             `json:"average_votes"`
	ComputedAt       time.Time           `json:"computed_at"`
}

// ResultsService tallies nominations into ranked per-group results. The
// computation is a pure function of persisted state; the cache only saves
// repeated work inside one process.
type ResultsService struct {
	log    logger.Logger
	repo   ResultsServiceRepository
	groups GroupAssigner
	cache  *ResultCache
}

// NewResultsService creates a new ResultsService
func NewResultsService(log logger.Logger, repo ResultsServiceRepository, groups GroupAssigner, cache *ResultCache) *ResultsService {
	return &ResultsService{log: log, repo: repo, groups: groups, cache: cache}
}

// ComputeResults returns the aggregated results for a period, serving from
// the cache when a fresh entry exists.
func (s *ResultsService) ComputeResults(ctx context.Context, periodID string) (*PeriodResults, error) {
	if cached, ok := s.cache.Get(periodID); ok {
		return cached, nil
	}

	results, err := s.RecomputeResults(ctx, periodID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(periodID, results)
	return results, nil
}

// RecomputeResults aggregates from persisted state, bypassing the cache.
func (s *ResultsService) RecomputeResults(ctx context.Context, periodID string) (*PeriodResults, error) {
	if _, err := s.repo.GetPeriod(ctx, periodID); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("voting period %q not found", periodID).WithCode(CodePeriodNotFound)
		}
		return nil, errors.Dependency("voting period lookup failed", err)
	}

	nominations, err := s.repo.ListNominationsForPeriod(ctx, periodID)
	if err != nil {
		return nil, errors.Dependency("nomination query failed", err)
	}

	// Partition by voting group, preserving first-seen order within and
	// across groups so that remaining ties stay stable.
	partition := newGroupPartition()
	for _, nom := range nominations {
		emp := s.lookupEmployee(ctx, nom.EmployeeID)
		group := s.groups.Assign(emp)
		partition.add(group, nom, emp)
	}

	var groups []GroupResults
	for _, label := range sortedLabels(partition) {
		bucket := partition.bucket(label)
		groups = append(groups, tallyGroup(label, bucket))
	}

	// Merge: groups are already ordered lexicographically by label, and
	// each group's results by rank.
	var merged []models.VoteResult
	for _, g := range groups {
		merged = append(merged, g.Results...)
	}

	total := len(nominations)
	activeEmployees, err := s.repo.CountActiveEmployees(ctx)
	if err != nil {
		return nil, errors.Dependency("employee count failed", err)
	}
	averageVotes := 0.0
	if activeEmployees > 0 {
		averageVotes = round2(float64(total) / float64(activeEmployees) * 100)
	}

	return &PeriodResults{
		PeriodID:         periodID,
		Groups:           groups,
		Results:          merged,
		TotalNominations: total,
		AverageVotes:     averageVotes,
		ComputedAt:       time.Now(),
	}, nil
}

// lookupEmployee fetches the nominee's directory record, degrading to a
// placeholder when the record is missing so aggregation never blocks on
// directory gaps.
func (s *ResultsService) lookupEmployee(ctx context.Context, id string) models.Employee {
	emp, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		if err != repository.ErrNotFound {
			s.log.Warn("Employee lookup failed during aggregation", "employee_id", id, "error", err)
		}
		return models.Employee{
			ID:         id,
			Name:       UnknownEmployeeName,
			Department: UnknownField,
			Position:   UnknownField,
		}
	}
	return *emp
}

// groupPartition is an insertion-ordered mapping from group label to the
// nominations tallied in it.
type groupPartition struct {
	order   []models.GroupLabel
	buckets map[string]*groupBucket
}

type groupBucket struct {
	order    []string // nominee ids in first-seen order
	nominees map[string]*nomineeTally
	total    int
}

type nomineeTally struct {
	employee models.Employee
	count    int
	sums     [6]int
}

func newGroupPartition() *groupPartition {
	return &groupPartition{buckets: make(map[string]*groupBucket)}
}

func (p *groupPartition) add(group models.GroupLabel, nom models.Nomination, emp models.Employee) {
	key := group.String()
	bucket, ok := p.buckets[key]
	if !ok {
		bucket = &groupBucket{nominees: make(map[string]*nomineeTally)}
		p.buckets[key] = bucket
		p.order = append(p.order, group)
	}

	tally, ok := bucket.nominees[nom.EmployeeID]
	if !ok {
		tally = &nomineeTally{employee: emp}
		bucket.nominees[nom.EmployeeID] = tally
		bucket.order = append(bucket.order, nom.EmployeeID)
	}

	tally.count++
	for i, field := range nom.Criteria.Fields() {
		tally.sums[i] += field.Value
	}
	bucket.total++
}

func (p *groupPartition) bucket(label models.GroupLabel) *groupBucket {
	return p.buckets[label.String()]
}

func sortedLabels(p *groupPartition) []models.GroupLabel {
	labels := make([]models.GroupLabel, len(p.order))
	copy(labels, p.order)
	sort.SliceStable(labels, func(i, j int) bool {
		return labels[i].String() < labels[j].String()
	})
	return labels
}

// tallyGroup computes averages, percentages and ranks for one group.
// Rounding happens after accumulation, never incrementally.
func tallyGroup(label models.GroupLabel, bucket *groupBucket) GroupResults {
	results := make([]models.VoteResult, 0, len(bucket.order))
	for _, id := range bucket.order {
		tally := bucket.nominees[id]
		n := float64(tally.count)
		avg := models.CriteriaAverages{
			Teamwork:      round1(float64(tally.sums[0]) / n),
			Communication: round1(float64(tally.sums[1]) / n),
			Innovation:    round1(float64(tally.sums[2]) / n),
			Reliability:   round1(float64(tally.sums[3]) / n),
			Leadership:    round1(float64(tally.sums[4]) / n),
			Helpfulness:   round1(float64(tally.sums[5]) / n),
		}
		results = append(results, models.VoteResult{
			EmployeeID:   tally.employee.ID,
			EmployeeName: tally.employee.Name,
			Department:   tally.employee.Department,
			Position:     tally.employee.Position,
			VotingGroup:  label,
			Count:        tally.count,
			Percentage:   round2(n / float64(bucket.total) * 100),
			AvgCriteria:  avg,
		})
	}

	// Rank by count descending, ties by mean average criteria descending,
	// remaining ties keep insertion order.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].AvgCriteria.Mean() > results[j].AvgCriteria.Mean()
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	return GroupResults{
		Group:            label,
		TotalNominations: bucket.total,
		Results:          results,
	}
}

// round1 rounds half-up to one decimal place.
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// round2 rounds half-up to two decimal places.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
