package services

import (
	"context"
	"strings"
	"sync"

	"github.com/mkowalik/peervote/internal/logger"
	"github.com/mkowalik/peervote/internal/models"
	"github.com/mkowalik/peervote/internal/repository"
)

// GroupService maps employees to named voting groups under the configured
// strategy. Lookup tables are held as an immutable snapshot that is rebuilt
// wholesale whenever the configuration is (re)loaded, then swapped in; it
// is never patched in place while reads may be in flight.
type GroupService struct {
	log  logger.Logger
	repo repository.ConfigRepository

	mu     sync.RWMutex
	tables *groupTables
}

// groupTables is one immutable snapshot of the assignment configuration.
type groupTables struct {
	strategy   string
	location   map[string]string
	department map[string]string
	mixedLoc   map[string]string
	mixedDept  map[string]string
	custom     map[string]string
	fallback   string
	config     models.VotingGroupConfig
}

// NewGroupService creates a new GroupService. Call Reload before the first
// assignment to pick up the stored configuration.
func NewGroupService(log logger.Logger, repo repository.ConfigRepository) *GroupService {
	return &GroupService{
		log:    log,
		repo:   repo,
		tables: buildTables(models.VotingGroupConfig{}),
	}
}

// Reload fetches the stored configuration and rebuilds the lookup snapshot.
// An absent configuration falls back to assigning everyone to the default
// group.
func (s *GroupService) Reload(ctx context.Context) error {
	cfg, err := s.repo.GetVotingGroupConfig(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			cfg = &models.VotingGroupConfig{}
		} else {
			return err
		}
	}

	tables := buildTables(*cfg)
	s.mu.Lock()
	s.tables = tables
	s.mu.Unlock()

	s.log.Info("Voting group tables rebuilt", "strategy", tables.strategy)
	return nil
}

// UpdateConfig stores a new configuration and rebuilds the snapshot.
func (s *GroupService) UpdateConfig(ctx context.Context, cfg models.VotingGroupConfig) error {
	if err := s.repo.SetVotingGroupConfig(ctx, cfg); err != nil {
		return err
	}
	return s.Reload(ctx)
}

// Config returns the configuration backing the current snapshot.
func (s *GroupService) Config() models.VotingGroupConfig {
	return s.snapshot().config
}

// Formula returns the configured winners formula. A non-positive divisor
// means the formula is unconfigured and every group yields exactly one
// winner.
func (s *GroupService) Formula() WinnersFormula {
	cfg := s.snapshot().config
	return WinnersFormula{Divisor: cfg.WinnersDivisor, MinWinners: cfg.MinWinners}
}

// Assign resolves the employee's voting group. The zero GroupLabel (default
// group) is returned when no strategy rule matches.
func (s *GroupService) Assign(emp models.Employee) models.GroupLabel {
	t := s.snapshot()
	loc := normalizeKey(emp.Location)
	dept := normalizeKey(emp.Department)

	switch t.strategy {
	case models.StrategyLocation:
		return lookupOrRaw(t.location, loc)
	case models.StrategyDepartment:
		return lookupOrRaw(t.department, dept)
	case models.StrategyMixed:
		if g, ok := lookup(t.mixedLoc, loc); ok {
			return g
		}
		if g, ok := lookup(t.mixedDept, dept); ok {
			return g
		}
		return t.applyFallback(loc, dept)
	case models.StrategyCustom:
		if g, ok := lookup(t.mixedLoc, loc); ok {
			return g
		}
		if g, ok := lookup(t.mixedDept, dept); ok {
			return g
		}
		if g, ok := lookup(t.location, loc); ok {
			return g
		}
		if g, ok := lookup(t.department, dept); ok {
			return g
		}
		if g, ok := lookup(t.custom, loc); ok {
			return g
		}
		if g, ok := lookup(t.custom, dept); ok {
			return g
		}
		return t.applyFallback(loc, dept)
	default:
		return models.GroupLabel{}
	}
}

func (s *GroupService) snapshot() *groupTables {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables
}

func (t *groupTables) applyFallback(loc, dept string) models.GroupLabel {
	switch t.fallback {
	case models.StrategyLocation:
		if loc != "" {
			return models.NamedGroup(loc)
		}
	case models.StrategyDepartment:
		if dept != "" {
			return models.NamedGroup(dept)
		}
	}
	return models.GroupLabel{}
}

func buildTables(cfg models.VotingGroupConfig) *groupTables {
	return &groupTables{
		strategy:   strings.ToLower(strings.TrimSpace(cfg.Strategy)),
		location:   normalizeTable(cfg.LocationMap),
		department: normalizeTable(cfg.DepartmentMap),
		mixedLoc:   normalizeTable(cfg.MixedLocationMap),
		mixedDept:  normalizeTable(cfg.MixedDepartmentMap),
		custom:     normalizeTable(cfg.CustomMap),
		fallback:   strings.ToLower(strings.TrimSpace(cfg.Fallback)),
		config:     cfg,
	}
}

// normalizeTable rebuilds a mapping with normalized keys, dropping entries
// whose key or value is absent.
func normalizeTable(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		key := normalizeKey(k)
		value := strings.TrimSpace(v)
		if key == "" || value == "" || strings.EqualFold(value, UnknownField) {
			continue
		}
		out[key] = value
	}
	return out
}

// normalizeKey trims and lower-cases a lookup value. The literal "Unknown"
// and the empty string are treated as absent.
func normalizeKey(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == strings.ToLower(UnknownField) {
		return ""
	}
	return v
}

func lookup(table map[string]string, key string) (models.GroupLabel, bool) {
	if key == "" {
		return models.GroupLabel{}, false
	}
	if name, ok := table[key]; ok {
		return models.NamedGroup(name), true
	}
	return models.GroupLabel{}, false
}

// lookupOrRaw resolves via the mapping table, falling back to the raw
// normalized value itself as the group name.
func lookupOrRaw(table map[string]string, key string) models.GroupLabel {
	if g, ok := lookup(table, key); ok {
		return g
	}
	if key != "" {
		return models.NamedGroup(key)
	}
	return models.GroupLabel{}
}
