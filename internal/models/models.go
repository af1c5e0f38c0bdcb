package models

import (
	"encoding/json"
	"time"
)

// PeriodStatus is the lifecycle state of a voting period.
type PeriodStatus string

const (
	PeriodPending PeriodStatus = "PENDING"
	PeriodActive  PeriodStatus = "ACTIVE"
	PeriodClosed  PeriodStatus = "CLOSED"
)

// WinnerType distinguishes the cross-group drawn winner from per-group winners.
type WinnerType string

const (
	WinnerGeneral WinnerType = "GENERAL"
	WinnerByGroup WinnerType = "BY_GROUP"
)

// GroupLabel identifies the voting group a nominee is tallied in.
// The zero value is the default group; a named label only exists when the
// group assigner resolved one. It formats as "default" at the presentation
// boundary and nowhere else.
type GroupLabel struct {
	name string
}

// NamedGroup returns a label for an explicitly resolved group name.
// An empty name yields the default label.
func NamedGroup(name string) GroupLabel {
	return GroupLabel{name: name}
}

// IsDefault reports whether the label is the unresolved default group.
func (g GroupLabel) IsDefault() bool {
	return g.name == ""
}

func (g GroupLabel) String() string {
	if g.name == "" {
		return "default"
	}
	return g.name
}

func (g GroupLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

func (g *GroupLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "default" {
		s = ""
	}
	g.name = s
	return nil
}

// Criteria holds the six per-nomination scores. Every field must be in [1,5];
// a zero field means the score was not supplied.
type Criteria struct {
	Teamwork      int `json:"teamwork"`
	Communication int `json:"communication"`
	Innovation    int `json:"innovation"`
	Reliability   int `json:"reliability"`
	Leadership    int `json:"leadership"`
	Helpfulness   int `json:"helpfulness"`
}

// Fields returns the criteria as (name, value) pairs in declaration order.
func (c Criteria) Fields() []CriteriaField {
	return []CriteriaField{
		{"teamwork", c.Teamwork},
		{"communication", c.Communication},
		{"innovation", c.Innovation},
		{"reliability", c.Reliability},
		{"leadership", c.Leadership},
		{"helpfulness", c.Helpfulness},
	}
}

// CriteriaField is one named criteria score.
type CriteriaField struct {
	Name  string
	Value int
}

// CriteriaAverages holds the per-field averages of a nominee's criteria,
// rounded to one decimal place.
type CriteriaAverages struct {
	Teamwork      float64 `json:"teamwork"`
	Communication float64 `json:"communication"`
	Innovation    float64 `json:"innovation"`
	Reliability   float64 `json:"reliability"`
	Leadership    float64 `json:"leadership"`
	Helpfulness   float64 `json:"helpfulness"`
}

// Mean returns the arithmetic mean of the six averaged fields.
func (a CriteriaAverages) Mean() float64 {
	return (a.Teamwork + a.Communication + a.Innovation + a.Reliability + a.Leadership + a.Helpfulness) / 6
}

// Employee is one entry of the employee directory.
type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Location   string `json:"location"`
	Active     bool   `json:"active"`
}

// Nomination is one employee's vote for another within a voting period.
type Nomination struct {
	ID            string     `json:"id"`
	PeriodID      string     `json:"period_id"`
	EmployeeID    string     `json:"employee_id"`
	NominatorID   string     `json:"nominator_id"`
	NominatorName string     `json:"nominator_name"`
	Reason        string     `json:"reason"`
	Criteria      Criteria   `json:"criteria"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// VotingPeriod is a bounded window during which nominations are accepted.
type VotingPeriod struct {
	ID          string       `json:"id"`
	Year        int          `json:"year"`
	Month       int          `json:"month"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     time.Time    `json:"end_date"`
	Status      PeriodStatus `json:"status"`
	Description string       `json:"description,omitempty"`
}

// VoteResult is the computed standing of one nominee within their voting
// group. It is derived on demand and never persisted directly.
type VoteResult struct {
	EmployeeID   string           `json:"employee_id"`
	EmployeeName string           `json:"employee_name"`
	Department   string           `json:"department"`
	Position     string           `json:"position"`
	VotingGroup  GroupLabel       `json:"voting_group"`
	Count        int              `json:"count"`
	Percentage   float64          `json:"percentage"`
	Rank         int              `json:"rank"`
	AvgCriteria  CriteriaAverages `json:"avg_criteria"`
}

// Reaction is one user's emoji reaction to a winner record. A user may react
// with several distinct emoji but only once with each.
type Reaction struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// WinnerHistory is the permanent record of one winner for a voting period.
// Rows are replaced wholesale when winners are recomputed; afterwards only
// the yearly flag and reactions may change.
type WinnerHistory struct {
	ID             string           `json:"id"`
	PeriodID       string           `json:"period_id"`
	Year           int              `json:"year"`
	Month          int              `json:"month"`
	EmployeeID     string           `json:"employee_id"`
	EmployeeName   string           `json:"employee_name"`
	Department     string           `json:"department"`
	Position       string           `json:"position"`
	Count          int              `json:"count"`
	Percentage     float64          `json:"percentage"`
	Rank           int              `json:"rank"`
	AvgCriteria    CriteriaAverages `json:"avg_criteria"`
	VotingGroup    GroupLabel       `json:"voting_group"`
	WinnerType     WinnerType       `json:"winner_type"`
	IsYearlyWinner bool             `json:"is_yearly_winner"`
	Reactions      []Reaction       `json:"reactions,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// EligibilityConfig is the singleton policy controlling who may nominate and
// be nominated. The zero value allows everyone.
type EligibilityConfig struct {
	ExcludedDepartments []string `json:"excluded_departments,omitempty"`
	ExcludedPositions   []string `json:"excluded_positions,omitempty"`
	ExcludedEmployeeIDs []string `json:"excluded_employee_ids,omitempty"`
}

// VotingGroupConfig is the singleton configuration of the group assigner and
// the winners formula. Lookup tables map normalized (trimmed, lower-cased)
// location or department values to group names.
type VotingGroupConfig struct {
	Strategy           string            `json:"strategy"`
	LocationMap        map[string]string `json:"location_map,omitempty"`
	DepartmentMap      map[string]string `json:"department_map,omitempty"`
	MixedLocationMap   map[string]string `json:"mixed_location_map,omitempty"`
	MixedDepartmentMap map[string]string `json:"mixed_department_map,omitempty"`
	CustomMap          map[string]string `json:"custom_map,omitempty"`
	Fallback           string            `json:"fallback,omitempty"`
	WinnersDivisor     int               `json:"winners_divisor,omitempty"`
	MinWinners         int               `json:"min_winners,omitempty"`
}

// Group assignment strategies.
const (
	StrategyLocation   = "location"
	StrategyDepartment = "department"
	StrategyMixed      = "mixed"
	StrategyCustom     = "custom"
)

// WSMessage is an envelope for messages broadcast to websocket clients.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
