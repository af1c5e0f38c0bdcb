package handlers

import (
	"time"

	"github.com/mkowalik/peervote/internal/models"
)

// LoginRequest is the admin login body
type LoginRequest struct {
	Password string `json:"password"`
}

// PeriodCreateRequest represents a request to open a voting period. Status
// defaults to ACTIVE; PENDING is the only other accepted value.
type PeriodCreateRequest struct {
	Year        int                 `json:"year"`
	Month       int                 `json:"month"`
	StartDate   *time.Time          `json:"start_date,omitempty"`
	EndDate     *time.Time          `json:"end_date,omitempty"`
	Description string              `json:"description,omitempty"`
	Status      models.PeriodStatus `json:"status,omitempty"`
}

// PeriodUpdateRequest represents a request to update a voting period.
// Absent fields are left unchanged.
type PeriodUpdateRequest struct {
	Year        *int       `json:"year,omitempty"`
	Month       *int       `json:"month,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// NominationCreateRequest represents a nomination submission
type NominationCreateRequest struct {
	EmployeeID     string          `json:"employee_id"`
	NominatorEmail string          `json:"nominator_email"`
	NominatorName  string          `json:"nominator_name,omitempty"`
	Reason         string          `json:"reason"`
	Criteria       models.Criteria `json:"criteria"`
}

// NominationUpdateRequest represents a request to amend a nomination
type NominationUpdateRequest struct {
	Reason   *string          `json:"reason,omitempty"`
	Criteria *models.Criteria `json:"criteria,omitempty"`
}

// ReactionRequest represents adding or removing an emoji reaction
type ReactionRequest struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name,omitempty"`
	Emoji    string `json:"emoji"`
}
