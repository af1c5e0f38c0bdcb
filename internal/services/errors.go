package services

// Machine-readable error codes attached to service errors. Transport
// adapters forward them verbatim so clients can branch without parsing
// messages.
const (
	CodeEmployeeNotFound    = "EMPLOYEE_NOT_FOUND"
	CodeEmployeeInactive    = "EMPLOYEE_INACTIVE"
	CodeInvalidNominator    = "INVALID_NOMINATOR"
	CodeInvalidReason       = "INVALID_REASON"
	CodeInvalidCriteria     = "INVALID_CRITERIA"
	CodeDuplicateNomination = "DUPLICATE_NOMINATION"
	CodeSelfNomination      = "SELF_NOMINATION"
	CodeNotEligible         = "NOT_ELIGIBLE"

	CodePeriodNotFound  = "VOTING_PERIOD_NOT_FOUND"
	CodeDuplicatePeriod = "DUPLICATE_PERIOD"
	CodeAlreadyClosed   = "ALREADY_CLOSED"
	CodePeriodNotActive = "PERIOD_NOT_ACTIVE"

	CodeNominationNotFound = "NOMINATION_NOT_FOUND"
	CodeWinnerNotFound     = "WINNER_NOT_FOUND"
	CodeNoNominations      = "NO_NOMINATIONS"
)

// Reason text bounds for a nomination, inclusive, after trimming.
const (
	ReasonMinLength = 10
	ReasonMaxLength = 500
)

// Criteria score bounds, inclusive.
const (
	CriteriaMin = 1
	CriteriaMax = 5
)

// Placeholder values used when a referenced employee record is missing.
// Missing directory data degrades the display, never the computation.
const (
	UnknownEmployeeName = "Unknown Employee"
	UnknownField        = "Unknown"
)
