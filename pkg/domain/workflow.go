package domain

// WorkflowStatus is the review state of a compliance assessment.
type WorkflowStatus string

// Canonical assessment workflow states.
const (
	WorkflowOpen           WorkflowStatus = "open"
	WorkflowInReview       WorkflowStatus = "inReview"
	WorkflowAssessed       WorkflowStatus = "assessed"
	WorkflowReviewRequired WorkflowStatus = "reviewRequired"
)

// workflowTransitions is the fixed directed graph of allowed moves.
// Anything not listed is rejected.
var workflowTransitions = map[WorkflowStatus][]WorkflowStatus{
	WorkflowOpen:           {WorkflowInReview},
	WorkflowInReview:       {WorkflowAssessed, WorkflowReviewRequired},
	WorkflowAssessed:       {WorkflowReviewRequired},
	WorkflowReviewRequired: {WorkflowInReview},
}

// CanTransitionTo reports whether the workflow graph allows moving from
// the receiver state to next.
func (s WorkflowStatus) CanTransitionTo(next WorkflowStatus) bool {
	for _, allowed := range workflowTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrOpen substitutes the default state for assessments created before the
// workflow existed.
func (s WorkflowStatus) OrOpen() WorkflowStatus {
	if s == "" {
		return WorkflowOpen
	}
	return s
}

// AuditEntry records one workflow action on an assessment.
type AuditEntry struct {
	Timestamp  string         `json:"timestamp"`
	User       string         `json:"user"`
	Action     string         `json:"action"`
	FromStatus WorkflowStatus `json:"fromStatus"`
	ToStatus   WorkflowStatus `json:"toStatus"`
	Comment    string         `json:"comment"`
}
