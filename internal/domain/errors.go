package domain

import "fmt"

// Error codes for the two failure classes the core can produce. There is no
// I/O anywhere in the evaluation path, so no transient error class exists.
const (
	ErrValidation     = "VALIDATION_ERROR"
	ErrRuleEvaluation = "RULE_EVALUATION_ERROR"
)

// ValidationError reports malformed or out-of-domain input. It is surfaced
// to the caller immediately and never retried.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// RuleEvaluationError records a single rule predicate that failed during a
// batch evaluation. It is logged and collected per rule; it never aborts the
// remaining rules and never propagates to the caller as a call failure.
type RuleEvaluationError struct {
	RuleID string `json:"rule_id"`
	Cause  error  `json:"-"`
}

// Error implements the error interface.
func (e *RuleEvaluationError) Error() string {
	return fmt.Sprintf("rule %s evaluation failed: %v", e.RuleID, e.Cause)
}

// Unwrap exposes the underlying predicate failure.
func (e *RuleEvaluationError) Unwrap() error {
	return e.Cause
}

// NewRuleEvaluationError wraps a predicate failure with its rule ID.
func NewRuleEvaluationError(ruleID string, cause error) *RuleEvaluationError {
	return &RuleEvaluationError{RuleID: ruleID, Cause: cause}
}
