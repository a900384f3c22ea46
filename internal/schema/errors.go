package schema

import (
	"fmt"
	"strings"
)

// Violation is one failed rule on one field.
type Violation struct {
	// Field is the dotted path of the field, e.g. "scores[0].id".
	Field string `json:"field"`

	// Constraint is the rule that failed ("required", "email", "gt", "float", ...).
	Constraint string `json:"constraint"`

	// Param is the rule parameter, if any ("0" for gt=0).
	Param string `json:"param,omitempty"`

	// Value is the offending input value. Nil when the field was missing.
	Value any `json:"value,omitempty"`

	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// ValidationError lists every violation found while building a record.
type ValidationError struct {
	Schema     string
	Violations []Violation
}

func (e *ValidationError) add(field, constraint, param string, value any) {
	e.Violations = append(e.Violations, Violation{
		Field:      field,
		Constraint: constraint,
		Param:      param,
		Value:      value,
		Message:    Describe(constraint, param, value),
	})
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation error(s) for %s", len(e.Violations), e.Schema)
	for _, v := range e.Violations {
		fmt.Fprintf(&b, "; %s %s", v.Field, v.Message)
	}
	return b.String()
}

// Fields returns the paths of the offending fields, in report order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// Describe turns a failed rule into a client-facing message.
func Describe(constraint, param string, value any) string {
	switch constraint {
	case constraintRequired:
		return "is required"

	case "email", "email_domain":
		return "must be a valid email address"

	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(param), ", "))

	case "gt":
		return fmt.Sprintf("must be greater than %s", param)

	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", param)

	case "min":
		if _, ok := value.(string); ok {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		return fmt.Sprintf("must be at least %s", param)

	case "max":
		if _, ok := value.(string); ok {
			return fmt.Sprintf("must not exceed %s characters", param)
		}
		return fmt.Sprintf("must not exceed %s", param)

	case constraintString:
		return "must be a string"

	case constraintInt:
		return "must be a valid integer"

	case constraintFloat:
		return "must be a valid number"

	case constraintBool:
		return "must be a boolean"

	case constraintDate:
		return "must be a valid date (YYYY-MM-DD)"

	case constraintList:
		return "must be a list"

	case constraintObject:
		return "must be an object"
	}

	if param != "" {
		return fmt.Sprintf("failed %s:%s", constraint, param)
	}
	return fmt.Sprintf("failed %s", constraint)
}
