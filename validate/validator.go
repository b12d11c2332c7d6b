package validate

import (
	"github.com/elanza-health/hl7tree"
)

// ValidationResult represents the outcome of validating an HL7 message.
type ValidationResult interface {
	// Valid returns true if no validation errors occurred.
	Valid() bool
	// Errors returns all validation errors encountered.
	Errors() []ValidationError
	// Warnings returns all validation warnings encountered.
	Warnings() []ValidationWarning
}

// Validator validates HL7 messages against a set of rules.
type Validator interface {
	// Validate applies all rules to the message and returns the result.
	Validate(msg hl7tree.Element) ValidationResult
	// ValidateSegment validates a specific segment against applicable rules.
	ValidateSegment(seg hl7tree.Element) ValidationResult
}

// validationResult is the concrete implementation of ValidationResult.
type validationResult struct {
	errors   []ValidationError
	warnings []ValidationWarning
}

// Valid returns true if no validation errors occurred.
func (r *validationResult) Valid() bool {
	return len(r.errors) == 0
}

// Errors returns all validation errors encountered.
func (r *validationResult) Errors() []ValidationError {
	if r.errors == nil {
		return []ValidationError{}
	}
	// Return a copy to prevent external modification
	result := make([]ValidationError, len(r.errors))
	copy(result, r.errors)
	return result
}

// Warnings returns all validation warnings encountered.
func (r *validationResult) Warnings() []ValidationWarning {
	if r.warnings == nil {
		return []ValidationWarning{}
	}
	// Return a copy to prevent external modification
	result := make([]ValidationWarning, len(r.warnings))
	copy(result, r.warnings)
	return result
}

// validator is the concrete implementation of Validator.
type validator struct {
	rules []Rule
}

// New creates a new Validator with the specified rules.
func New(rules ...Rule) Validator {
	return &validator{
		rules: rules,
	}
}

// NewWithRuleSet creates a new Validator from a RuleSet.
func NewWithRuleSet(rs RuleSet) Validator {
	return &validator{
		rules: rs.Rules(),
	}
}

// Validate applies all rules to the message and returns the result.
func (v *validator) Validate(msg hl7tree.Element) ValidationResult {
	result := &validationResult{
		errors:   make([]ValidationError, 0),
		warnings: make([]ValidationWarning, 0),
	}

	if msg == nil {
		result.errors = append(result.errors, ValidationError{
			Rule:    "validator",
			Message: "message is nil",
		})
		return result
	}

	for _, rule := range v.rules {
		if errs := rule.Validate(msg); len(errs) > 0 {
			result.errors = append(result.errors, errs...)
		}
	}

	return result
}

// ValidateSegment validates a specific segment against applicable rules.
// Only rules whose location starts with the segment name will be applied.
func (v *validator) ValidateSegment(seg hl7tree.Element) ValidationResult {
	result := &validationResult{
		errors:   make([]ValidationError, 0),
		warnings: make([]ValidationWarning, 0),
	}

	if seg == nil {
		result.errors = append(result.errors, ValidationError{
			Rule:    "validator",
			Message: "segment is nil",
		})
		return result
	}

	segName := seg.At(0).Value()

	// Rules address fields by full "SEG.field..." paths. segmentAsMessage wraps
	// the lone segment so hl7tree.Get's segment lookup (which walks a message's
	// children looking for a type-code match) finds it at index 1 without the
	// caller needing a real parent message.
	wrapper := segmentAsMessage{Element: seg}

	for _, rule := range v.rules {
		loc := rule.Location()
		// Check if this rule applies to the segment
		if len(loc) >= len(segName) && loc[:len(segName)] == segName {
			// Check for exact match or continuation with dot
			if len(loc) == len(segName) || loc[len(segName)] == '.' || loc[len(segName)] == '[' {
				if errs := rule.Validate(wrapper); len(errs) > 0 {
					result.errors = append(result.errors, errs...)
				}
			}
		}
	}

	return result
}

// segmentAsMessage presents a single segment as a one-segment message, so rules
// written against full message locations ("PID.3") can be reused unchanged for
// segment-level validation. All Element methods except Count and At fall through
// to the wrapped segment via embedding.
type segmentAsMessage struct {
	hl7tree.Element
}

// Count reports the wrapper as a one-segment message.
func (segmentAsMessage) Count() int { return 1 }

// At returns the wrapped segment for index 1; any other index falls through to
// the segment's own children, which mirrors how a child lookup on a too-short
// message would behave.
func (m segmentAsMessage) At(i int) hl7tree.Element {
	if i == 1 {
		return m.Element
	}
	return m.Element.At(i)
}
