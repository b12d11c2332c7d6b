// Package validate provides validation rules and validators for HL7 v2.x messages.
//
// The validate package enables comprehensive validation of HL7 messages against
// configurable rules. It supports required field checking, value constraints,
// pattern matching, length validation, and custom validation functions.
//
// # Basic Usage
//
// Build rules with At(location), chain constraints, and Build() the Rule, then
// hand a set of rules to New:
//
//	v := validate.New(
//	    validate.At("MSH.9").Required().Build(),
//	    validate.At("MSH.10").Required().Build(),
//	    validate.At("PID.3.1").Required().Build(),
//	)
//
//	result := v.Validate(msg)
//	if !result.Valid() {
//	    for _, err := range result.Errors() {
//	        log.Printf("Validation error: %v", err)
//	    }
//	}
//
// # Built-in Validation Rules
//
// RuleBuilder methods returned by At(location) compose into a Rule via Build():
//
// Required - Ensures a field is present and non-empty:
//
//	validate.At("PID.3.1").Required().Build()
//	validate.At("PID.5").Required().WithDescription("Patient name is required").Build()
//
// Value - Ensures a field has a specific value:
//
//	validate.At("MSH.9.1").Value("ADT").Build()  // Message type must be ADT
//	validate.At("MSH.11").Value("P").Build()     // Processing ID must be Production
//
// Pattern - Validates against a regular expression:
//
//	// Date format: YYYYMMDD
//	validate.At("PID.7").Pattern(`^\d{8}$`).Build()
//
// Length - Validates field length (0 on either bound means unbounded):
//
//	validate.At("PID.3.1").Length(1, 20).Build()
//
// OneOf - Validates against a list of allowed values:
//
//	validate.At("PID.8").OneOf("M", "F", "O", "U").Build()  // Gender codes
//
// Custom - Validates with a custom function:
//
//	validate.At("PID.7").Custom(func(value string) error {
//	    _, err := time.Parse("20060102", value)
//	    return err
//	}).Build()
//
// # Combining Rules
//
// Chain multiple constraints on the same builder before Build() - the result is
// a composite rule requiring all of them to pass:
//
//	// Patient ID must be present, 1-20 chars, alphanumeric
//	idRule := validate.At("PID.3.1").
//	    Required().
//	    Length(1, 20).
//	    Pattern(`^[A-Z0-9]+$`).
//	    Build()
//
// # RuleSets
//
// RuleSet groups related rules and composes with Merge. The package ships
// standard sets for common segments and message types:
//
//	adt := validate.ADTRules()               // MSH + PID
//	oru := validate.ORURules()                // MSH + PID + OBR + OBX
//	custom := validate.MSHRules().Merge(validate.PIDRules())
//
//	v := validate.NewWithRuleSet(adt)
//
// # Message Type Specific Validation
//
// Create validators for specific message types by combining builder rules and
// standard RuleSets:
//
//	// ADT^A01 (Admit) validator
//	adtA01Validator := validate.New(
//	    validate.At("MSH.9").Required().Build(),
//	    validate.At("MSH.9.1").Value("ADT").Build(),
//	    validate.At("MSH.9.2").Value("A01").Build(),
//
//	    validate.At("PID.3.1").Required().Build(),
//	    validate.At("PID.5").Required().Build(),
//	    validate.At("PID.7").Required().Build(),
//	    validate.At("PID.8").OneOf("M", "F", "O", "U").Build(),
//
//	    validate.At("PV1.2").Required().Build(),
//	    validate.At("PV1.3").Required().Build(),
//	    validate.At("PV1.44").Required().Build(),
//	)
//
// # Validation Results
//
// Validate and ValidateSegment both return a ValidationResult carrying detailed
// per-field errors:
//
//	result := v.Validate(msg)
//	for _, err := range result.Errors() {
//	    fmt.Printf("Location: %s\n", err.Location)
//	    fmt.Printf("Rule: %s\n", err.Rule)
//	    fmt.Printf("Message: %s\n", err.Message)
//	    if err.Expected != "" {
//	        fmt.Printf("Expected: %s\n", err.Expected)
//	    }
//	    if err.Actual != "" {
//	        fmt.Printf("Actual: %s\n", err.Actual)
//	    }
//	}
//
// ValidateSegment runs only the rules whose location starts with the segment's
// own type code, letting a single rule set double as a per-segment check (useful
// when validating a segment freshly built before it's attached to a message):
//
//	pidResult := v.ValidateSegment(pidSegment)
//
// # Creating Custom Rules
//
// Implement the Rule interface for validation logic the builder doesn't cover:
//
//	type Rule interface {
//	    Validate(msg hl7tree.Element) []ValidationError
//	    Location() string
//	    Description() string
//	}
//
// Example custom rule:
//
//	type dateRangeRule struct {
//	    location string
//	    min, max time.Time
//	}
//
//	func (r *dateRangeRule) Validate(msg hl7tree.Element) []ValidationError {
//	    value, err := hl7tree.Get(msg, r.location)
//	    if err != nil || value == "" {
//	        return nil // Let a Required rule handle presence
//	    }
//
//	    date, err := time.Parse("20060102", value)
//	    if err != nil {
//	        return []ValidationError{{
//	            Location: r.location,
//	            Rule:     "dateRange",
//	            Message:  "invalid date format",
//	        }}
//	    }
//
//	    if date.Before(r.min) || date.After(r.max) {
//	        return []ValidationError{{
//	            Location: r.location,
//	            Rule:     "dateRange",
//	            Message:  "date out of range",
//	            Expected: fmt.Sprintf("%s to %s",
//	                r.min.Format("2006-01-02"),
//	                r.max.Format("2006-01-02")),
//	            Actual:   date.Format("2006-01-02"),
//	        }}
//	    }
//
//	    return nil
//	}
//
//	func (r *dateRangeRule) Location() string    { return r.location }
//	func (r *dateRangeRule) Description() string { return r.location + " out of range" }
//
// # Example: ORU Message Validation
//
//	oruValidator := validate.NewWithRuleSet(validate.ORURules())
//
//	// Validate incoming lab result
//	msg, err := dividertree.NewMessage(labData)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result := oruValidator.Validate(msg); !result.Valid() {
//	    return fmt.Errorf("invalid ORU message: %d validation errors", len(result.Errors()))
//	}
package validate
