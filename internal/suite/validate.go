package suite

import "fmt"

// ValidationError represents a manifest validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a suite for errors and returns warnings for non-fatal issues.
func Validate(s *Suite) (warnings []string, err error) {
	seen := make(map[string]int, len(s.Entries))
	for i, e := range s.Entries {
		field := fmt.Sprintf("tests[%d]", i)
		if e.Name == "" {
			return nil, &ValidationError{Field: field + ".name", Message: "is required"}
		}
		if len(e.Command) == 0 || e.Command[0] == "" {
			return nil, &ValidationError{Field: field + ".command", Message: "must name a program"}
		}
		if e.Iterations < 0 {
			return nil, &ValidationError{Field: field + ".iterations", Message: "must be positive"}
		}
		if !e.Bench && e.Iterations != 0 {
			warnings = append(warnings, fmt.Sprintf("%s: iterations only apply to benches (ignored)", field))
		}

		display := e.Name
		if e.Kind != "" {
			display = "[" + e.Kind + "] " + e.Name
		}
		if prev, ok := seen[display]; ok {
			warnings = append(warnings, fmt.Sprintf("%s: duplicate test %q (first defined at tests[%d])", field, display, prev))
			continue
		}
		seen[display] = i
	}
	return warnings, nil
}
