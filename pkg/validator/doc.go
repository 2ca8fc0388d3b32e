// Package validator provides rule-based validation with field-level errors.
//
// Each rule constructor captures a field name and value and returns a Rule.
// Apply runs the rules and collects every failure into ValidationErrors:
//
//	err := validator.Apply(
//	    validator.RequiredString("target", req.Target),
//	    validator.ValidEmail("target", req.Target),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // verrs.Get("target") -> []string{"must be a valid email address"}
//	}
//
// ValidationErrors survives wrapping, so callers can attach their own
// sentinel with fmt.Errorf("%w: %w", ErrSomething, err) and still use
// errors.As to reach the field details.
package validator
