package result

import "fmt"

// MissingOrInvalidFieldError indicates that a field an accessor requires is
// absent from the response or holds a value of the wrong JSON type. The two
// conditions are not distinguished.
type MissingOrInvalidFieldError struct {
	Field string
}

func (e *MissingOrInvalidFieldError) Error() string {
	return fmt.Sprintf("server response missing or invalid field %q", e.Field)
}

// InvalidFieldError indicates that a field with a defined fallback for
// absence is present but holds a value of the wrong JSON type. Only
// accessors that substitute a default on absence produce it.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("server response has invalid field %q", e.Field)
}
