package scheduling

// ValidationError reports caller-supplied input that failed local
// validation. It never reaches the upstream provider and maps to a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
