package note

// ValidationError rejects bad input before any state change: a too-short
// vault password, an empty folder name, an unknown category.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
