package ledger

// ValidationError reports a rejected mutation. The ledger is left
// unchanged and Reason is safe to show to the user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
