package domain

// Status is the outcome of one iteration: may the loop continue or is the
// sequence finished. Finished is absorbing under And, so once any signal
// declares the loop done, the combined signal stays done.
type Status int

const (
	// Continue indicates more work is expected.
	Continue Status = iota

	// Finished indicates no more work remains.
	Finished
)

// And combines two statuses. The result is Finished if either operand is
// Finished. It reconciles multiple completion signals (callback result,
// policy decision) into a single outcome.
func (s Status) And(other Status) Status {
	if s == Finished || other == Finished {
		return Finished
	}
	return Continue
}

func (s Status) String() string {
	switch s {
	case Continue:
		return "continue"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}
