package engine

// ItemReport is the result for one projection target.
type ItemReport struct {
	Tool  string
	Path  string
	Block string
	State State
	// Outcome is set by apply passes; Check leaves it empty.
	Outcome Outcome
	// Action is a human-readable description of what was done, or what
	// would be done under dry run.
	Action string
	Err    error
}

// Report aggregates the projection results of one engine operation.
type Report struct {
	Items  []ItemReport
	DryRun bool
}

// Counts tallies outcomes across the report.
type Counts struct {
	Healthy   int
	Fixed     int
	Failed    int
	Skipped   int
	Missing   int
	Drifted   int
	Unmanaged int
}

// Counts computes outcome and state tallies.
func (r Report) Counts() Counts {
	var c Counts
	for _, it := range r.Items {
		switch it.Outcome {
		case OutcomeHealthy:
			c.Healthy++
		case OutcomeFixed:
			c.Fixed++
		case OutcomeFailed:
			c.Failed++
		case OutcomeSkipped:
			c.Skipped++
		}
		switch it.State {
		case StateMissing:
			c.Missing++
		case StateDrifted:
			c.Drifted++
		case StateUnmanaged:
			c.Unmanaged++
		case StateHealthy:
			if it.Outcome == "" {
				c.Healthy++
			}
		}
	}
	return c
}

// Succeeded reports whether no projection failed.
func (r Report) Succeeded() bool {
	for _, it := range r.Items {
		if it.Outcome == OutcomeFailed {
			return false
		}
	}
	return true
}

// Clean reports whether every classified projection is healthy. It is the
// check-mode success condition.
func (r Report) Clean() bool {
	for _, it := range r.Items {
		if it.Outcome == OutcomeSkipped {
			continue
		}
		if it.State != StateHealthy {
			return false
		}
	}
	return true
}

// Merge appends another report's items, preserving order.
func (r *Report) Merge(other Report) {
	r.Items = append(r.Items, other.Items...)
}
