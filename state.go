package nvram

// State is the lifecycle phase of a Manager.
type State int

const (
	StateUninitialized State = iota
	StateLoaded
	StateValidated
	StateArmed
	StateTerminating
	// StateFailed is terminal; the region is never saved.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoaded:
		return "loaded"
	case StateValidated:
		return "validated"
	case StateArmed:
		return "armed"
	case StateTerminating:
		return "terminating"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of Initialize.
type Outcome int

const (
	// OutcomeSuccess means the stored block was loaded and validated.
	OutcomeSuccess Outcome = iota
	// OutcomeWarning means the block could not be loaded; defaults are in use
	// and the region is still saved on exit.
	OutcomeWarning
	// OutcomeFatal means the program must not continue with this region.
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeWarning:
		return "warning"
	case OutcomeFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// IsFatal reports whether o is OutcomeFatal.
func (o Outcome) IsFatal() bool { return o == OutcomeFatal }
