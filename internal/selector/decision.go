package selector

// Outcome is the decision kind for one candidate.
type Outcome int

const (
	Included Outcome = iota
	ExcludedByExtension
	ExcludedByPattern
	SkippedUnreadable
)

// String returns a short human-readable form for diagnostics.
func (o Outcome) String() string {
	switch o {
	case Included:
		return "included"
	case ExcludedByExtension:
		return "excluded (extension)"
	case ExcludedByPattern:
		return "excluded (pattern)"
	case SkippedUnreadable:
		return "skipped (unreadable)"
	}
	return "unknown"
}

// Decision is the outcome for one candidate. Rule carries the source
// text of the matching ignore rule when a pattern caused the exclusion.
type Decision struct {
	Outcome Outcome
	Rule    string
}
