package reclaim

// Severity describes how urgently a registered reclaimer should act.
// The pressure controller escalates from SeverityLow to SeverityHigh
// only after a lower severity has failed to free enough space.
type Severity uint8

const (
	// SeverityLow is invoked when allocated bytes are about to cross
	// the soft limit, before the allocation that would cross it is
	// attempted.
	SeverityLow Severity = iota

	// SeverityHigh is invoked once every registered reclaimer has
	// already been run at SeverityLow for this allocation and the
	// arena is still unable to satisfy it (or when the
	// reclaim-before-every-alloc feature flag is set).
	SeverityHigh
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}
