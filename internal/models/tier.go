package models

// Tier is a named spend-utilization bracket used to decide alerting. Tiers
// form a total order (under < warning < exceeded) so that "newly crossed
// tier" is well-defined regardless of how large a single transaction is.
type Tier string

const (
	TierUnder    Tier = "under"
	TierWarning  Tier = "warning"
	TierExceeded Tier = "exceeded"
)

// Utilization thresholds in whole percent. Fixed design constants, not
// user-configurable.
const (
	WarningThresholdPct  int64 = 80
	ExceededThresholdPct int64 = 100
)

// AlertTiers lists the tiers that trigger a notification, in ascending order.
var AlertTiers = []Tier{TierWarning, TierExceeded}

// Rank returns the position of the tier in the total order.
func (t Tier) Rank() int {
	switch t {
	case TierWarning:
		return 1
	case TierExceeded:
		return 2
	default:
		return 0
	}
}

// AtLeast reports whether t is at or above other in the tier order.
func (t Tier) AtLeast(other Tier) bool {
	return t.Rank() >= other.Rank()
}

// TierFor classifies spending against a limit. Comparison is done in integer
// minor units so that 40000/50000 lands exactly on the 80% warning boundary.
// A non-positive limit classifies as under; callers reject such limits on
// write, this is a safety net for reads.
func TierFor(spent, limit int64) Tier {
	if limit <= 0 || spent <= 0 {
		return TierUnder
	}
	if spent*100 >= limit*ExceededThresholdPct {
		return TierExceeded
	}
	if spent*100 >= limit*WarningThresholdPct {
		return TierWarning
	}
	return TierUnder
}
