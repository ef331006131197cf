package split

// Settle records a payment of amount against a person's owed total and
// returns an updated copy of the split; the input is never mutated. The
// cumulative settled amount is clamped to [0, total], and the person's
// status is derived from it:
//
//	settled >= total  -> SETTLED
//	0 < settled       -> PARTIAL
//	otherwise         -> PENDING
func Settle(sd *SplitData, p PersonID, amount float64) *SplitData {
	if sd == nil {
		return nil
	}

	out := sd.Clone()
	ensureSettlement(out)

	total := out.Totals[p]
	settled := out.SettledAmounts[p] + amount
	if settled > total {
		settled = total
	}
	if settled < 0 {
		settled = 0
	}

	out.SettledAmounts[p] = settled
	out.Statuses[p] = statusFor(settled, total)
	return out
}

// SetStatus forces a person's settlement status and returns an updated copy.
// SETTLED snaps the settled amount to the full total, PENDING resets it to
// zero, and PARTIAL leaves the current amount untouched (the caller supplies
// the amount through Settle). Marking a settled person PENDING again is an
// explicit, supported user action.
func SetStatus(sd *SplitData, p PersonID, status SplitStatus) *SplitData {
	if sd == nil {
		return nil
	}

	out := sd.Clone()
	ensureSettlement(out)

	switch status {
	case StatusSettled:
		out.SettledAmounts[p] = out.Totals[p]
	case StatusPending:
		out.SettledAmounts[p] = 0
	case StatusPartial:
		// Keep the current settled amount.
	}
	out.Statuses[p] = status
	return out
}

func statusFor(settled, total float64) SplitStatus {
	switch {
	case settled >= total:
		return StatusSettled
	case settled > 0:
		return StatusPartial
	default:
		return StatusPending
	}
}

// ensureSettlement backfills the settlement maps on splits persisted before
// any settlement action happened.
func ensureSettlement(sd *SplitData) {
	if sd.Statuses == nil {
		sd.Statuses = make(map[PersonID]SplitStatus, len(sd.Totals))
		for p := range sd.Totals {
			sd.Statuses[p] = StatusPending
		}
	}
	if sd.SettledAmounts == nil {
		sd.SettledAmounts = make(map[PersonID]float64, len(sd.Totals))
	}
}
