package split

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the receipt subtotal equally among all participants
// =============================================================================

// EqualCalculator implements the Calculator interface for equal splits.
type EqualCalculator struct{}

// Strategy returns the strategy identifier.
func (c *EqualCalculator) Strategy() Strategy {
	return StrategyEqual
}

// BaseShares gives every participant subtotal/n. Shares are not rounded
// here; rounding happens once when the final totals are composed, and any
// residual drift across participants is the validator's concern, not this
// calculator's.
func (c *EqualCalculator) BaseShares(totals Totals, items []Item, in Input) (map[PersonID]float64, error) {
	if len(in.Participants) == 0 {
		return nil, ErrNoParticipants
	}

	share := totals.Subtotal / float64(len(in.Participants))
	shares := make(map[PersonID]float64, len(in.Participants))
	for _, p := range in.Participants {
		shares[p] = share
	}
	return shares, nil
}
