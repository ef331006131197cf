package split

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the receipt subtotal by per-participant percentages
// =============================================================================

// PercentageCalculator implements the Calculator interface for
// percentage-based splits. That the percentages sum to 100 is checked by
// Validate before the split is persisted, not here.
type PercentageCalculator struct{}

// Strategy returns the strategy identifier.
func (c *PercentageCalculator) Strategy() Strategy {
	return StrategyPercentage
}

// BaseShares computes subtotal × percentage/100 for each participant.
// A participant with no entry contributes a zero share.
func (c *PercentageCalculator) BaseShares(totals Totals, items []Item, in Input) (map[PersonID]float64, error) {
	if len(in.Participants) == 0 {
		return nil, ErrNoParticipants
	}

	shares := make(map[PersonID]float64, len(in.Participants))
	for _, p := range in.Participants {
		shares[p] = totals.Subtotal * in.Percentages[p] / 100
	}
	return shares, nil
}
