package split

// =============================================================================
// CUSTOM SPLIT STRATEGY
// Each participant owes a user-entered base amount
// =============================================================================

// CustomCalculator implements the Calculator interface for custom splits.
// The entered amounts are used verbatim as base shares; whether they sum to
// the receipt subtotal is checked by Validate before the split is persisted,
// not here.
type CustomCalculator struct{}

// Strategy returns the strategy identifier.
func (c *CustomCalculator) Strategy() Strategy {
	return StrategyCustom
}

// BaseShares copies each participant's entered amount. A participant with no
// entry contributes a zero share (they were added but assigned nothing).
func (c *CustomCalculator) BaseShares(totals Totals, items []Item, in Input) (map[PersonID]float64, error) {
	if len(in.Participants) == 0 {
		return nil, ErrNoParticipants
	}

	shares := make(map[PersonID]float64, len(in.Participants))
	for _, p := range in.Participants {
		shares[p] = in.Amounts[p]
	}
	return shares, nil
}
