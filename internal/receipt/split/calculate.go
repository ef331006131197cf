package split

// Calculate computes a complete split for a receipt: the strategy's base
// shares, proportional tax/tip distribution, and the rounded per-person
// totals. Every participant starts out PENDING with nothing settled.
//
// Calculate assumes its inputs have already passed Validate; it does not
// re-check sum preconditions. It only fails for programmer-level misuse
// (unknown strategy, empty participant list).
func Calculate(strategy Strategy, totals Totals, items []Item, in Input) (*SplitData, error) {
	return DefaultTolerances().Calculate(strategy, totals, items, in)
}

// Calculate is like the package-level Calculate but with explicit tolerances
// (the tip threshold decides whether a tip distribution is present at all).
func (t Tolerances) Calculate(strategy Strategy, totals Totals, items []Item, in Input) (*SplitData, error) {
	calc, err := NewCalculatorFactory().Create(strategy)
	if err != nil {
		return nil, err
	}

	shares, err := calc.BaseShares(totals, items, in)
	if err != nil {
		return nil, err
	}

	taxDist, tipDist := t.DistributeTaxTip(shares, totals.Tax, totals.Tip)

	sd := &SplitData{
		Strategy:        strategy,
		FriendShares:    shares,
		TaxDistribution: taxDist,
		TipDistribution: tipDist,
		Totals:          make(map[PersonID]float64, len(shares)),
		Statuses:        make(map[PersonID]SplitStatus, len(shares)),
		SettledAmounts:  make(map[PersonID]float64, len(shares)),
	}

	if strategy == StrategyItemized {
		sd.Assignments = in.Assignments
	}
	if len(in.People) > 0 {
		sd.People = make(map[PersonID]string, len(in.People))
		for p, name := range in.People {
			sd.People[p] = name
		}
	}

	for p, share := range shares {
		total := share + taxDist[p]
		if tipDist != nil {
			total += tipDist[p]
		}
		sd.Totals[p] = roundToTwoDecimals(total)
		sd.Statuses[p] = StatusPending
		sd.SettledAmounts[p] = 0
	}

	return sd, nil
}
