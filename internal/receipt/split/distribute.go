package split

// DistributeTaxTip allocates the receipt's tax and tip across people in
// proportion to their base shares, using the default tolerances.
func DistributeTaxTip(shares map[PersonID]float64, tax, tip float64) (taxDist, tipDist map[PersonID]float64) {
	return DefaultTolerances().DistributeTaxTip(shares, tax, tip)
}

// DistributeTaxTip allocates tax and tip proportionally to base shares.
//
// When the total base is zero or negative the pooled amounts are split
// equally among all keys instead. That avoids a division by zero, and it
// avoids dumping the whole tax on the one person who happens to have a
// nonzero share when everyone else was legitimately added with no items.
//
// tipDist is nil unless tip exceeds the tip threshold; downstream code
// checks field presence, not value, to distinguish "no tip" from "zero tip".
//
// Distributed values are intentionally not rounded here. Rounding to cents
// happens once, when the final per-person totals are composed, so rounding
// error does not compound across the share, tax, and tip legs.
func (t Tolerances) DistributeTaxTip(shares map[PersonID]float64, tax, tip float64) (taxDist, tipDist map[PersonID]float64) {
	if len(shares) == 0 {
		return nil, nil
	}

	var totalBase float64
	for _, share := range shares {
		totalBase += share
	}

	withTip := tip > t.TipThreshold

	taxDist = make(map[PersonID]float64, len(shares))
	if withTip {
		tipDist = make(map[PersonID]float64, len(shares))
	}

	if totalBase <= 0 {
		n := float64(len(shares))
		for p := range shares {
			taxDist[p] = tax / n
			if withTip {
				tipDist[p] = tip / n
			}
		}
		return taxDist, tipDist
	}

	for p, share := range shares {
		taxDist[p] = tax * share / totalBase
		if withTip {
			tipDist[p] = tip * share / totalBase
		}
	}
	return taxDist, tipDist
}
