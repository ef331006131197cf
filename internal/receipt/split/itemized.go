package split

// =============================================================================
// ITEMIZED SPLIT STRATEGY
// Assigns individual line items (or fractional quantities) to people
// =============================================================================

// ItemizedCalculator implements the Calculator interface for itemized splits.
type ItemizedCalculator struct{}

// Strategy returns the strategy identifier.
func (c *ItemizedCalculator) Strategy() Strategy {
	return StrategyItemized
}

// BaseShares sums each participant's claimed amount across all items.
// Unassigned items contribute zero to everyone; the validator reports them
// so the UI can still show a preview of the partial result.
func (c *ItemizedCalculator) BaseShares(totals Totals, items []Item, in Input) (map[PersonID]float64, error) {
	if len(in.Participants) == 0 {
		return nil, ErrNoParticipants
	}

	shares := make(map[PersonID]float64, len(in.Participants))
	for _, p := range in.Participants {
		shares[p] = 0
	}

	for _, item := range items {
		for p, amount := range resolveItem(item, findAssignment(in.Assignments, item.ID)) {
			// Only credit known participants; stray ids in an
			// assignment are a validation error, not a payout.
			if _, ok := shares[p]; ok {
				shares[p] += amount
			}
		}
	}
	return shares, nil
}

// resolveItem computes each assignee's share of a single line item. This is
// the one place the per-item branch logic lives: both the aggregate
// calculation above and the per-person breakdown in ItemShare go through it,
// so the two can never disagree.
//
// Branches:
//  1. No assignment, or nobody assigned: the item contributes nothing.
//  2. Usable quantities (parallel to FriendIDs): each person gets
//     totalPrice × quantity/totalQuantity. A zero total quantity is
//     degenerate and contributes nothing.
//  3. Otherwise: split totalPrice evenly across the assignees. The item's
//     own quantity field is deliberately ignored in this fallback.
func resolveItem(item Item, a *ItemAssignment) map[PersonID]float64 {
	if a == nil || len(a.FriendIDs) == 0 {
		return nil
	}

	amounts := make(map[PersonID]float64, len(a.FriendIDs))

	if len(a.Quantities) == len(a.FriendIDs) && len(a.Quantities) > 0 {
		var totalQuantity float64
		for _, q := range a.Quantities {
			totalQuantity += q
		}
		if totalQuantity <= 0 {
			return nil
		}
		for i, p := range a.FriendIDs {
			amounts[p] = item.TotalPrice * a.Quantities[i] / totalQuantity
		}
		return amounts
	}

	perPerson := item.TotalPrice / float64(len(a.FriendIDs))
	for _, p := range a.FriendIDs {
		amounts[p] = perPerson
	}
	return amounts
}

// findAssignment returns the assignment entry for an item id, or nil.
func findAssignment(assignments []ItemAssignment, itemID string) *ItemAssignment {
	for i := range assignments {
		if assignments[i].ItemID == itemID {
			return &assignments[i]
		}
	}
	return nil
}

// ItemShare returns one person's share of a single line item under the given
// assignments. It reproduces exactly the value that item contributed to the
// person's aggregate base share, which is what receipt detail views need.
func ItemShare(item Item, assignments []ItemAssignment, p PersonID) float64 {
	return resolveItem(item, findAssignment(assignments, item.ID))[p]
}
