package split

import (
	"fmt"
	"math"
)

// Result is the outcome of validating split inputs. Problems are reported as
// human-readable messages for the UI; nothing here is fatal — the user
// corrects the inputs and retries.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validate checks split inputs against a receipt using the default
// tolerances. See Tolerances.Validate.
func Validate(strategy Strategy, totals Totals, items []Item, in Input) Result {
	return DefaultTolerances().Validate(strategy, totals, items, in)
}

// Validate checks that split inputs are complete and numerically consistent
// with the receipt:
//
//   - every strategy: the participant list is non-empty, and every person
//     referenced by an assignment is in the participant list;
//   - Itemized: every receipt item has at least one person assigned (an
//     assignment whose quantities sum to zero counts as unassigned);
//   - Custom: the entered amounts sum to the subtotal within the sum
//     tolerance;
//   - Percentage: the percentages sum to 100 within the percent tolerance,
//     and each lies in [0, 100].
//
// It never returns a Go error; callers decide whether a failed Result
// blocks persistence.
func (t Tolerances) Validate(strategy Strategy, totals Totals, items []Item, in Input) Result {
	var errs []string

	if len(in.Participants) == 0 {
		errs = append(errs, "at least one participant is required")
	}

	known := make(map[PersonID]bool, len(in.Participants))
	for _, p := range in.Participants {
		known[p] = true
	}
	for _, a := range in.Assignments {
		for _, p := range a.FriendIDs {
			if !known[p] {
				errs = append(errs, fmt.Sprintf("person %q is assigned to an item but is not a participant", p))
			}
		}
	}

	switch strategy {
	case StrategyItemized:
		for _, item := range items {
			if !itemAssigned(item, in.Assignments) {
				errs = append(errs, fmt.Sprintf("item %q has no one assigned", item.Name))
			}
		}

	case StrategyCustom:
		var sum float64
		for _, p := range in.Participants {
			amount := in.Amounts[p]
			if amount < 0 {
				errs = append(errs, fmt.Sprintf("amount for %q cannot be negative", p))
			}
			sum += amount
		}
		if math.Abs(sum-totals.Subtotal) > t.Sum {
			errs = append(errs, fmt.Sprintf("amounts sum to %.2f but the subtotal is %.2f", sum, totals.Subtotal))
		}

	case StrategyPercentage:
		var sum float64
		for _, p := range in.Participants {
			pct := in.Percentages[p]
			if pct < 0 || pct > 100 {
				errs = append(errs, fmt.Sprintf("percentage for %q must be between 0 and 100", p))
			}
			sum += pct
		}
		if math.Abs(sum-100) > t.Percent {
			errs = append(errs, fmt.Sprintf("percentages sum to %.1f, expected 100", sum))
		}

	case StrategyEqual:
		// Nothing beyond the participant check.

	default:
		errs = append(errs, fmt.Sprintf("unknown split strategy %q", strategy))
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// itemAssigned reports whether an item would actually contribute money to
// someone, using the same branch logic as the calculator.
func itemAssigned(item Item, assignments []ItemAssignment) bool {
	a := findAssignment(assignments, item.ID)
	if a == nil || len(a.FriendIDs) == 0 {
		return false
	}
	if len(a.Quantities) == len(a.FriendIDs) && len(a.Quantities) > 0 {
		var totalQuantity float64
		for _, q := range a.Quantities {
			totalQuantity += q
		}
		return totalQuantity > 0
	}
	return true
}
