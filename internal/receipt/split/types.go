package split

// PersonID identifies a participant in a split. It is an opaque key: it may
// reference a registered friend, a device contact, or a temporary person
// created for a single receipt. The splitter never parses it.
type PersonID string

// Item is the splitter's view of a receipt line item.
type Item struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// Totals holds the receipt-level amounts a split is computed against.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Tip      float64 `json:"tip"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// ItemAssignment records who claimed a line item. Quantities, when present,
// is parallel to FriendIDs and holds the fractional count of the item each
// person claimed; the sum may be less than the item's quantity (the
// validator flags the remainder).
type ItemAssignment struct {
	ItemID     string     `json:"item_id"`
	FriendIDs  []PersonID `json:"friend_ids"`
	Quantities []float64  `json:"quantities,omitempty"`
}

// SplitStatus tracks how much of a person's share has been paid back.
type SplitStatus string

const (
	StatusPending SplitStatus = "PENDING"
	StatusPartial SplitStatus = "PARTIAL"
	StatusSettled SplitStatus = "SETTLED"
)

// SplitData is the computed split for one receipt. FriendShares holds each
// person's pre-tax base amount; TaxDistribution and TipDistribution hold
// their allocated portions of the pooled amounts; Totals is the rounded
// final amount owed.
//
// A nil TipDistribution means the receipt had no meaningful tip. That is
// different from a map of zeros, and callers rely on the distinction, so the
// field must stay absent rather than zero-filled.
type SplitData struct {
	Strategy    Strategy         `json:"strategy"`
	Assignments []ItemAssignment `json:"assignments,omitempty"`

	FriendShares    map[PersonID]float64 `json:"friend_shares"`
	TaxDistribution map[PersonID]float64 `json:"tax_distribution"`
	TipDistribution map[PersonID]float64 `json:"tip_distribution,omitempty"`
	Totals          map[PersonID]float64 `json:"totals"`

	// People snapshots display names for participants that are not
	// resolvable through the friend directory (contacts, temp people).
	People map[PersonID]string `json:"people,omitempty"`

	Statuses       map[PersonID]SplitStatus `json:"statuses,omitempty"`
	SettledAmounts map[PersonID]float64     `json:"settled_amounts,omitempty"`
}

// Clone returns a deep copy of the split. Settlement transitions operate on
// copies so callers never observe a half-applied mutation.
func (sd *SplitData) Clone() *SplitData {
	if sd == nil {
		return nil
	}
	out := &SplitData{
		Strategy:        sd.Strategy,
		FriendShares:    cloneAmounts(sd.FriendShares),
		TaxDistribution: cloneAmounts(sd.TaxDistribution),
		TipDistribution: cloneAmounts(sd.TipDistribution),
		Totals:          cloneAmounts(sd.Totals),
		SettledAmounts:  cloneAmounts(sd.SettledAmounts),
	}
	if sd.Assignments != nil {
		out.Assignments = make([]ItemAssignment, len(sd.Assignments))
		for i, a := range sd.Assignments {
			out.Assignments[i] = ItemAssignment{
				ItemID:     a.ItemID,
				FriendIDs:  append([]PersonID(nil), a.FriendIDs...),
				Quantities: append([]float64(nil), a.Quantities...),
			}
		}
	}
	if sd.People != nil {
		out.People = make(map[PersonID]string, len(sd.People))
		for k, v := range sd.People {
			out.People[k] = v
		}
	}
	if sd.Statuses != nil {
		out.Statuses = make(map[PersonID]SplitStatus, len(sd.Statuses))
		for k, v := range sd.Statuses {
			out.Statuses[k] = v
		}
	}
	return out
}

func cloneAmounts(m map[PersonID]float64) map[PersonID]float64 {
	if m == nil {
		return nil
	}
	out := make(map[PersonID]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Input carries the per-strategy parameters collected from the user.
// Participants is required for every strategy; Assignments feeds Itemized,
// Amounts feeds Custom, Percentages feeds Percentage. People is an optional
// display-name snapshot carried through to the result.
type Input struct {
	Participants []PersonID           `json:"participants"`
	Assignments  []ItemAssignment     `json:"assignments,omitempty"`
	Amounts      map[PersonID]float64 `json:"amounts,omitempty"`
	Percentages  map[PersonID]float64 `json:"percentages,omitempty"`
	People       map[PersonID]string  `json:"people,omitempty"`
}
