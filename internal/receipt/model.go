package receipt

import (
	"time"

	"github.com/okarim/tabsplit/internal/receipt/split"
)

// LineItem represents a single line on a receipt. TotalPrice is expected to
// be approximately Quantity × UnitPrice; scanned receipts are sometimes a
// cent off, which is fine, the split always works from TotalPrice.
type LineItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// Receipt represents a scanned or manually entered receipt. SplitData is nil
// until the user completes the split flow, and is replaced wholesale when the
// split is recalculated.
type Receipt struct {
	ID       string     `json:"id"`
	Merchant string     `json:"merchant"`
	Date     *time.Time `json:"date,omitempty"`
	Items    []LineItem `json:"items"`

	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Tip      float64 `json:"tip"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`

	SplitData *split.SplitData `json:"split_data,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ToSplitItem converts to the split package's input type.
func (li LineItem) ToSplitItem() split.Item {
	return split.Item{
		ID:         li.ID,
		Name:       li.Name,
		Quantity:   li.Quantity,
		UnitPrice:  li.UnitPrice,
		TotalPrice: li.TotalPrice,
	}
}

// SplitItems converts all line items to split inputs.
func (r *Receipt) SplitItems() []split.Item {
	items := make([]split.Item, len(r.Items))
	for i, li := range r.Items {
		items[i] = li.ToSplitItem()
	}
	return items
}

// SplitTotals converts the receipt-level amounts to the split package's
// totals type.
func (r *Receipt) SplitTotals() split.Totals {
	return split.Totals{
		Subtotal: r.Subtotal,
		Tax:      r.Tax,
		Tip:      r.Tip,
		Total:    r.Total,
		Currency: r.Currency,
	}
}
