package receipt

import (
	"github.com/okarim/tabsplit/internal/receipt/split"
)

// CreateReceiptRequest represents the request to create a receipt manually.
type CreateReceiptRequest struct {
	Merchant string                  `json:"merchant" validate:"required,min=1,max=255"`
	Date     *string                 `json:"date,omitempty"` // RFC 3339
	Items    []CreateLineItemRequest `json:"items" validate:"required,min=1"`
	Subtotal float64                 `json:"subtotal" validate:"required,gte=0"`
	Tax      float64                 `json:"tax" validate:"gte=0"`
	Tip      float64                 `json:"tip" validate:"gte=0"`
	Total    float64                 `json:"total" validate:"required,gt=0"`
	Currency string                  `json:"currency,omitempty"`
}

// CreateLineItemRequest represents one line item in a create request.
// TotalPrice may be omitted; it is derived as quantity × unit price.
type CreateLineItemRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=255"`
	Quantity   float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price" validate:"required,gte=0"`
	TotalPrice float64 `json:"total_price,omitempty"`
}

// ScanReceiptRequest represents the request to create a receipt from a
// captured image. Image is base64-encoded.
type ScanReceiptRequest struct {
	Image string `json:"image" validate:"required"`
}

// CalculateSplitRequest carries the strategy and per-strategy inputs
// collected from the split flow.
type CalculateSplitRequest struct {
	Strategy     string                `json:"strategy" validate:"required,oneof=EQUAL CUSTOM PERCENTAGE ITEMIZED"`
	Participants []string              `json:"participants" validate:"required,min=1"`
	Assignments  []AssignmentRequest   `json:"assignments,omitempty"`  // ITEMIZED
	Amounts      map[string]float64    `json:"amounts,omitempty"`      // CUSTOM
	Percentages  map[string]float64    `json:"percentages,omitempty"`  // PERCENTAGE
	People       map[string]string     `json:"people,omitempty"`       // display-name snapshot
}

// AssignmentRequest represents one item assignment in a split request.
type AssignmentRequest struct {
	ItemID     string    `json:"item_id" validate:"required"`
	FriendIDs  []string  `json:"friend_ids" validate:"required"`
	Quantities []float64 `json:"quantities,omitempty"`
}

// ToInput converts the request to the split package's input type.
func (r *CalculateSplitRequest) ToInput() split.Input {
	in := split.Input{
		Participants: make([]split.PersonID, len(r.Participants)),
	}
	for i, p := range r.Participants {
		in.Participants[i] = split.PersonID(p)
	}
	for _, a := range r.Assignments {
		friendIDs := make([]split.PersonID, len(a.FriendIDs))
		for i, f := range a.FriendIDs {
			friendIDs[i] = split.PersonID(f)
		}
		in.Assignments = append(in.Assignments, split.ItemAssignment{
			ItemID:     a.ItemID,
			FriendIDs:  friendIDs,
			Quantities: a.Quantities,
		})
	}
	if len(r.Amounts) > 0 {
		in.Amounts = make(map[split.PersonID]float64, len(r.Amounts))
		for p, v := range r.Amounts {
			in.Amounts[split.PersonID(p)] = v
		}
	}
	if len(r.Percentages) > 0 {
		in.Percentages = make(map[split.PersonID]float64, len(r.Percentages))
		for p, v := range r.Percentages {
			in.Percentages[split.PersonID(p)] = v
		}
	}
	if len(r.People) > 0 {
		in.People = make(map[split.PersonID]string, len(r.People))
		for p, name := range r.People {
			in.People[split.PersonID(p)] = name
		}
	}
	return in
}

// SettleRequest represents the request to record a payment against a
// person's share.
type SettleRequest struct {
	PersonID string  `json:"person_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// SetStatusRequest represents the request to force a person's settlement
// status.
type SetStatusRequest struct {
	PersonID string `json:"person_id" validate:"required"`
	Status   string `json:"status" validate:"required,oneof=PENDING PARTIAL SETTLED"`
}

// ReceiptResponse represents the response for a receipt.
type ReceiptResponse struct {
	ID        string           `json:"id"`
	Merchant  string           `json:"merchant"`
	Date      string           `json:"date,omitempty"`
	Items     []LineItem       `json:"items"`
	Subtotal  float64          `json:"subtotal"`
	Tax       float64          `json:"tax"`
	Tip       float64          `json:"tip"`
	Total     float64          `json:"total"`
	Currency  string           `json:"currency"`
	Split     *split.SplitData `json:"split,omitempty"`
	Shares    []PersonShare    `json:"shares,omitempty"`
	CreatedAt string           `json:"created_at"`
}

// PersonShare is one row of a split summary with the display name resolved.
type PersonShare struct {
	PersonID string            `json:"person_id"`
	Name     string            `json:"name"`
	Share    float64           `json:"share"`
	Tax      float64           `json:"tax"`
	Tip      *float64          `json:"tip,omitempty"`
	Total    float64           `json:"total"`
	Status   split.SplitStatus `json:"status"`
	Settled  float64           `json:"settled"`
}

// BreakdownResponse is a per-person detail view for an itemized split.
type BreakdownResponse struct {
	PersonID string          `json:"person_id"`
	Name     string          `json:"name"`
	Items    []BreakdownItem `json:"items"`
	Share    float64         `json:"share"`
	Tax      float64         `json:"tax"`
	Tip      *float64        `json:"tip,omitempty"`
	Total    float64         `json:"total"`
}

// BreakdownItem is one line of a per-person breakdown.
type BreakdownItem struct {
	ItemID string  `json:"item_id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// ValidationResponse wraps the validator's result for the API.
type ValidationResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ToResponse converts a Receipt model to a ReceiptResponse DTO. shares may
// be nil when the receipt has no split yet.
func (r *Receipt) ToResponse(shares []PersonShare) *ReceiptResponse {
	resp := &ReceiptResponse{
		ID:        r.ID,
		Merchant:  r.Merchant,
		Items:     r.Items,
		Subtotal:  r.Subtotal,
		Tax:       r.Tax,
		Tip:       r.Tip,
		Total:     r.Total,
		Currency:  r.Currency,
		Split:     r.SplitData,
		Shares:    shares,
		CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if r.Date != nil {
		resp.Date = r.Date.Format("2006-01-02")
	}
	return resp
}
