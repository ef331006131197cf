// Package scan wraps the external receipt-scanning (OCR) service. The
// service is an opaque collaborator: images go out, receipt-shaped data
// comes back, and none of the recognition logic lives in this repo.
package scan

// Result is the scanning service's answer. Receipt is nil when Success is
// false; Message explains why.
type Result struct {
	Success bool         `json:"success"`
	Receipt *ReceiptData `json:"receipt,omitempty"`
	Message string       `json:"message,omitempty"`
}

// ReceiptData is the receipt shape produced by the scanner.
type ReceiptData struct {
	Merchant string     `json:"merchant"`
	Items    []ItemData `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Tax      float64    `json:"tax"`
	Tip      float64    `json:"tip"`
	Total    float64    `json:"total"`
	Currency string     `json:"currency"`
}

// ItemData is one recognized line item.
type ItemData struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}
