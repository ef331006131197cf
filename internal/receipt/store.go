package receipt

import (
	"context"

	"github.com/okarim/tabsplit/internal/receipt/split"
)

// Store defines the interface for receipt persistence. The service layer
// only depends on this, so the postgres implementation can be swapped for an
// in-memory one in tests.
type Store interface {
	// CreateReceipt persists a new receipt.
	CreateReceipt(ctx context.Context, r *Receipt) error

	// GetReceiptByID retrieves a receipt, or nil if it does not exist.
	GetReceiptByID(ctx context.Context, id string) (*Receipt, error)

	// ListReceipts returns a page of receipts, newest first, plus the
	// total count.
	ListReceipts(ctx context.Context, limit, offset int) ([]*Receipt, int, error)

	// UpdateSplitData replaces the stored split for a receipt. A nil
	// split clears it.
	UpdateSplitData(ctx context.Context, id string, sd *split.SplitData) error

	// DeleteReceipt removes a receipt and its split.
	DeleteReceipt(ctx context.Context, id string) error
}
