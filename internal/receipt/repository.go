package receipt

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/okarim/tabsplit/internal/receipt/split"
)

// Repository handles receipt persistence in postgres. Line items and split
// data are stored as JSONB documents on the receipt row: the splitter always
// recalculates wholesale, so relational item rows would buy nothing.
//
// Schema:
//
//	CREATE TABLE receipts (
//	    id         UUID PRIMARY KEY,
//	    merchant   TEXT NOT NULL,
//	    date       DATE,
//	    items      JSONB NOT NULL DEFAULT '[]',
//	    subtotal   NUMERIC(12,2) NOT NULL,
//	    tax        NUMERIC(12,2) NOT NULL DEFAULT 0,
//	    tip        NUMERIC(12,2) NOT NULL DEFAULT 0,
//	    total      NUMERIC(12,2) NOT NULL,
//	    currency   TEXT NOT NULL DEFAULT 'USD',
//	    split_data JSONB,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type Repository struct {
	db *sql.DB
}

// Ensure Repository implements Store.
var _ Store = (*Repository)(nil)

// NewRepository creates a new receipt repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateReceipt inserts a new receipt. The ID is generated here when unset.
func (r *Repository) CreateReceipt(ctx context.Context, receipt *Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}

	items, err := json.Marshal(receipt.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	query := `
		INSERT INTO receipts (id, merchant, date, items, subtotal, tax, tip, total, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err = r.db.QueryRowContext(ctx, query,
		receipt.ID,
		receipt.Merchant,
		receipt.Date,
		items,
		receipt.Subtotal,
		receipt.Tax,
		receipt.Tip,
		receipt.Total,
		receipt.Currency,
	).Scan(&receipt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create receipt: %w", err)
	}

	return nil
}

// GetReceiptByID retrieves a receipt by its ID.
func (r *Repository) GetReceiptByID(ctx context.Context, id string) (*Receipt, error) {
	query := `
		SELECT id, merchant, date, items, subtotal, tax, tip, total, currency, split_data, created_at
		FROM receipts
		WHERE id = $1
	`

	receipt, err := scanReceipt(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	return receipt, nil
}

// ListReceipts retrieves a page of receipts, newest first.
func (r *Repository) ListReceipts(ctx context.Context, limit, offset int) ([]*Receipt, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM receipts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count receipts: %w", err)
	}

	query := `
		SELECT id, merchant, date, items, subtotal, tax, tip, total, currency, split_data, created_at
		FROM receipts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate receipts: %w", err)
	}

	return receipts, total, nil
}

// UpdateSplitData replaces the stored split for a receipt.
func (r *Repository) UpdateSplitData(ctx context.Context, id string, sd *split.SplitData) error {
	var data interface{}
	if sd != nil {
		encoded, err := json.Marshal(sd)
		if err != nil {
			return fmt.Errorf("failed to encode split data: %w", err)
		}
		data = encoded
	}

	result, err := r.db.ExecContext(ctx, `UPDATE receipts SET split_data = $1 WHERE id = $2`, data, id)
	if err != nil {
		return fmt.Errorf("failed to update split data: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrReceiptNotFound
	}

	return nil
}

// DeleteReceipt removes a receipt.
func (r *Repository) DeleteReceipt(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrReceiptNotFound
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReceipt(row scanner) (*Receipt, error) {
	receipt := &Receipt{}
	var items []byte
	var splitData []byte

	err := row.Scan(
		&receipt.ID,
		&receipt.Merchant,
		&receipt.Date,
		&items,
		&receipt.Subtotal,
		&receipt.Tax,
		&receipt.Tip,
		&receipt.Total,
		&receipt.Currency,
		&splitData,
		&receipt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &receipt.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	if splitData != nil {
		receipt.SplitData = &split.SplitData{}
		if err := json.Unmarshal(splitData, receipt.SplitData); err != nil {
			return nil, fmt.Errorf("failed to decode split data: %w", err)
		}
	}

	return receipt, nil
}
