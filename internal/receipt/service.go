package receipt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okarim/tabsplit/internal/receipt/split"
	"github.com/okarim/tabsplit/internal/scan"
)

// Common errors
var (
	ErrReceiptNotFound  = errors.New("receipt not found")
	ErrNoSplit          = errors.New("receipt has no split yet")
	ErrPersonNotInSplit = errors.New("person is not part of this split")
	ErrInvalidStatus    = errors.New("invalid settlement status")
	ErrScanFailed       = errors.New("receipt scan failed")
)

// SplitValidationError carries the validator's messages when split inputs
// are rejected. It is a normal error so handlers can errors.As on it, but
// the messages inside are meant for the user, not the log.
type SplitValidationError struct {
	Errors []string
}

func (e *SplitValidationError) Error() string {
	return "invalid split: " + strings.Join(e.Errors, "; ")
}

// NameResolver looks up display names for person ids. Implemented by the
// friend directory; ids it does not know are simply absent from the result.
type NameResolver interface {
	ResolveNames(ctx context.Context, ids []string) (map[string]string, error)
}

// Service handles receipt business logic.
type Service struct {
	store      Store
	names      NameResolver
	scanner    scan.Scanner
	tolerances split.Tolerances
}

// NewService creates a new receipt service with dependencies injected.
func NewService(store Store, names NameResolver, scanner scan.Scanner) *Service {
	return &Service{
		store:      store,
		names:      names,
		scanner:    scanner,
		tolerances: split.DefaultTolerances(),
	}
}

// CreateReceipt creates a receipt from manual entry. Missing line item
// totals are derived from quantity × unit price.
func (s *Service) CreateReceipt(ctx context.Context, req *CreateReceiptRequest) (*Receipt, error) {
	receipt := &Receipt{
		ID:       uuid.New().String(),
		Merchant: req.Merchant,
		Subtotal: req.Subtotal,
		Tax:      req.Tax,
		Tip:      req.Tip,
		Total:    req.Total,
		Currency: req.Currency,
	}
	if receipt.Currency == "" {
		receipt.Currency = "USD"
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", *req.Date, err)
		}
		receipt.Date = &date
	}

	receipt.Items = make([]LineItem, len(req.Items))
	for i, item := range req.Items {
		totalPrice := item.TotalPrice
		if totalPrice == 0 {
			totalPrice = item.Quantity * item.UnitPrice
		}
		receipt.Items[i] = LineItem{
			ID:         uuid.New().String(),
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: totalPrice,
		}
	}

	if err := s.store.CreateReceipt(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// ScanReceipt sends a captured image to the scanning service and stores the
// resulting receipt. OCR itself is entirely external.
func (s *Service) ScanReceipt(ctx context.Context, image []byte) (*Receipt, error) {
	result, err := s.scanner.Scan(ctx, image)
	if err != nil {
		return nil, err
	}
	if !result.Success || result.Receipt == nil {
		return nil, fmt.Errorf("%w: %s", ErrScanFailed, result.Message)
	}

	scanned := result.Receipt
	receipt := &Receipt{
		ID:       uuid.New().String(),
		Merchant: scanned.Merchant,
		Subtotal: scanned.Subtotal,
		Tax:      scanned.Tax,
		Tip:      scanned.Tip,
		Total:    scanned.Total,
		Currency: scanned.Currency,
	}
	if receipt.Currency == "" {
		receipt.Currency = "USD"
	}
	receipt.Items = make([]LineItem, len(scanned.Items))
	for i, item := range scanned.Items {
		receipt.Items[i] = LineItem{
			ID:         uuid.New().String(),
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
	}

	if err := s.store.CreateReceipt(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// GetReceipt retrieves a receipt by ID.
func (s *Service) GetReceipt(ctx context.Context, id string) (*Receipt, error) {
	receipt, err := s.store.GetReceiptByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, ErrReceiptNotFound
	}
	return receipt, nil
}

// ListReceipts retrieves a page of receipts.
func (s *Service) ListReceipts(ctx context.Context, page, perPage int) ([]*Receipt, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.store.ListReceipts(ctx, perPage, offset)
}

// DeleteReceipt removes a receipt and its split.
func (s *Service) DeleteReceipt(ctx context.Context, id string) error {
	return s.store.DeleteReceipt(ctx, id)
}

// CalculateSplit validates the split inputs, computes the split, and
// persists it on the receipt. Validation failures come back as a
// *SplitValidationError holding the user-facing messages; the previous split
// is left untouched in that case.
func (s *Service) CalculateSplit(ctx context.Context, id string, req *CalculateSplitRequest) (*Receipt, error) {
	receipt, err := s.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	in := req.ToInput()
	strategy := split.Strategy(req.Strategy)

	result := s.tolerances.Validate(strategy, receipt.SplitTotals(), receipt.SplitItems(), in)
	if !result.Valid {
		return nil, &SplitValidationError{Errors: result.Errors}
	}

	sd, err := s.tolerances.Calculate(strategy, receipt.SplitTotals(), receipt.SplitItems(), in)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateSplitData(ctx, id, sd); err != nil {
		return nil, err
	}

	receipt.SplitData = sd
	return receipt, nil
}

// ValidateSplit runs the validator without persisting anything, so the UI
// can check inputs as the user edits them.
func (s *Service) ValidateSplit(ctx context.Context, id string, req *CalculateSplitRequest) (split.Result, error) {
	receipt, err := s.GetReceipt(ctx, id)
	if err != nil {
		return split.Result{}, err
	}
	return s.tolerances.Validate(split.Strategy(req.Strategy), receipt.SplitTotals(), receipt.SplitItems(), req.ToInput()), nil
}

// SettleSplit records a payment against one person's share.
func (s *Service) SettleSplit(ctx context.Context, id, personID string, amount float64) (*Receipt, error) {
	receipt, sd, err := s.getSplit(ctx, id, personID)
	if err != nil {
		return nil, err
	}

	updated := split.Settle(sd, split.PersonID(personID), amount)
	if err := s.store.UpdateSplitData(ctx, id, updated); err != nil {
		return nil, err
	}

	receipt.SplitData = updated
	return receipt, nil
}

// SetSplitStatus forces a person's settlement status (including marking a
// settled person back as pending).
func (s *Service) SetSplitStatus(ctx context.Context, id, personID, status string) (*Receipt, error) {
	st := split.SplitStatus(status)
	switch st {
	case split.StatusPending, split.StatusPartial, split.StatusSettled:
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	receipt, sd, err := s.getSplit(ctx, id, personID)
	if err != nil {
		return nil, err
	}

	updated := split.SetStatus(sd, split.PersonID(personID), st)
	if err := s.store.UpdateSplitData(ctx, id, updated); err != nil {
		return nil, err
	}

	receipt.SplitData = updated
	return receipt, nil
}

// PersonBreakdown returns one person's detail view: their per-item amounts
// (for itemized splits) and their share of tax and tip. The per-item numbers
// come from the same resolution code that produced the aggregate shares.
func (s *Service) PersonBreakdown(ctx context.Context, id, personID string) (*BreakdownResponse, error) {
	receipt, sd, err := s.getSplit(ctx, id, personID)
	if err != nil {
		return nil, err
	}

	p := split.PersonID(personID)
	resp := &BreakdownResponse{
		PersonID: personID,
		Name:     s.resolveNames(ctx, sd)[p],
		Share:    sd.FriendShares[p],
		Tax:      sd.TaxDistribution[p],
		Total:    sd.Totals[p],
	}
	if sd.TipDistribution != nil {
		tip := sd.TipDistribution[p]
		resp.Tip = &tip
	}

	for _, item := range receipt.Items {
		amount := split.ItemShare(item.ToSplitItem(), sd.Assignments, p)
		if amount == 0 {
			continue
		}
		resp.Items = append(resp.Items, BreakdownItem{
			ItemID: item.ID,
			Name:   item.Name,
			Amount: amount,
		})
	}

	return resp, nil
}

// Shares builds the resolved per-person summary rows for a receipt's split,
// sorted by person id for a stable order. Returns nil when there is no split.
func (s *Service) Shares(ctx context.Context, receipt *Receipt) []PersonShare {
	sd := receipt.SplitData
	if sd == nil {
		return nil
	}

	names := s.resolveNames(ctx, sd)

	people := make([]split.PersonID, 0, len(sd.Totals))
	for p := range sd.Totals {
		people = append(people, p)
	}
	sort.Slice(people, func(i, j int) bool { return people[i] < people[j] })

	shares := make([]PersonShare, len(people))
	for i, p := range people {
		share := PersonShare{
			PersonID: string(p),
			Name:     names[p],
			Share:    sd.FriendShares[p],
			Tax:      sd.TaxDistribution[p],
			Total:    sd.Totals[p],
			Status:   split.StatusPending,
			Settled:  sd.SettledAmounts[p],
		}
		if sd.TipDistribution != nil {
			tip := sd.TipDistribution[p]
			share.Tip = &tip
		}
		if st, ok := sd.Statuses[p]; ok {
			share.Status = st
		}
		shares[i] = share
	}
	return shares
}

// resolveNames maps every participant to a display name using the lookup
// chain: friend directory, then the split's people snapshot, then "Unknown".
func (s *Service) resolveNames(ctx context.Context, sd *split.SplitData) map[split.PersonID]string {
	ids := make([]string, 0, len(sd.Totals))
	for p := range sd.Totals {
		ids = append(ids, string(p))
	}

	var directory map[string]string
	if s.names != nil {
		var err error
		directory, err = s.names.ResolveNames(ctx, ids)
		if err != nil {
			slog.Warn("friend directory lookup failed, falling back to snapshot names", "error", err)
		}
	}

	names := make(map[split.PersonID]string, len(sd.Totals))
	for p := range sd.Totals {
		if name, ok := directory[string(p)]; ok && name != "" {
			names[p] = name
			continue
		}
		if name, ok := sd.People[p]; ok && name != "" {
			names[p] = name
			continue
		}
		names[p] = "Unknown"
	}
	return names
}

// getSplit loads a receipt and checks that it has a split containing the
// given person.
func (s *Service) getSplit(ctx context.Context, id, personID string) (*Receipt, *split.SplitData, error) {
	receipt, err := s.GetReceipt(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if receipt.SplitData == nil {
		return nil, nil, ErrNoSplit
	}
	if _, ok := receipt.SplitData.Totals[split.PersonID(personID)]; !ok {
		return nil, nil, ErrPersonNotInSplit
	}
	return receipt, receipt.SplitData, nil
}
