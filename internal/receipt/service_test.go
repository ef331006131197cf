package receipt

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/okarim/tabsplit/internal/receipt/split"
	"github.com/okarim/tabsplit/internal/scan"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	receipts map[string]*Receipt
}

func newFakeStore() *fakeStore {
	return &fakeStore{receipts: make(map[string]*Receipt)}
}

func (f *fakeStore) CreateReceipt(ctx context.Context, r *Receipt) error {
	r.CreatedAt = time.Now()
	f.receipts[r.ID] = r
	return nil
}

func (f *fakeStore) GetReceiptByID(ctx context.Context, id string) (*Receipt, error) {
	return f.receipts[id], nil
}

func (f *fakeStore) ListReceipts(ctx context.Context, limit, offset int) ([]*Receipt, int, error) {
	var out []*Receipt
	for _, r := range f.receipts {
		out = append(out, r)
	}
	return out, len(out), nil
}

func (f *fakeStore) UpdateSplitData(ctx context.Context, id string, sd *split.SplitData) error {
	r, ok := f.receipts[id]
	if !ok {
		return ErrReceiptNotFound
	}
	r.SplitData = sd
	return nil
}

func (f *fakeStore) DeleteReceipt(ctx context.Context, id string) error {
	if _, ok := f.receipts[id]; !ok {
		return ErrReceiptNotFound
	}
	delete(f.receipts, id)
	return nil
}

// fakeResolver resolves a fixed set of friend names.
type fakeResolver struct {
	names map[string]string
}

func (f *fakeResolver) ResolveNames(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

// fakeScanner returns a canned scan result.
type fakeScanner struct {
	result *scan.Result
	err    error
}

func (f *fakeScanner) Scan(ctx context.Context, image []byte) (*scan.Result, error) {
	return f.result, f.err
}

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	resolver := &fakeResolver{names: map[string]string{"friend-ana": "Ana"}}
	svc := NewService(store, resolver, &fakeScanner{})
	return svc, store
}

func seedReceipt(t *testing.T, svc *Service) *Receipt {
	t.Helper()
	r, err := svc.CreateReceipt(context.Background(), &CreateReceiptRequest{
		Merchant: "Trattoria",
		Items: []CreateLineItemRequest{
			{Name: "Pasta", Quantity: 1, UnitPrice: 20},
			{Name: "Salad", Quantity: 1, UnitPrice: 10},
		},
		Subtotal: 30,
		Tax:      3,
		Total:    33,
	})
	if err != nil {
		t.Fatalf("CreateReceipt() error = %v", err)
	}
	return r
}

func TestCreateReceiptDerivesItemTotals(t *testing.T) {
	svc, _ := newTestService(t)
	r := seedReceipt(t, svc)

	if r.Currency != "USD" {
		t.Errorf("Currency = %q, want USD default", r.Currency)
	}
	if r.Items[0].TotalPrice != 20 {
		t.Errorf("item total = %v, want derived 20", r.Items[0].TotalPrice)
	}
	if r.Items[0].ID == "" || r.Items[0].ID == r.Items[1].ID {
		t.Errorf("item ids not unique: %q %q", r.Items[0].ID, r.Items[1].ID)
	}
}

func TestCalculateSplitPersists(t *testing.T) {
	svc, store := newTestService(t)
	r := seedReceipt(t, svc)

	updated, err := svc.CalculateSplit(context.Background(), r.ID, &CalculateSplitRequest{
		Strategy:     "EQUAL",
		Participants: []string{"friend-ana", "temp-bo"},
		People:       map[string]string{"temp-bo": "Bo"},
	})
	if err != nil {
		t.Fatalf("CalculateSplit() error = %v", err)
	}

	if math.Abs(updated.SplitData.Totals["friend-ana"]-16.5) > 0.001 {
		t.Errorf("total = %v, want 16.5", updated.SplitData.Totals["friend-ana"])
	}
	if store.receipts[r.ID].SplitData == nil {
		t.Error("split not persisted to the store")
	}

	// Name chain: directory for the friend, snapshot for the temp person.
	shares := svc.Shares(context.Background(), updated)
	byID := make(map[string]PersonShare)
	for _, s := range shares {
		byID[s.PersonID] = s
	}
	if byID["friend-ana"].Name != "Ana" {
		t.Errorf("friend name = %q, want Ana from the directory", byID["friend-ana"].Name)
	}
	if byID["temp-bo"].Name != "Bo" {
		t.Errorf("temp name = %q, want Bo from the snapshot", byID["temp-bo"].Name)
	}
}

func TestCalculateSplitRejectsInvalidInput(t *testing.T) {
	svc, store := newTestService(t)
	r := seedReceipt(t, svc)

	_, err := svc.CalculateSplit(context.Background(), r.ID, &CalculateSplitRequest{
		Strategy:     "CUSTOM",
		Participants: []string{"A", "B"},
		Amounts:      map[string]float64{"A": 10, "B": 10}, // sums to 20, subtotal is 30
	})

	var validation *SplitValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("CalculateSplit() error = %v, want SplitValidationError", err)
	}
	if len(validation.Errors) == 0 {
		t.Error("validation error carries no messages")
	}
	if store.receipts[r.ID].SplitData != nil {
		t.Error("invalid split must not be persisted")
	}
}

func TestSettleSplitFlow(t *testing.T) {
	svc, _ := newTestService(t)
	r := seedReceipt(t, svc)

	_, err := svc.CalculateSplit(context.Background(), r.ID, &CalculateSplitRequest{
		Strategy:     "EQUAL",
		Participants: []string{"A", "B"},
	})
	if err != nil {
		t.Fatalf("CalculateSplit() error = %v", err)
	}

	updated, err := svc.SettleSplit(context.Background(), r.ID, "A", 10)
	if err != nil {
		t.Fatalf("SettleSplit() error = %v", err)
	}
	if updated.SplitData.Statuses["A"] != split.StatusPartial {
		t.Errorf("status = %v, want PARTIAL", updated.SplitData.Statuses["A"])
	}

	// Overpay the remainder; the settled amount clamps.
	updated, err = svc.SettleSplit(context.Background(), r.ID, "A", 1000)
	if err != nil {
		t.Fatalf("SettleSplit() error = %v", err)
	}
	if updated.SplitData.Statuses["A"] != split.StatusSettled {
		t.Errorf("status = %v, want SETTLED", updated.SplitData.Statuses["A"])
	}
	if updated.SplitData.SettledAmounts["A"] != updated.SplitData.Totals["A"] {
		t.Errorf("settled = %v, want clamped to %v", updated.SplitData.SettledAmounts["A"], updated.SplitData.Totals["A"])
	}

	// And back to pending, explicitly.
	updated, err = svc.SetSplitStatus(context.Background(), r.ID, "A", "PENDING")
	if err != nil {
		t.Fatalf("SetSplitStatus() error = %v", err)
	}
	if updated.SplitData.SettledAmounts["A"] != 0 {
		t.Errorf("settled = %v, want 0 after PENDING", updated.SplitData.SettledAmounts["A"])
	}

	// Unknown person and unknown status are both rejected.
	if _, err := svc.SettleSplit(context.Background(), r.ID, "ghost", 5); !errors.Is(err, ErrPersonNotInSplit) {
		t.Errorf("settle unknown person: error = %v, want ErrPersonNotInSplit", err)
	}
	if _, err := svc.SetSplitStatus(context.Background(), r.ID, "A", "MAYBE"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("bad status: error = %v, want ErrInvalidStatus", err)
	}
}

func TestSettleWithoutSplit(t *testing.T) {
	svc, _ := newTestService(t)
	r := seedReceipt(t, svc)

	if _, err := svc.SettleSplit(context.Background(), r.ID, "A", 5); !errors.Is(err, ErrNoSplit) {
		t.Errorf("SettleSplit() error = %v, want ErrNoSplit", err)
	}
}

func TestPersonBreakdownMatchesShares(t *testing.T) {
	svc, _ := newTestService(t)
	r := seedReceipt(t, svc)

	req := &CalculateSplitRequest{
		Strategy:     "ITEMIZED",
		Participants: []string{"A", "B"},
		Assignments: []AssignmentRequest{
			{ItemID: r.Items[0].ID, FriendIDs: []string{"A"}},
			{ItemID: r.Items[1].ID, FriendIDs: []string{"A", "B"}},
		},
	}
	updated, err := svc.CalculateSplit(context.Background(), r.ID, req)
	if err != nil {
		t.Fatalf("CalculateSplit() error = %v", err)
	}

	breakdown, err := svc.PersonBreakdown(context.Background(), r.ID, "A")
	if err != nil {
		t.Fatalf("PersonBreakdown() error = %v", err)
	}

	var sum float64
	for _, item := range breakdown.Items {
		sum += item.Amount
	}
	if sum != updated.SplitData.FriendShares["A"] {
		t.Errorf("breakdown items sum to %v, aggregate share is %v; must match exactly",
			sum, updated.SplitData.FriendShares["A"])
	}
	if len(breakdown.Items) != 2 {
		t.Errorf("breakdown items = %d, want 2", len(breakdown.Items))
	}
}

func TestScanReceipt(t *testing.T) {
	store := newFakeStore()
	scanner := &fakeScanner{result: &scan.Result{
		Success: true,
		Receipt: &scan.ReceiptData{
			Merchant: "Corner Cafe",
			Items: []scan.ItemData{
				{Name: "Latte", Quantity: 2, UnitPrice: 4.5, TotalPrice: 9},
			},
			Subtotal: 9,
			Tax:      0.72,
			Total:    9.72,
			Currency: "EUR",
		},
	}}
	svc := NewService(store, &fakeResolver{}, scanner)

	r, err := svc.ScanReceipt(context.Background(), []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("ScanReceipt() error = %v", err)
	}
	if r.Merchant != "Corner Cafe" || r.Currency != "EUR" {
		t.Errorf("receipt = %+v", r)
	}
	if len(r.Items) != 1 || r.Items[0].ID == "" {
		t.Errorf("scanned items not normalized: %+v", r.Items)
	}
}

func TestScanReceiptFailure(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeResolver{}, &fakeScanner{
		result: &scan.Result{Success: false, Message: "image too blurry"},
	})

	_, err := svc.ScanReceipt(context.Background(), []byte("x"))
	if !errors.Is(err, ErrScanFailed) {
		t.Errorf("ScanReceipt() error = %v, want ErrScanFailed", err)
	}
}
