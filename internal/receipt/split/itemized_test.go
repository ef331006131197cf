package split

import (
	"math"
	"testing"
)

func TestItemizedBaseShares(t *testing.T) {
	items := []Item{
		{ID: "i1", Name: "Pizza", Quantity: 1, UnitPrice: 18, TotalPrice: 18},
		{ID: "i2", Name: "Beers", Quantity: 3, UnitPrice: 4, TotalPrice: 12},
		{ID: "i3", Name: "Salad", Quantity: 1, UnitPrice: 9, TotalPrice: 9},
	}
	totals := Totals{Subtotal: 39, Tax: 3.9, Total: 42.9}

	tests := []struct {
		name        string
		assignments []ItemAssignment
		want        map[PersonID]float64
	}{
		{
			name: "single item fully assigned to one person",
			assignments: []ItemAssignment{
				{ItemID: "i1", FriendIDs: []PersonID{"A"}},
			},
			want: map[PersonID]float64{"A": 18, "B": 0},
		},
		{
			name: "quantities split 2:1",
			assignments: []ItemAssignment{
				{ItemID: "i2", FriendIDs: []PersonID{"A", "B"}, Quantities: []float64{2, 1}},
			},
			want: map[PersonID]float64{"A": 8, "B": 4},
		},
		{
			name: "even fallback ignores item quantity",
			assignments: []ItemAssignment{
				{ItemID: "i2", FriendIDs: []PersonID{"A", "B"}},
			},
			want: map[PersonID]float64{"A": 6, "B": 6},
		},
		{
			name: "zero total quantity contributes nothing",
			assignments: []ItemAssignment{
				{ItemID: "i2", FriendIDs: []PersonID{"A", "B"}, Quantities: []float64{0, 0}},
			},
			want: map[PersonID]float64{"A": 0, "B": 0},
		},
		{
			name: "everything assigned",
			assignments: []ItemAssignment{
				{ItemID: "i1", FriendIDs: []PersonID{"A", "B"}},
				{ItemID: "i2", FriendIDs: []PersonID{"A", "B"}, Quantities: []float64{1, 2}},
				{ItemID: "i3", FriendIDs: []PersonID{"B"}},
			},
			want: map[PersonID]float64{"A": 13, "B": 26},
		},
		{
			name: "assignee outside participant list is ignored",
			assignments: []ItemAssignment{
				{ItemID: "i1", FriendIDs: []PersonID{"A", "Z"}},
			},
			want: map[PersonID]float64{"A": 9, "B": 0},
		},
	}

	calc := &ItemizedCalculator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{Participants: []PersonID{"A", "B"}, Assignments: tt.assignments}
			shares, err := calc.BaseShares(totals, items, in)
			if err != nil {
				t.Fatalf("BaseShares() error = %v", err)
			}
			for p, want := range tt.want {
				if math.Abs(shares[p]-want) > eps {
					t.Errorf("shares[%s] = %v, want %v", p, shares[p], want)
				}
			}
		})
	}
}

func TestItemShareMatchesAggregate(t *testing.T) {
	// The per-person breakdown must reproduce exactly what each item
	// contributed to the aggregate shares.
	items := []Item{
		{ID: "i1", Name: "Wings", Quantity: 2, UnitPrice: 7.5, TotalPrice: 15},
		{ID: "i2", Name: "Fries", Quantity: 1, UnitPrice: 4.99, TotalPrice: 4.99},
		{ID: "i3", Name: "Soda", Quantity: 3, UnitPrice: 2.1, TotalPrice: 6.3},
	}
	assignments := []ItemAssignment{
		{ItemID: "i1", FriendIDs: []PersonID{"A", "B"}, Quantities: []float64{1.5, 0.5}},
		{ItemID: "i2", FriendIDs: []PersonID{"A", "B", "C"}},
		{ItemID: "i3", FriendIDs: []PersonID{"C"}},
	}
	in := Input{Participants: []PersonID{"A", "B", "C"}, Assignments: assignments}

	shares, err := (&ItemizedCalculator{}).BaseShares(Totals{Subtotal: 26.29}, items, in)
	if err != nil {
		t.Fatalf("BaseShares() error = %v", err)
	}

	for _, p := range in.Participants {
		var sum float64
		for _, item := range items {
			sum += ItemShare(item, assignments, p)
		}
		if shares[p] != sum {
			t.Errorf("shares[%s] = %v, breakdown sum = %v; both paths must agree exactly", p, shares[p], sum)
		}
	}
}

func TestItemizedCalculateWithTax(t *testing.T) {
	items := []Item{
		{ID: "i1", Name: "Pasta", Quantity: 1, UnitPrice: 20, TotalPrice: 20},
		{ID: "i2", Name: "Salad", Quantity: 1, UnitPrice: 10, TotalPrice: 10},
	}
	totals := Totals{Subtotal: 30, Tax: 3, Total: 33}
	in := Input{
		Participants: []PersonID{"A", "B"},
		Assignments: []ItemAssignment{
			{ItemID: "i1", FriendIDs: []PersonID{"A"}},
			{ItemID: "i2", FriendIDs: []PersonID{"B"}},
		},
	}

	sd, err := Calculate(StrategyItemized, totals, items, in)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	// A carries 2/3 of the base, so 2/3 of the tax.
	if math.Abs(sd.Totals["A"]-22) > eps {
		t.Errorf("Totals[A] = %v, want 22", sd.Totals["A"])
	}
	if math.Abs(sd.Totals["B"]-11) > eps {
		t.Errorf("Totals[B] = %v, want 11", sd.Totals["B"])
	}
	if len(sd.Assignments) != 2 {
		t.Errorf("Assignments not persisted on the split: %v", sd.Assignments)
	}
}
