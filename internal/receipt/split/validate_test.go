package split

import (
	"testing"
)

func TestValidateItemizedUnassigned(t *testing.T) {
	items := []Item{
		{ID: "i1", Name: "Pizza", TotalPrice: 18},
		{ID: "i2", Name: "Beers", TotalPrice: 12},
		{ID: "i3", Name: "Salad", TotalPrice: 9},
	}

	tests := []struct {
		name        string
		assignments []ItemAssignment
		wantErrors  int
	}{
		{
			name: "all assigned",
			assignments: []ItemAssignment{
				{ItemID: "i1", FriendIDs: []PersonID{"A"}},
				{ItemID: "i2", FriendIDs: []PersonID{"B"}},
				{ItemID: "i3", FriendIDs: []PersonID{"A", "B"}},
			},
			wantErrors: 0,
		},
		{
			name: "one of three unassigned",
			assignments: []ItemAssignment{
				{ItemID: "i1", FriendIDs: []PersonID{"A"}},
				{ItemID: "i2", FriendIDs: []PersonID{"B"}},
			},
			wantErrors: 1,
		},
		{
			name:        "nothing assigned",
			assignments: nil,
			wantErrors:  3,
		},
		{
			name: "assignment with empty friend list counts as unassigned",
			assignments: []ItemAssignment{
				{ItemID: "i1", FriendIDs: []PersonID{"A"}},
				{ItemID: "i2", FriendIDs: nil},
				{ItemID: "i3", FriendIDs: []PersonID{"B"}},
			},
			wantErrors: 1,
		},
		{
			name: "zero quantities count as unassigned",
			assignments: []ItemAssignment{
				{ItemID: "i1", FriendIDs: []PersonID{"A"}},
				{ItemID: "i2", FriendIDs: []PersonID{"A", "B"}, Quantities: []float64{0, 0}},
				{ItemID: "i3", FriendIDs: []PersonID{"B"}},
			},
			wantErrors: 1,
		},
	}

	totals := Totals{Subtotal: 39, Tax: 3.9, Total: 42.9}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{Participants: []PersonID{"A", "B"}, Assignments: tt.assignments}
			result := Validate(StrategyItemized, totals, items, in)
			if len(result.Errors) != tt.wantErrors {
				t.Errorf("Validate() errors = %v, want %d of them", result.Errors, tt.wantErrors)
			}
			if result.Valid != (tt.wantErrors == 0) {
				t.Errorf("Validate() valid = %v with %d errors", result.Valid, len(result.Errors))
			}
		})
	}
}

func TestValidateCustom(t *testing.T) {
	totals := Totals{Subtotal: 50, Tax: 5, Total: 55}

	tests := []struct {
		name    string
		amounts map[PersonID]float64
		valid   bool
	}{
		{"exact", map[PersonID]float64{"A": 30, "B": 20}, true},
		{"within tolerance", map[PersonID]float64{"A": 30.01, "B": 20}, true},
		{"off by a dollar", map[PersonID]float64{"A": 30, "B": 21}, false},
		{"negative amount", map[PersonID]float64{"A": 55, "B": -5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{Participants: []PersonID{"A", "B"}, Amounts: tt.amounts}
			result := Validate(StrategyCustom, totals, nil, in)
			if result.Valid != tt.valid {
				t.Errorf("Validate() = %+v, want valid=%v", result, tt.valid)
			}
		})
	}
}

func TestValidatePercentage(t *testing.T) {
	totals := Totals{Subtotal: 50, Tax: 5, Total: 55}

	tests := []struct {
		name        string
		percentages map[PersonID]float64
		valid       bool
	}{
		{"exact hundred", map[PersonID]float64{"A": 60, "B": 40}, true},
		{"within tolerance", map[PersonID]float64{"A": 60.05, "B": 40}, true},
		{"short of hundred", map[PersonID]float64{"A": 60, "B": 30}, false},
		{"out of range", map[PersonID]float64{"A": 150, "B": -50}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{Participants: []PersonID{"A", "B"}, Percentages: tt.percentages}
			result := Validate(StrategyPercentage, totals, nil, in)
			if result.Valid != tt.valid {
				t.Errorf("Validate() = %+v, want valid=%v", result, tt.valid)
			}
		})
	}
}

func TestValidateParticipants(t *testing.T) {
	totals := Totals{Subtotal: 10, Tax: 1, Total: 11}

	result := Validate(StrategyEqual, totals, nil, Input{})
	if result.Valid {
		t.Error("Validate() with no participants: want invalid")
	}

	// A person referenced by an assignment but missing from the
	// participant list is an error for any strategy.
	in := Input{
		Participants: []PersonID{"A"},
		Assignments: []ItemAssignment{
			{ItemID: "i1", FriendIDs: []PersonID{"A", "ghost"}},
		},
	}
	result = Validate(StrategyEqual, totals, nil, in)
	if result.Valid {
		t.Errorf("Validate() with unknown assignee: want invalid, got %+v", result)
	}
}

func TestValidateEqualNeedsNothingElse(t *testing.T) {
	totals := Totals{Subtotal: 10, Tax: 1, Total: 11}
	result := Validate(StrategyEqual, totals, nil, Input{Participants: []PersonID{"A"}})
	if !result.Valid {
		t.Errorf("Validate() = %+v, want valid", result)
	}
}
