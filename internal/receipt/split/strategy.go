package split

import (
	"errors"
	"fmt"
	"math"
)

// Strategy selects how a receipt's subtotal is divided among participants.
type Strategy string

const (
	StrategyEqual      Strategy = "EQUAL"
	StrategyCustom     Strategy = "CUSTOM"
	StrategyPercentage Strategy = "PERCENTAGE"
	StrategyItemized   Strategy = "ITEMIZED"
)

// Calculator is the interface that all split strategies implement. It
// produces each participant's base share (pre-tax, pre-tip); tax and tip
// distribution and final rounding happen in Calculate.
type Calculator interface {
	// BaseShares computes every participant's pre-tax share of the subtotal.
	BaseShares(totals Totals, items []Item, in Input) (map[PersonID]float64, error)

	// Strategy returns the type identifier for this calculator.
	Strategy() Strategy
}

// Factory creates split calculators based on the requested strategy.
type Factory struct{}

// NewCalculatorFactory creates a new factory instance.
func NewCalculatorFactory() *Factory {
	return &Factory{}
}

// Create returns the calculator implementation for the given strategy.
func (f *Factory) Create(strategy Strategy) (Calculator, error) {
	switch strategy {
	case StrategyEqual:
		return &EqualCalculator{}, nil
	case StrategyCustom:
		return &CustomCalculator{}, nil
	case StrategyPercentage:
		return &PercentageCalculator{}, nil
	case StrategyItemized:
		return &ItemizedCalculator{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}
}

// CreateFromString creates a calculator from a string strategy name
// (useful for API requests).
func (f *Factory) CreateFromString(strategy string) (Calculator, error) {
	return f.Create(Strategy(strategy))
}

var (
	ErrNoParticipants  = errors.New("at least one participant is required")
	ErrUnknownStrategy = errors.New("unknown split strategy")
)

// Tolerances holds the numeric thresholds used for validation and tip
// presence. They encode business policy, not floating-point law, so they are
// a value that callers can override; DefaultTolerances matches the mobile
// app's behavior.
type Tolerances struct {
	// Sum is the allowed drift between a custom split's entered amounts
	// and the receipt subtotal, in currency units.
	Sum float64

	// Percent is the allowed drift of a percentage split's sum from 100,
	// in percentage points.
	Percent float64

	// TipThreshold is the amount below which a tip is treated as absent.
	TipThreshold float64
}

// DefaultTolerances returns the standard thresholds.
func DefaultTolerances() Tolerances {
	return Tolerances{
		Sum:          0.02,
		Percent:      0.1,
		TipThreshold: 0.01,
	}
}

// roundToTwoDecimals rounds a float to 2 decimal places.
func roundToTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}
