package model

import (
	"fmt"

	"github.com/mbsekit/sysmod/errors"
)

// Dimension is a physical dimension. Quantities of different dimensions
// are never comparable, whatever their magnitudes.
type Dimension string

const (
	DimNone     Dimension = ""
	DimLength   Dimension = "length"
	DimArea     Dimension = "area"
	DimDuration Dimension = "duration"
	DimMass     Dimension = "mass"
)

// Unit is a measurement unit with a conversion factor to the canonical
// base unit of its dimension (m, m², s, kg).
type Unit struct {
	Symbol string    `json:"symbol"`
	Dim    Dimension `json:"dimension"`
	Factor float64   `json:"factor"`
}

// unitTable maps unit symbols to their definitions. ASCII aliases are
// registered alongside the unicode symbols so loader input can use either.
var unitTable = map[string]Unit{
	// dimensionless
	"": {Symbol: "", Dim: DimNone, Factor: 1},

	// length, base m
	"m":  {Symbol: "m", Dim: DimLength, Factor: 1},
	"cm": {Symbol: "cm", Dim: DimLength, Factor: 0.01},
	"km": {Symbol: "km", Dim: DimLength, Factor: 1000},

	// area, base m²
	"m²":  {Symbol: "m²", Dim: DimArea, Factor: 1},
	"m2":  {Symbol: "m²", Dim: DimArea, Factor: 1},
	"km²": {Symbol: "km²", Dim: DimArea, Factor: 1e6},
	"km2": {Symbol: "km²", Dim: DimArea, Factor: 1e6},
	"ha":  {Symbol: "ha", Dim: DimArea, Factor: 1e4},

	// duration, base s
	"s":   {Symbol: "s", Dim: DimDuration, Factor: 1},
	"min": {Symbol: "min", Dim: DimDuration, Factor: 60},
	"h":   {Symbol: "h", Dim: DimDuration, Factor: 3600},

	// mass, base kg
	"kg": {Symbol: "kg", Dim: DimMass, Factor: 1},
	"g":  {Symbol: "g", Dim: DimMass, Factor: 0.001},
	"t":  {Symbol: "t", Dim: DimMass, Factor: 1000},
}

// UnitBySymbol looks up a unit by its symbol or ASCII alias
func UnitBySymbol(symbol string) (Unit, bool) {
	u, ok := unitTable[symbol]
	return u, ok
}

// Quantity is a numeric value with a first-class unit. Dimensionless
// numbers are quantities with the empty unit.
type Quantity struct {
	Magnitude float64 `json:"magnitude"`
	Unit      Unit    `json:"unit"`
}

// Dimensionless wraps a bare number as a quantity without a dimension
func Dimensionless(magnitude float64) Quantity {
	return Quantity{Magnitude: magnitude, Unit: unitTable[""]}
}

// NewQuantity builds a quantity from a magnitude and unit symbol
func NewQuantity(magnitude float64, symbol string) (Quantity, error) {
	u, ok := UnitBySymbol(symbol)
	if !ok {
		return Quantity{}, errors.Newf("unknown unit %q", symbol)
	}
	return Quantity{Magnitude: magnitude, Unit: u}, nil
}

// Canonical returns the magnitude normalized to the base unit of the
// quantity's dimension
func (q Quantity) Canonical() float64 {
	return q.Magnitude * q.Unit.Factor
}

// Compare orders two quantities after normalizing to the canonical base
// unit. Comparing quantities of different dimensions is an ErrUnitMismatch,
// never a raw magnitude comparison.
func (q Quantity) Compare(other Quantity) (int, error) {
	if q.Unit.Dim != other.Unit.Dim {
		return 0, errors.Wrapf(errors.ErrUnitMismatch,
			"cannot compare %s against %s", describeDim(q.Unit.Dim), describeDim(other.Unit.Dim))
	}
	a, b := q.Canonical(), other.Canonical()
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	}
	return 0, nil
}

func (q Quantity) String() string {
	if q.Unit.Symbol == "" {
		return fmt.Sprintf("%g", q.Magnitude)
	}
	return fmt.Sprintf("%g %s", q.Magnitude, q.Unit.Symbol)
}

func describeDim(d Dimension) string {
	if d == DimNone {
		return "dimensionless value"
	}
	return string(d) + " value"
}
