package model

import (
	"testing"

	"github.com/mbsekit/sysmod/errors"
)

func TestQuantityNormalization(t *testing.T) {
	km2, err := NewQuantity(2.5, "km2")
	if err != nil {
		t.Fatalf("NewQuantity failed: %v", err)
	}
	m2, err := NewQuantity(2500000, "m²")
	if err != nil {
		t.Fatalf("NewQuantity failed: %v", err)
	}

	ord, err := km2.Compare(m2)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if ord != 0 {
		t.Errorf("2.5 km² vs 2500000 m²: ord = %d, want 0", ord)
	}
}

func TestQuantityOrdering(t *testing.T) {
	ha, _ := NewQuantity(300, "ha")
	km2, _ := NewQuantity(2.5, "km²")

	ord, err := ha.Compare(km2)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	// 300 ha = 3.0 km²
	if ord != 1 {
		t.Errorf("300 ha vs 2.5 km²: ord = %d, want 1", ord)
	}
}

func TestCrossDimensionComparisonFails(t *testing.T) {
	area, _ := NewQuantity(2500000, "m2")
	length, _ := NewQuantity(2500000, "m")

	_, err := area.Compare(length)
	if !errors.Is(err, errors.ErrUnitMismatch) {
		t.Fatalf("expected ErrUnitMismatch, got %v", err)
	}
}

func TestDimensionlessComparison(t *testing.T) {
	ord, err := Dimensionless(2).Compare(Dimensionless(0))
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if ord != 1 {
		t.Errorf("2 vs 0: ord = %d, want 1", ord)
	}

	// A dimensionless number does not compare against a quantity
	m, _ := NewQuantity(5, "m")
	if _, err := Dimensionless(5).Compare(m); !errors.Is(err, errors.ErrUnitMismatch) {
		t.Errorf("expected ErrUnitMismatch for dimensionless vs length, got %v", err)
	}
}

func TestUnknownUnit(t *testing.T) {
	if _, err := NewQuantity(1, "furlong"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestUnitAliases(t *testing.T) {
	ascii, ok := UnitBySymbol("m2")
	if !ok {
		t.Fatal("m2 alias missing")
	}
	unicode, ok := UnitBySymbol("m²")
	if !ok {
		t.Fatal("m² symbol missing")
	}
	if ascii != unicode {
		t.Errorf("alias mismatch: %v vs %v", ascii, unicode)
	}
}
