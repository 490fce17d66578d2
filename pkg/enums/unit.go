package enums

import "fmt"

// Unit defines the quantity units a product can be stored in.
type Unit string

const (
	UnitGram    Unit = "gram"
	UnitBoxes   Unit = "boxes"
	UnitBottles Unit = "bottles"
)

var validUnits = []Unit{
	UnitGram,
	UnitBoxes,
	UnitBottles,
}

// String implements fmt.Stringer.
func (u Unit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known Unit.
func (u Unit) IsValid() bool {
	for _, candidate := range validUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUnit converts raw input into a Unit.
func ParseUnit(value string) (Unit, error) {
	for _, candidate := range validUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid unit %q", value)
}

// Units returns every known Unit.
func Units() []Unit {
	return append([]Unit(nil), validUnits...)
}
