package enums

import "fmt"

// ProductLocation represents the seeded storage location names.
type ProductLocation string

const (
	ProductLocationRefrigerator ProductLocation = "refrigerator"
	ProductLocationBigFreezer   ProductLocation = "big freezer"
	ProductLocationSmallFreezer ProductLocation = "small freezer"
)

var validProductLocations = []ProductLocation{
	ProductLocationRefrigerator,
	ProductLocationBigFreezer,
	ProductLocationSmallFreezer,
}

// String implements fmt.Stringer.
func (l ProductLocation) String() string {
	return string(l)
}

// IsValid reports whether the value is a known ProductLocation.
func (l ProductLocation) IsValid() bool {
	for _, candidate := range validProductLocations {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseProductLocation converts raw input into a ProductLocation.
func ParseProductLocation(value string) (ProductLocation, error) {
	for _, candidate := range validProductLocations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product location %q", value)
}

// ProductLocations returns every known ProductLocation, in seed order.
func ProductLocations() []ProductLocation {
	return append([]ProductLocation(nil), validProductLocations...)
}
