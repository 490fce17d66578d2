package enums

import "fmt"

// ProductType represents the seeded product type (category) names.
type ProductType string

const (
	ProductTypeDairy     ProductType = "dairy"
	ProductTypeMeat      ProductType = "meat"
	ProductTypeFruit     ProductType = "fruit"
	ProductTypeVegetable ProductType = "vegetable"
	ProductTypeLiquid    ProductType = "liquid"
)

var validProductTypes = []ProductType{
	ProductTypeDairy,
	ProductTypeMeat,
	ProductTypeFruit,
	ProductTypeVegetable,
	ProductTypeLiquid,
}

// String implements fmt.Stringer.
func (t ProductType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ProductType.
func (t ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}

// ProductTypes returns every known ProductType, in seed order.
func ProductTypes() []ProductType {
	return append([]ProductType(nil), validProductTypes...)
}
