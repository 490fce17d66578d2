package enums

import "fmt"

// OrderBy enumerates the product columns list queries may sort on.
type OrderBy string

const (
	OrderByID           OrderBy = "id"
	OrderByName         OrderBy = "name"
	OrderByCreationDate OrderBy = "creation_date"
	OrderByExpiryDate   OrderBy = "expiry_date"
)

var validOrderBys = []OrderBy{
	OrderByID,
	OrderByName,
	OrderByCreationDate,
	OrderByExpiryDate,
}

// String implements fmt.Stringer.
func (o OrderBy) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderBy.
func (o OrderBy) IsValid() bool {
	for _, candidate := range validOrderBys {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderBy converts raw input into an OrderBy.
func ParseOrderBy(value string) (OrderBy, error) {
	for _, candidate := range validOrderBys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order_by %q", value)
}
