package models

import (
	"time"

	"github.com/rchretien/fridge-app-backend/pkg/enums"
)

// Product is a fridge inventory row. CreationDate is stamped server-side and
// immutable; ExpiryDate must stay strictly later than it.
type Product struct {
	ID            uint       `gorm:"column:id;primaryKey"`
	Name          string     `gorm:"column:name;size:50;not null"`
	Description   string     `gorm:"column:description;size:256;not null"`
	Quantity      int        `gorm:"column:quantity;not null;check:quantity >= 1"`
	Unit          enums.Unit `gorm:"column:unit;size:50;not null"`
	CreationDate  time.Time  `gorm:"column:creation_date;not null"`
	ExpiryDate    time.Time  `gorm:"column:expiry_date;not null;check:expiry_date_check,expiry_date > creation_date"`
	ImageLocation string     `gorm:"column:image_location;size:256"`

	ProductTypeID uint         `gorm:"column:product_type_id;not null"`
	ProductType   *ProductType `gorm:"foreignKey:ProductTypeID"`

	ProductLocationID uint             `gorm:"column:product_location_id;not null"`
	ProductLocation   *ProductLocation `gorm:"foreignKey:ProductLocationID"`
}

// TableName keeps the original singular table naming.
func (Product) TableName() string {
	return "product"
}

// All lists every model for schema auto-migration on sqlite.
func All() []any {
	return []any{&ProductType{}, &ProductLocation{}, &Product{}}
}
