package models

// ProductLocation is a seeded lookup row for where an item is stored.
type ProductLocation struct {
	ID   uint   `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;size:50;uniqueIndex;not null"`
}

// TableName keeps the original singular table naming.
func (ProductLocation) TableName() string {
	return "product_location"
}
