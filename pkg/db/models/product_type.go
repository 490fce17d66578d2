package models

// ProductType is a seeded lookup row; products reference it by id, clients
// address it by name.
type ProductType struct {
	ID   uint   `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;size:50;uniqueIndex;not null"`
}

// TableName keeps the original singular table naming.
func (ProductType) TableName() string {
	return "product_type"
}
