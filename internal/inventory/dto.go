package inventory

import "time"

// CreateProductRequest is the payload for POST /inventory/create. Lookup
// values travel by name; ids are internal. creation_date is never accepted
// from the client.
type CreateProductRequest struct {
	ProductName     string    `json:"product_name" validate:"required,min=1,max=50"`
	Description     string    `json:"description" validate:"required,min=1,max=256"`
	Quantity        int       `json:"quantity" validate:"required,min=1"`
	Unit            string    `json:"unit" validate:"required,oneof=gram boxes bottles"`
	ExpiryDate      time.Time `json:"expiry_date" validate:"required"`
	ProductType     string    `json:"product_type" validate:"required"`
	ProductLocation string    `json:"product_location" validate:"required"`
	ImageLocation   string    `json:"image_location" validate:"omitempty,max=256"`
}

// UpdateProductRequest is the payload for PATCH /inventory/update. Nil fields
// were absent from the request body and must not be written.
type UpdateProductRequest struct {
	ProductName     *string    `json:"product_name" validate:"omitempty,min=1,max=50"`
	Description     *string    `json:"description" validate:"omitempty,min=1,max=256"`
	Quantity        *int       `json:"quantity" validate:"omitempty,min=1"`
	Unit            *string    `json:"unit" validate:"omitempty,oneof=gram boxes bottles"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	ProductType     *string    `json:"product_type" validate:"omitempty,min=1"`
	ProductLocation *string    `json:"product_location" validate:"omitempty,min=1"`
	ImageLocation   *string    `json:"image_location" validate:"omitempty,max=256"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (r UpdateProductRequest) IsEmpty() bool {
	return r.ProductName == nil &&
		r.Description == nil &&
		r.Quantity == nil &&
		r.Unit == nil &&
		r.ExpiryDate == nil &&
		r.ProductType == nil &&
		r.ProductLocation == nil &&
		r.ImageLocation == nil
}

// ProductResponse is the outward product shape shared by list and update.
type ProductResponse struct {
	ProductID       uint      `json:"product_id"`
	ProductName     string    `json:"product_name"`
	Description     string    `json:"description"`
	Quantity        int       `json:"quantity"`
	Unit            string    `json:"unit"`
	CreationDate    time.Time `json:"creation_date"`
	ExpiryDate      time.Time `json:"expiry_date"`
	ProductType     string    `json:"product_type"`
	ProductLocation string    `json:"product_location"`
	ImageLocation   string    `json:"image_location"`
}

// CreateProductResponse acknowledges a create.
type CreateProductResponse struct {
	ProductID uint   `json:"product_id"`
	Message   string `json:"message"`
}

// ListProductsResponse is one page of products plus forward-paging state.
type ListProductsResponse struct {
	Products   []ProductResponse `json:"products"`
	NextOffset int               `json:"next_offset"`
	Total      int64             `json:"total"`
}

// ProductName is one prefix-search hit.
type ProductName struct {
	Name string `json:"name"`
}

// ProductNamesResponse is the prefix-search result set.
type ProductNamesResponse struct {
	Names []ProductName `json:"names"`
}

// LookupItem is one seeded lookup row as exposed by the utils endpoints.
// Lookup rows are addressed by name externally; the surrogate id stays
// internal.
type LookupItem struct {
	Name string `json:"name"`
}

// ProductTypeListResponse is the body of GET /utils/product_type_list.
type ProductTypeListResponse struct {
	ProductTypeList []LookupItem `json:"product_type_list"`
}

// ProductLocationListResponse is the body of GET /utils/product_location_list.
type ProductLocationListResponse struct {
	ProductLocationList []LookupItem `json:"product_location_list"`
}
