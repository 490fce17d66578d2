// Package inventory implements the product data-access specialization on top
// of the generic engine: name-to-id lookup resolution, server-side creation
// stamping, sparse updates, and prefix search.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rchretien/fridge-app-backend/internal/lookup"
	"github.com/rchretien/fridge-app-backend/internal/repo"
	"github.com/rchretien/fridge-app-backend/pkg/db/models"
	"github.com/rchretien/fridge-app-backend/pkg/enums"
	pkgerrors "github.com/rchretien/fridge-app-backend/pkg/errors"
)

// DefaultImageLocation is stored when a create omits image_location.
const DefaultImageLocation = "file_path"

// ErrProductNotFound is the outward message for an unknown product id.
const ErrProductNotFound = "Product not found in the database."

// ListQuery carries the paging and ordering inputs for List.
type ListQuery struct {
	Ascending bool
	Limit     int
	Offset    int
	OrderBy   string
}

// Service exposes the product operations. Lookup names are resolved against
// live storage on every write; creation dates are stamped in the configured
// timezone.
type Service struct {
	base     repo.Base
	engine   *repo.Engine[models.Product, CreateProductRequest, UpdateProductRequest]
	resolver *lookup.Resolver
	location *time.Location
	now      func() time.Time
}

// NewService builds a Service bound to the provided GORM connection. The
// location controls creation_date stamping.
func NewService(db *gorm.DB, location *time.Location) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db connection required")
	}
	if location == nil {
		location = time.UTC
	}

	resolver, err := lookup.NewResolver(db)
	if err != nil {
		return nil, err
	}

	svc := &Service{
		base:     repo.NewBase(db),
		resolver: resolver,
		location: location,
		now:      time.Now,
	}

	engine, err := repo.NewEngine(db, repo.Config[models.Product, CreateProductRequest, UpdateProductRequest]{
		OrderColumns: []string{
			enums.OrderByID.String(),
			enums.OrderByName.String(),
			enums.OrderByCreationDate.String(),
			enums.OrderByExpiryDate.String(),
		},
		EncodeCreate: svc.encodeCreate,
		EncodeUpdate: svc.encodeUpdate,
	})
	if err != nil {
		return nil, err
	}
	svc.engine = engine

	return svc, nil
}

func (s *Service) encodeCreate(ctx context.Context, tx *gorm.DB, draft CreateProductRequest) (*models.Product, error) {
	unit, err := enums.ParseUnit(draft.Unit)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	typeID, err := s.resolver.ResolveType(ctx, tx, draft.ProductType)
	if err != nil {
		return nil, err
	}
	locationID, err := s.resolver.ResolveLocation(ctx, tx, draft.ProductLocation)
	if err != nil {
		return nil, err
	}

	creation := s.now().In(s.location)
	if draft.ExpiryDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expiry_date is required")
	}
	if err := checkExpiry(draft.ExpiryDate, creation); err != nil {
		return nil, err
	}

	image := draft.ImageLocation
	if image == "" {
		image = DefaultImageLocation
	}

	return &models.Product{
		Name:              draft.ProductName,
		Description:       draft.Description,
		Quantity:          draft.Quantity,
		Unit:              unit,
		CreationDate:      creation,
		ExpiryDate:        draft.ExpiryDate,
		ImageLocation:     image,
		ProductTypeID:     typeID,
		ProductLocationID: locationID,
	}, nil
}

func (s *Service) encodeUpdate(ctx context.Context, tx *gorm.DB, existing *models.Product, patch UpdateProductRequest) (map[string]any, error) {
	changes := map[string]any{}

	if patch.ProductName != nil {
		changes["name"] = *patch.ProductName
	}
	if patch.Description != nil {
		changes["description"] = *patch.Description
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
		changes["quantity"] = *patch.Quantity
	}
	if patch.Unit != nil {
		unit, err := enums.ParseUnit(*patch.Unit)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		changes["unit"] = unit
	}
	if patch.ExpiryDate != nil {
		if err := checkExpiry(*patch.ExpiryDate, existing.CreationDate); err != nil {
			return nil, err
		}
		changes["expiry_date"] = *patch.ExpiryDate
	}
	if patch.ProductType != nil {
		typeID, err := s.resolver.ResolveType(ctx, tx, *patch.ProductType)
		if err != nil {
			return nil, err
		}
		changes["product_type_id"] = typeID
	}
	if patch.ProductLocation != nil {
		locationID, err := s.resolver.ResolveLocation(ctx, tx, *patch.ProductLocation)
		if err != nil {
			return nil, err
		}
		changes["product_location_id"] = locationID
	}
	if patch.ImageLocation != nil {
		changes["image_location"] = *patch.ImageLocation
	}

	return changes, nil
}

// checkExpiry enforces that an expiry date lands strictly after the creation
// timestamp.
func checkExpiry(expiry, creation time.Time) error {
	if !expiry.After(creation) {
		return pkgerrors.New(pkgerrors.CodeInvalidExpiryDate,
			fmt.Sprintf("Invalid expiry_date: %s cannot be earlier than creation date %s.",
				expiry.Format(time.RFC3339), creation.Format(time.RFC3339)))
	}
	return nil
}

// Create persists a new product and returns its assigned id.
func (s *Service) Create(ctx context.Context, req CreateProductRequest) (uint, error) {
	row, err := s.engine.Create(ctx, req)
	if err != nil {
		return 0, err
	}
	return row.ID, nil
}

// CreateMany persists all products or none of them.
func (s *Service) CreateMany(ctx context.Context, reqs []CreateProductRequest) ([]uint, error) {
	rows, err := s.engine.CreateMany(ctx, reqs)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

// Get returns the product with the given id, or a not-found error.
func (s *Service) Get(ctx context.Context, id uint) (*ProductResponse, error) {
	row, err := s.engine.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, ErrProductNotFound)
	}

	typeNames, locationNames, err := s.lookupNames(ctx)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(*row, typeNames, locationNames)
	return &resp, nil
}

// List returns one page of products with lookup names attached.
func (s *Service) List(ctx context.Context, q ListQuery) (*ListProductsResponse, error) {
	page, err := s.engine.GetPage(ctx, repo.PageQuery{
		Offset:    q.Offset,
		Limit:     q.Limit,
		Ascending: q.Ascending,
		OrderBy:   q.OrderBy,
	})
	if err != nil {
		return nil, err
	}

	typeNames, locationNames, err := s.lookupNames(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]ProductResponse, 0, len(page.Items))
	for _, row := range page.Items {
		products = append(products, s.toResponse(row, typeNames, locationNames))
	}

	return &ListProductsResponse{
		Products:   products,
		NextOffset: page.NextOffset(),
		Total:      page.Total,
	}, nil
}

// Update applies the present fields of the patch to the product and returns
// the row as committed.
func (s *Service) Update(ctx context.Context, id uint, patch UpdateProductRequest) (*ProductResponse, error) {
	row, err := s.engine.Update(ctx, id, patch)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, ErrProductNotFound)
		}
		return nil, err
	}

	typeNames, locationNames, err := s.lookupNames(ctx)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(*row, typeNames, locationNames)
	return &resp, nil
}

// Delete removes the product with the given id.
func (s *Service) Delete(ctx context.Context, id uint) error {
	_, err := s.engine.Remove(ctx, id)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, ErrProductNotFound)
		}
		return err
	}
	return nil
}

// likeEscaper neutralizes LIKE metacharacters so prefixes match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchNames returns the names of products whose name starts with the given
// prefix, matched case-insensitively, in storage order.
func (s *Service) SearchNames(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := s.base.DB(ctx).
		Model(&models.Product{}).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, likeEscaper.Replace(strings.ToLower(prefix))+"%").
		Pluck("name", &names).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "searching product names")
	}
	return names, nil
}

// Types lists the seeded product types in id order.
func (s *Service) Types(ctx context.Context) ([]LookupItem, error) {
	rows, err := s.resolver.ListTypes(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]LookupItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, LookupItem{Name: row.Name})
	}
	return items, nil
}

// Locations lists the seeded product locations in id order.
func (s *Service) Locations(ctx context.Context) ([]LookupItem, error) {
	rows, err := s.resolver.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]LookupItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, LookupItem{Name: row.Name})
	}
	return items, nil
}

func (s *Service) lookupNames(ctx context.Context) (map[uint]string, map[uint]string, error) {
	types, err := s.resolver.ListTypes(ctx)
	if err != nil {
		return nil, nil, err
	}
	locations, err := s.resolver.ListLocations(ctx)
	if err != nil {
		return nil, nil, err
	}

	typeNames := make(map[uint]string, len(types))
	for _, row := range types {
		typeNames[row.ID] = row.Name
	}
	locationNames := make(map[uint]string, len(locations))
	for _, row := range locations {
		locationNames[row.ID] = row.Name
	}
	return typeNames, locationNames, nil
}

func (s *Service) toResponse(row models.Product, typeNames, locationNames map[uint]string) ProductResponse {
	return ProductResponse{
		ProductID:       row.ID,
		ProductName:     row.Name,
		Description:     row.Description,
		Quantity:        row.Quantity,
		Unit:            row.Unit.String(),
		CreationDate:    row.CreationDate,
		ExpiryDate:      row.ExpiryDate,
		ProductType:     typeNames[row.ProductTypeID],
		ProductLocation: locationNames[row.ProductLocationID],
		ImageLocation:   row.ImageLocation,
	}
}
