// Package lookup resolves and lists the seeded product type and location
// tables. Clients address lookups by name; products store the row id.
package lookup

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rchretien/fridge-app-backend/internal/repo"
	"github.com/rchretien/fridge-app-backend/pkg/db/models"
	pkgerrors "github.com/rchretien/fridge-app-backend/pkg/errors"
)

// Resolver maps lookup names to row ids against the live tables, so a name
// only resolves while its row actually exists.
type Resolver struct {
	base repo.Base
}

// NewResolver builds a Resolver bound to the provided GORM connection.
func NewResolver(db *gorm.DB) (*Resolver, error) {
	if db == nil {
		return nil, fmt.Errorf("db connection required")
	}
	return &Resolver{base: repo.NewBase(db)}, nil
}

// ResolveType returns the id of the product_type row with the given name.
// When tx is non-nil the read joins that transaction.
func (r *Resolver) ResolveType(ctx context.Context, tx *gorm.DB, name string) (uint, error) {
	var row models.ProductType
	err := r.conn(ctx, tx).First(&row, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidProductType,
			fmt.Sprintf("Invalid product_type: %q. Product type not found in database.", name))
	}
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving product type")
	}
	return row.ID, nil
}

// ResolveLocation returns the id of the product_location row with the given
// name. When tx is non-nil the read joins that transaction.
func (r *Resolver) ResolveLocation(ctx context.Context, tx *gorm.DB, name string) (uint, error) {
	var row models.ProductLocation
	err := r.conn(ctx, tx).First(&row, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidProductLocation,
			fmt.Sprintf("Invalid product_location: %q. Product location not found in database.", name))
	}
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving product location")
	}
	return row.ID, nil
}

// ListTypes returns every product_type row ordered by id.
func (r *Resolver) ListTypes(ctx context.Context) ([]models.ProductType, error) {
	var rows []models.ProductType
	if err := r.base.DB(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing product types")
	}
	return rows, nil
}

// ListLocations returns every product_location row ordered by id.
func (r *Resolver) ListLocations(ctx context.Context) ([]models.ProductLocation, error) {
	var rows []models.ProductLocation
	if err := r.base.DB(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing product locations")
	}
	return rows, nil
}

func (r *Resolver) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		if ctx != nil {
			return tx.WithContext(ctx)
		}
		return tx
	}
	return r.base.DB(ctx)
}
