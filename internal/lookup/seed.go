package lookup

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rchretien/fridge-app-backend/pkg/db/models"
	"github.com/rchretien/fridge-app-backend/pkg/enums"
	pkgerrors "github.com/rchretien/fridge-app-backend/pkg/errors"
)

// Seed inserts the known product type and location names, skipping any that
// already exist. Safe to run on every boot.
func Seed(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "db connection required for seeding")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		types := make([]models.ProductType, 0, len(enums.ProductTypes()))
		for _, t := range enums.ProductTypes() {
			types = append(types, models.ProductType{Name: t.String()})
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&types).Error
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seeding product types")
		}

		locations := make([]models.ProductLocation, 0, len(enums.ProductLocations()))
		for _, l := range enums.ProductLocations() {
			locations = append(locations, models.ProductLocation{Name: l.String()})
		}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&locations).Error
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seeding product locations")
		}

		return nil
	})
}
