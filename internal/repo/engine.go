package repo

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pkgdb "github.com/rchretien/fridge-app-backend/pkg/db"
	pkgerrors "github.com/rchretien/fridge-app-backend/pkg/errors"
	"github.com/rchretien/fridge-app-backend/pkg/pagination"
)

// EncodeCreateFunc turns a create draft into a storable row. It runs inside
// the create transaction, so lookups it performs see the same snapshot the
// insert commits against.
type EncodeCreateFunc[M any, C any] func(ctx context.Context, tx *gorm.DB, draft C) (*M, error)

// EncodeUpdateFunc turns a partial update into column changes. Only fields
// present in the patch may produce keys; everything else stays untouched.
// The existing row is supplied for cross-field checks.
type EncodeUpdateFunc[M any, U any] func(ctx context.Context, tx *gorm.DB, existing *M, patch U) (map[string]any, error)

// Config wires the entity-specific pieces into an Engine.
type Config[M any, C any, U any] struct {
	// OrderColumns is the closed set of columns GetPage may sort on.
	OrderColumns []string
	EncodeCreate EncodeCreateFunc[M, C]
	EncodeUpdate EncodeUpdateFunc[M, U]
}

// Engine provides generic create/read/update/delete/list primitives over an
// entity with an integer surrogate key. Entity specifics come in through the
// encode hooks, not through embedding.
type Engine[M any, C any, U any] struct {
	base         Base
	orderable    map[string]struct{}
	encodeCreate EncodeCreateFunc[M, C]
	encodeUpdate EncodeUpdateFunc[M, U]
}

// PageQuery carries the paging inputs for GetPage.
type PageQuery struct {
	Offset    int
	Limit     int
	Ascending bool
	OrderBy   string
}

// NewEngine builds an engine bound to the provided GORM connection.
func NewEngine[M any, C any, U any](db *gorm.DB, cfg Config[M, C, U]) (*Engine[M, C, U], error) {
	if db == nil {
		return nil, fmt.Errorf("db connection required")
	}

	orderable := make(map[string]struct{}, len(cfg.OrderColumns))
	for _, col := range cfg.OrderColumns {
		orderable[col] = struct{}{}
	}

	encodeCreate := cfg.EncodeCreate
	if encodeCreate == nil {
		encodeCreate = identityEncode[M, C]
	}

	return &Engine[M, C, U]{
		base:         NewBase(db),
		orderable:    orderable,
		encodeCreate: encodeCreate,
		encodeUpdate: cfg.EncodeUpdate,
	}, nil
}

// identityEncode covers entities whose draft type is the model itself.
func identityEncode[M any, C any](_ context.Context, _ *gorm.DB, draft C) (*M, error) {
	switch v := any(draft).(type) {
	case *M:
		return v, nil
	case M:
		return &v, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeInternal,
			fmt.Sprintf("draft type %T is not assignable to %s", draft, entityName[M]()))
	}
}

func entityName[M any]() string {
	t := reflect.TypeOf(*new(M))
	if t == nil {
		return "entity"
	}
	return t.Name()
}

// Get returns the row with the given id, or (nil, nil) when absent. Absence
// is not an error; callers decide whether it is.
func (e *Engine[M, C, U]) Get(ctx context.Context, id uint) (*M, error) {
	var row M
	err := e.base.DB(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching row")
	}
	return &row, nil
}

// GetAll returns every row without ordering guarantees. Meant for small,
// fully-seeded lookup tables.
func (e *Engine[M, C, U]) GetAll(ctx context.Context) ([]M, error) {
	var rows []M
	if err := e.base.DB(ctx).Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing rows")
	}
	return rows, nil
}

// GetPage returns one ordered slice of the table plus the independent total
// row count. Sorting is descending unless asked otherwise; id breaks ties so
// page splits stay deterministic.
func (e *Engine[M, C, U]) GetPage(ctx context.Context, q PageQuery) (*pagination.Page[M], error) {
	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = "id"
	}
	if _, ok := e.orderable[orderBy]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnknownOrderField,
			fmt.Sprintf("%s cannot be ordered by field %q", entityName[M](), orderBy)).
			WithDetails(map[string]any{"entity": entityName[M](), "field": orderBy})
	}

	offset := pagination.NormalizeOffset(q.Offset)
	limit := pagination.NormalizeLimit(q.Limit)

	var total int64
	if err := e.base.DB(ctx).Model(new(M)).Count(&total).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting rows")
	}

	var rows []M
	err := e.base.DB(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: orderBy}, Desc: !q.Ascending}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: !q.Ascending}).
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing page")
	}

	return &pagination.Page[M]{
		Items:  rows,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}, nil
}


// wrapInsertErr classifies insert failures so unique violations surface as
// conflicts rather than opaque internal errors.
func wrapInsertErr(err error) error {
	if pkgdb.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "row already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "inserting row")
}

// Create encodes and persists a draft atomically, returning the row with its
// server-assigned fields populated.
func (e *Engine[M, C, U]) Create(ctx context.Context, draft C) (*M, error) {
	var created *M
	err := e.base.DB(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := e.encodeCreate(ctx, tx, draft)
		if err != nil {
			return err
		}
		if err := tx.Create(row).Error; err != nil {
			return wrapInsertErr(err)
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateMany persists all drafts in one transaction; a failure on any draft
// rolls back every one of them.
func (e *Engine[M, C, U]) CreateMany(ctx context.Context, drafts []C) ([]M, error) {
	created := make([]M, 0, len(drafts))
	err := e.base.DB(ctx).Transaction(func(tx *gorm.DB) error {
		for _, draft := range drafts {
			row, err := e.encodeCreate(ctx, tx, draft)
			if err != nil {
				return err
			}
			if err := tx.Create(row).Error; err != nil {
				return wrapInsertErr(err)
			}
			created = append(created, *row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies the fields present in patch to the row with the given id
// and returns the row as committed. Fields absent from the patch are left
// untouched.
func (e *Engine[M, C, U]) Update(ctx context.Context, id uint, patch U) (*M, error) {
	if e.encodeUpdate == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal,
			fmt.Sprintf("%s has no update encoder", entityName[M]()))
	}

	var updated *M
	err := e.base.DB(ctx).Transaction(func(tx *gorm.DB) error {
		var existing M
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound,
					fmt.Sprintf("%s %d not found", entityName[M](), id))
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching row")
		}

		changes, err := e.encodeUpdate(ctx, tx, &existing, patch)
		if err != nil {
			return err
		}

		if len(changes) > 0 {
			if err := tx.Model(&existing).Updates(changes).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating row")
			}
			if err := tx.First(&existing, "id = ?", id).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading row")
			}
		}

		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes the row with the given id and returns it as it existed
// immediately before deletion.
func (e *Engine[M, C, U]) Remove(ctx context.Context, id uint) (*M, error) {
	var removed *M
	err := e.base.DB(ctx).Transaction(func(tx *gorm.DB) error {
		var existing M
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound,
					fmt.Sprintf("%s %d not found", entityName[M](), id))
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching row")
		}
		if err := tx.Delete(&existing).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting row")
		}
		removed = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}