package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/rchretien/fridge-app-backend/pkg/errors"
)

type widget struct {
	ID    uint   `gorm:"column:id;primaryKey"`
	Name  string `gorm:"column:name;not null"`
	Score int    `gorm:"column:score;not null"`
}

type widgetPatch struct {
	Name  *string
	Score *int
}

func setupEngineTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func newWidgetEngine(t *testing.T, db *gorm.DB) *Engine[widget, widget, widgetPatch] {
	t.Helper()

	engine, err := NewEngine(db, Config[widget, widget, widgetPatch]{
		OrderColumns: []string{"id", "name", "score"},
		EncodeUpdate: func(_ context.Context, _ *gorm.DB, _ *widget, patch widgetPatch) (map[string]any, error) {
			changes := map[string]any{}
			if patch.Name != nil {
				changes["name"] = *patch.Name
			}
			if patch.Score != nil {
				changes["score"] = *patch.Score
			}
			return changes, nil
		},
	})
	require.NoError(t, err)
	return engine
}

func TestEngineCreateGetRoundtrip(t *testing.T) {
	db := setupEngineTestDB(t)
	engine := newWidgetEngine(t, db)
	ctx := context.Background()

	created, err := engine.Create(ctx, widget{Name: "alpha", Score: 7})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := engine.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "alpha", fetched.Name)
	assert.Equal(t, 7, fetched.Score)
}

func TestEngineGetAbsentReturnsNil(t *testing.T) {
	db := setupEngineTestDB(t)
	engine := newWidgetEngine(t, db)

	fetched, err := engine.Get(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, fetched)
}

func TestEngineRemoveThenAbsent(t *testing.T) {
	db := setupEngineTestDB(t)
	engine := newWidgetEngine(t, db)
	ctx := context.Background()

	created, err := engine.Create(ctx, widget{Name: "beta", Score: 1})
	require.NoError(t, err)

	removed, err := engine.Remove(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "beta", removed.Name)

	fetched, err := engine.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched)
}

func TestEngineRemoveUnknownID(t *testing.T) {
	db := setupEngineTestDB(t)
	engine := newWidgetEngine(t, db)

	_, err := engine.Remove(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestEngineUpdateEmptyPatchIsNoOp(t *testing.T) {
	db := setupEngineTestDB(t)
	engine := newWidgetEngine(t, db)
	ctx := context.Background()

	created, err := engine.Create(ctx, widget{Name: "gamma", Score: 3})
	require.NoError(t, err)

	updated, err := engine.Update(ctx, created.ID, widgetPatch{})
	require.NoError(t, err)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Score, updated.Score)
}

func TestEngineUpdateSingleFieldIsolation(t *testing.T) {
	db := setupEngineTestDB(t)
	engine := newWidgetEngine(t, db)
	ctx := context.Background()

	created, err := engine.Create(ctx, widget{Name: "delta", Score: 5})
	require.NoError(t, err)

	newScore := 9
	updated, err := engine.Update(ctx, created.ID, widgetPatch{Score: &newScore})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Score)
	assert.Equal(t, "delta", updated.Name)
}

func TestEngineUpdateUnknownID(t *testing.T) {
	db := setupEngineTestDB(t)
	engine := newWidgetEngine(t, db)

	name := "nope"
	_, err := engine.Update(context.Background(), 424242, widgetPatch{Name: &name})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestEngineGetPageUnknownOrderField(t *testing.T) {
	db := setupEngineTestDB(t)
	engine := newWidgetEngine(t, db)

	_, err := engine.GetPage(context.Background(), PageQuery{OrderBy: "favorite_color"})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUnknownOrderField))
	assert.Contains(t, err.Error(), "widget")
	assert.Contains(t, err.Error(), "favorite_color")
}

func TestEngineGetPageWalksAllRowsOnce(t *testing.T) {
	db := setupEngineTestDB(t)
	engine := newWidgetEngine(t, db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := engine.Create(ctx, widget{Name: fmt.Sprintf("w%d", i), Score: i})
		require.NoError(t, err)
	}

	seen := map[uint]bool{}
	offset := 0
	for {
		page, err := engine.GetPage(ctx, PageQuery{Offset: offset, Limit: 2, Ascending: true, OrderBy: "id"})
		require.NoError(t, err)
		assert.Equal(t, int64(5), page.Total)

		for _, item := range page.Items {
			assert.False(t, seen[item.ID], "row %d returned twice", item.ID)
			seen[item.ID] = true
		}
		if !page.HasMore() {
			break
		}
		offset = page.NextOffset()
	}
	assert.Len(t, seen, 5)
}

func TestEngineGetPageTotalIndependentOfLimit(t *testing.T) {
	db := setupEngineTestDB(t)
	engine := newWidgetEngine(t, db)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := engine.Create(ctx, widget{Name: fmt.Sprintf("t%d", i), Score: i})
		require.NoError(t, err)
	}

	page, err := engine.GetPage(ctx, PageQuery{Limit: 1, OrderBy: "id"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, 1, page.NextOffset())
}

func TestEngineGetPageDescendingByDefault(t *testing.T) {
	db := setupEngineTestDB(t)
	engine := newWidgetEngine(t, db)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := engine.Create(ctx, widget{Name: name, Score: 0})
		require.NoError(t, err)
	}

	page, err := engine.GetPage(ctx, PageQuery{OrderBy: "id"})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "third", page.Items[0].Name)
	assert.Equal(t, "first", page.Items[2].Name)
}

func TestEngineCreateManyAllOrNothing(t *testing.T) {
	db := setupEngineTestDB(t)

	engine, err := NewEngine(db, Config[widget, widget, widgetPatch]{
		OrderColumns: []string{"id"},
		EncodeCreate: func(_ context.Context, _ *gorm.DB, draft widget) (*widget, error) {
			if draft.Score < 0 {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "score must not be negative")
			}
			return &draft, nil
		},
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = engine.CreateMany(ctx, []widget{
		{Name: "ok", Score: 1},
		{Name: "bad", Score: -1},
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&widget{}).Count(&count).Error)
	assert.Zero(t, count, "failed batch must not persist any row")
}
