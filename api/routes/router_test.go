package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	inventorysvc "github.com/rchretien/fridge-app-backend/internal/inventory"
	"github.com/rchretien/fridge-app-backend/internal/lookup"
	"github.com/rchretien/fridge-app-backend/pkg/config"
	"github.com/rchretien/fridge-app-backend/pkg/db/models"
	"github.com/rchretien/fridge-app-backend/pkg/logger"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	require.NoError(t, lookup.Seed(context.Background(), db))

	svc, err := inventorysvc.NewService(db, time.UTC)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.DB.Driver = "sqlite"

	logg := logger.New(logger.Options{ServiceName: "api-test"})

	return NewRouter(cfg, logg, stubPinger{}, svc)
}

func doJSON(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func productPayload(overrides map[string]any) string {
	payload := map[string]any{
		"product_name":     "Peaches",
		"description":      "Juicy yellow peaches",
		"quantity":         3,
		"unit":             "boxes",
		"expiry_date":      time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		"product_type":     "fruit",
		"product_location": "refrigerator",
	}
	for k, v := range overrides {
		payload[k] = v
	}
	raw, _ := json.Marshal(payload)
	return string(raw)
}

func TestCreateAndListProducts(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/inventory/create", productPayload(nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ProductID uint   `json:"product_id"`
		Message   string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ProductID)
	assert.Equal(t, "Product created successfully", created.Message)

	rec = doJSON(t, router, http.MethodGet, "/inventory/list", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Products []map[string]any `json:"products"`
		Next     int              `json:"next_offset"`
		Total    int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Products, 1)
	assert.Equal(t, int64(1), listing.Total)
	assert.Equal(t, 1, listing.Next)

	product := listing.Products[0]
	assert.Equal(t, "Peaches", product["product_name"])
	assert.Equal(t, "Juicy yellow peaches", product["description"])
	assert.Equal(t, "fruit", product["product_type"])
	assert.Equal(t, "refrigerator", product["product_location"])
	assert.Equal(t, "file_path", product["image_location"])
}

func TestCreateProductValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/inventory/create",
		productPayload(map[string]any{"quantity": 0}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Detail)
}

func TestCreateProductUnknownTypeReturns400(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/inventory/create",
		productPayload(map[string]any{"product_type": "poultry"}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Detail, "Invalid product_type")
	assert.Contains(t, body.Detail, "Product type not found in database.")
}

func TestStartswithReturnsSentenceCase(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/inventory/create",
		productPayload(map[string]any{"product_name": "spinach"}))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/inventory/startswith?name=sp", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Names []struct {
			Name string `json:"name"`
		} `json:"names"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Names, 1)
	assert.Equal(t, "Spinach", body.Names[0].Name)
}

func TestUpdateProductRejectsPastExpiry(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/inventory/create", productPayload(nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ProductID uint `json:"product_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	past := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	rec = doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/inventory/update?product_id=%d", created.ProductID),
		fmt.Sprintf(`{"expiry_date": %q}`, past))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Detail, "cannot be earlier than creation date")
}

func TestUpdateProductUnknownID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPatch, "/inventory/update?product_id=9999",
		`{"quantity": 5}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Product not found in the database.", body.Detail)
}

func TestUpdateProductIgnoresUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/inventory/create", productPayload(nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ProductID uint `json:"product_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/inventory/update?product_id=%d", created.ProductID),
		`{"quantity": 7, "favorite_color": "blue"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, float64(7), updated["quantity"])
}

func TestDeleteProduct(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/inventory/create", productPayload(nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ProductID uint `json:"product_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	target := fmt.Sprintf("/inventory/delete?product_id=%d", created.ProductID)
	rec = doJSON(t, router, http.MethodDelete, target, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, target, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListUnknownOrderByReturns400(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/inventory/list?order_by=color", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Detail, "color")
}

func TestUtilsLookupLists(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/utils/product_type_list", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var types struct {
		ProductTypeList []map[string]any `json:"product_type_list"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &types))
	require.Len(t, types.ProductTypeList, 5)
	for _, item := range types.ProductTypeList {
		assert.NotContains(t, item, "id")
		assert.NotEmpty(t, item["name"])
	}

	rec = doJSON(t, router, http.MethodGet, "/utils/product_location_list", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var locations struct {
		ProductLocationList []struct {
			Name string `json:"name"`
		} `json:"product_location_list"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &locations))

	names := map[string]bool{}
	for _, item := range locations.ProductLocationList {
		names[item.Name] = true
	}
	assert.True(t, names["refrigerator"])
	assert.True(t, names["big freezer"])
	assert.True(t, names["small freezer"])
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-Fridge-Env"))

	rec = doJSON(t, router, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthReadyReportsDependencyFailure(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	require.NoError(t, lookup.Seed(context.Background(), db))

	svc, err := inventorysvc.NewService(db, time.UTC)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Env = "test"

	logg := logger.New(logger.Options{ServiceName: "api-test"})
	router := NewRouter(cfg, logg, stubPinger{err: fmt.Errorf("connection refused")}, svc)

	rec := doJSON(t, router, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRootIndex(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "fridge-app-backend", body["title"])
}
