package controllers

import (
	"math"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rchretien/fridge-app-backend/api/responses"
	"github.com/rchretien/fridge-app-backend/api/validators"
	inventorysvc "github.com/rchretien/fridge-app-backend/internal/inventory"
	pkgerrors "github.com/rchretien/fridge-app-backend/pkg/errors"
	"github.com/rchretien/fridge-app-backend/pkg/logger"
	"github.com/rchretien/fridge-app-backend/pkg/pagination"
)

// CreateProduct handles POST /inventory/create.
func CreateProduct(svc *inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload inventorysvc.CreateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, inventorysvc.CreateProductResponse{
			ProductID: id,
			Message:   "Product created successfully",
		})
	}
}

// ListProducts handles GET /inventory/list.
func ListProducts(svc *inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		ascending, err := validators.ParseQueryBool(r, "ascending", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderBy := strings.TrimSpace(r.URL.Query().Get("order_by"))
		if orderBy == "" {
			orderBy = "id"
		}

		result, err := svc.List(r.Context(), inventorysvc.ListQuery{
			Ascending: ascending,
			Limit:     limit,
			Offset:    offset,
			OrderBy:   orderBy,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// SearchProductNames handles GET /inventory/startswith. Names come back in
// sentence case regardless of how they were stored.
func SearchProductNames(svc *inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		prefix := strings.TrimSpace(r.URL.Query().Get("name"))
		if prefix == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "query parameter is required").WithDetails(map[string]any{"field": "name"}))
			return
		}

		names, err := svc.SearchNames(r.Context(), prefix)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]inventorysvc.ProductName, 0, len(names))
		for _, name := range names {
			items = append(items, inventorysvc.ProductName{Name: sentenceCase(name)})
		}

		responses.WriteSuccess(w, inventorysvc.ProductNamesResponse{Names: items})
	}
}

// UpdateProduct handles PATCH /inventory/update.
func UpdateProduct(svc *inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := validators.ParseQueryUint(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload inventorysvc.UpdateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct handles DELETE /inventory/delete.
func DeleteProduct(svc *inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := validators.ParseQueryUint(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}

// sentenceCase uppercases the first rune and lowercases the rest.
func sentenceCase(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
