package controllers

import (
	"net/http"

	"github.com/rchretien/fridge-app-backend/api/responses"
	inventorysvc "github.com/rchretien/fridge-app-backend/internal/inventory"
	pkgerrors "github.com/rchretien/fridge-app-backend/pkg/errors"
	"github.com/rchretien/fridge-app-backend/pkg/logger"
)

// ProductTypeList handles GET /utils/product_type_list.
func ProductTypeList(svc *inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		items, err := svc.Types(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, inventorysvc.ProductTypeListResponse{ProductTypeList: items})
	}
}

// ProductLocationList handles GET /utils/product_location_list.
func ProductLocationList(svc *inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		items, err := svc.Locations(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, inventorysvc.ProductLocationListResponse{ProductLocationList: items})
	}
}
