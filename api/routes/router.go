package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rchretien/fridge-app-backend/api/controllers"
	"github.com/rchretien/fridge-app-backend/api/middleware"
	inventorysvc "github.com/rchretien/fridge-app-backend/internal/inventory"
	"github.com/rchretien/fridge-app-backend/pkg/config"
	"github.com/rchretien/fridge-app-backend/pkg/db"
	"github.com/rchretien/fridge-app-backend/pkg/logger"
)

// NewRouter assembles the HTTP surface: inventory CRUD, lookup utils, and
// health probes.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	inventoryService *inventorysvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	started := time.Now()

	r.Get("/", controllers.Index(cfg, started))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Post("/create", controllers.CreateProduct(inventoryService, logg))
		r.Get("/list", controllers.ListProducts(inventoryService, logg))
		r.Get("/startswith", controllers.SearchProductNames(inventoryService, logg))
		r.Patch("/update", controllers.UpdateProduct(inventoryService, logg))
		r.Delete("/delete", controllers.DeleteProduct(inventoryService, logg))
	})

	r.Route("/utils", func(r chi.Router) {
		r.Get("/product_type_list", controllers.ProductTypeList(inventoryService, logg))
		r.Get("/product_location_list", controllers.ProductLocationList(inventoryService, logg))
	})

	return r
}
