package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/organics-storefront/api/controllers"
	cartcontrollers "github.com/angelmondragon/organics-storefront/api/controllers/cart"
	"github.com/angelmondragon/organics-storefront/api/middleware"
	checkoutsvc "github.com/angelmondragon/organics-storefront/internal/checkout"
	"github.com/angelmondragon/organics-storefront/pkg/config"
	"github.com/angelmondragon/organics-storefront/pkg/logger"
	"github.com/angelmondragon/organics-storefront/pkg/storage"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storagePinger storage.Pinger,
	cartStore cartcontrollers.Store,
	checkoutService checkoutsvc.Service,
	catalog controllers.Catalog,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	deliveryFee := decimal.NewFromInt(cfg.Checkout.DeliveryFee)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, storagePinger))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(cartStore, deliveryFee, logg))
			r.Delete("/", cartcontrollers.CartClear(cartStore, logg))
			r.Get("/count", cartcontrollers.CartCount(cartStore, logg))
			r.Post("/items", cartcontrollers.CartAddItem(cartStore, deliveryFee, logg))
			r.Post("/catalog-items", cartcontrollers.CartAddCatalogItem(cartStore, catalog, deliveryFee, logg))
			r.Patch("/items/{productId}", cartcontrollers.CartSetQuantity(cartStore, deliveryFee, logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(cartStore, deliveryFee, logg))
		})

		r.Get("/checkout/quote", controllers.CheckoutQuote(checkoutService, logg))
		r.Post("/checkout", controllers.Checkout(checkoutService, logg))

		r.Get("/products", controllers.CatalogProducts(catalog, logg))
		r.Get("/search", controllers.CatalogSearch(catalog, logg))
	})

	return r
}
