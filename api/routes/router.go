package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bakeria/bakeria-backend/api/controllers"
	"github.com/bakeria/bakeria-backend/api/middleware"
	cartsvc "github.com/bakeria/bakeria-backend/internal/cart"
	checkoutsvc "github.com/bakeria/bakeria-backend/internal/checkout"
	ordersvc "github.com/bakeria/bakeria-backend/internal/orders"
	"github.com/bakeria/bakeria-backend/pkg/config"
	"github.com/bakeria/bakeria-backend/pkg/logger"
	"github.com/bakeria/bakeria-backend/pkg/metrics"
	pkgredis "github.com/bakeria/bakeria-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	DB         controllers.Pinger
	Redis      *pkgredis.Client
	Cart       cartsvc.Service
	Checkout   checkoutsvc.Service
	Orders     ordersvc.Service
	Metrics    *metrics.HTTPMetrics
	Registry   *prometheus.Registry
	Idempotent pkgredis.IdempotencyStore
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.Route("/health", func(r chi.Router) {
		checks := map[string]controllers.Pinger{}
		if deps.DB != nil {
			checks["db"] = deps.DB
		}
		if deps.Redis != nil {
			checks["redis"] = deps.Redis
		}
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, checks, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	auth := middleware.Auth(cfg.JWT, logg)
	optionalAuth := middleware.OptionalAuth(cfg.JWT, logg)
	staffOnly := middleware.RequireStaff(logg)

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.With(auth).Get("/me", controllers.CartGetMine(deps.Cart, logg))
		r.With(auth).Post("/merge", controllers.CartMerge(deps.Cart, logg))

		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateQuantity(deps.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
			r.Post("/clear", controllers.CartClear(deps.Cart, logg))
		})

		// Anonymous storefronts fetch their cart by the id they minted
		// locally. Keep this last so it never shadows the named routes.
		r.Get("/{ownerId}", controllers.CartGetByOwner(deps.Cart, logg))
	})

	r.With(auth, middleware.Idempotency(deps.Idempotent, cfg.Checkout.IdempotencyTTL, logg)).
		Post("/api/v1/checkout", controllers.Checkout(deps.Checkout, logg))

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", controllers.OrdersListMine(deps.Orders, logg))
		r.Get("/{orderId}", controllers.OrdersGetMine(deps.Orders, logg))
	})

	r.Route("/api/v1/admin/orders", func(r chi.Router) {
		r.Use(auth, staffOnly)
		r.Get("/", controllers.AdminOrdersList(deps.Orders, logg))
		r.Patch("/{userId}/{orderId}/status", controllers.AdminOrderUpdateStatus(deps.Orders, logg))
	})

	return r
}
