package router

import (
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/auth"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/port/http/handler"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/port/http/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Auth           *handler.AuthHandler
	Orders         *handler.OrderHandler
	Catalog        *handler.CatalogHandler
	Tokens         auth.TokenParser
	Users          middleware.UserLookup
	Metrics        *metrics.Metrics
	Log            logger.Logger
	RequestTimeout time.Duration
}

// New builds the chi mux with the shared middleware stack and every API route.
func New(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Tracing())
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(chimw.Recoverer)
	if d.RequestTimeout > 0 {
		r.Use(chimw.Timeout(d.RequestTimeout))
	}

	r.Get("/healthz", handler.Health)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	requireSignIn := middleware.JWTAuth(d.Tokens, d.Log)
	isAdmin := middleware.RequireAdmin(d.Users, d.Log)

	r.Route("/api/v1", func(api chi.Router) {
		SetupAuthRoutes(api, d.Auth, d.Orders, requireSignIn, isAdmin)
		SetupCatalogRoutes(api, d.Catalog, requireSignIn, isAdmin)
	})
	return r
}

// SetupAuthRoutes mounts account and order routes under /auth.
func SetupAuthRoutes(r chi.Router, auth *handler.AuthHandler, orders *handler.OrderHandler, requireSignIn, isAdmin func(http.Handler) http.Handler) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", auth.Register)
		ar.Post("/login", auth.Login)
		ar.Post("/forgot-password", auth.ForgotPassword)

		ar.Group(func(signedIn chi.Router) {
			signedIn.Use(requireSignIn)

			signedIn.Get("/user-auth", auth.AuthCheck)
			signedIn.Put("/profile", auth.UpdateProfile)
			signedIn.Get("/orders", orders.MyOrders)

			signedIn.Group(func(admin chi.Router) {
				admin.Use(isAdmin)

				admin.Get("/test", auth.Test)
				admin.Get("/admin-auth", auth.AuthCheck)
				admin.Get("/all-orders", orders.AllOrders)
				admin.Put("/order-status/{orderId}", orders.UpdateStatus)
			})
		})
	})
}

// SetupCatalogRoutes mounts the category and product routes used by the product form.
func SetupCatalogRoutes(r chi.Router, catalog *handler.CatalogHandler, requireSignIn, isAdmin func(http.Handler) http.Handler) {
	r.Route("/category", func(cr chi.Router) {
		cr.Get("/get-category", catalog.ListCategories)
		cr.With(requireSignIn, isAdmin).Post("/create-category", catalog.CreateCategory)
	})

	r.Route("/product", func(pr chi.Router) {
		pr.Get("/get-product", catalog.ListProducts)
		pr.With(requireSignIn, isAdmin).Post("/create-product", catalog.CreateProduct)
	})
}
