package httpx

import (
	"log/slog"
	"net/http"

	"github.com/nextgen-organics/portal-api/internal/core"
	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth       *service.AuthService
	Access     *service.AccessService
	Vendors    *service.VendorService
	Categories *service.CategoryService
	Products   *service.ProductService
	Orders     *service.OrderService
	Banners    *service.BannerService
	Settings   *service.SettingsService
	Dashboards *service.DashboardService
	// Optional: uploads are disabled when no object store is configured.
	Uploads *service.UploadService
	Actions core.AdminActionRepository

	CookieName   string
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router. Every route except the
// mux itself sits behind the access-control middleware, so the decision
// engine sees each request before any handler does.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Auth:         services.Auth,
		Access:       services.Access,
		CookieName:   services.CookieName,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	vendorHandlers := &VendorHandlers{Svc: services.Vendors}
	categoryHandlers := &CategoryHandlers{Svc: services.Categories}
	productHandlers := &ProductHandlers{Svc: services.Products, Vendors: services.Vendors}
	orderHandlers := &OrderHandlers{Svc: services.Orders, Vendors: services.Vendors}
	bannerHandlers := &BannerHandlers{Svc: services.Banners}
	settingsHandlers := &SettingsHandlers{Svc: services.Settings}
	dashboardHandlers := &DashboardHandlers{Svc: services.Dashboards}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	registerAuthRoutes(mux, authHandlers)
	mux.HandleFunc("POST /vendor/register", vendorHandlers.Register)

	registerAdminRoutes(mux, adminRouteHandlers{
		Vendors:    vendorHandlers,
		Categories: categoryHandlers,
		Products:   productHandlers,
		Orders:     orderHandlers,
		Banners:    bannerHandlers,
		Settings:   settingsHandlers,
		Dashboards: dashboardHandlers,
		Actions:    &AuditHandlers{Actions: services.Actions},
	})
	registerVendorRoutes(mux, vendorRouteHandlers{
		Vendors:    vendorHandlers,
		Categories: categoryHandlers,
		Products:   productHandlers,
		Orders:     orderHandlers,
		Dashboards: dashboardHandlers,
	})

	if services.Uploads != nil {
		uploadHandlers := &UploadHandlers{Svc: services.Uploads}
		adminOnly := RequireRole(domainauth.RoleAdmin)
		vendorOnly := RequireRole(domainauth.RoleVendor)
		mux.Handle("POST /admin/api/uploads", adminOnly(http.HandlerFunc(uploadHandlers.Upload)))
		mux.Handle("POST /vendor/api/uploads", vendorOnly(http.HandlerFunc(uploadHandlers.Upload)))
	}

	access := AccessControl(AccessControlOptions{
		Access:       services.Access,
		Auth:         services.Auth,
		CookieName:   services.CookieName,
		CookieDomain: services.CookieDomain,
	})

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return Recover(logger)(Logging(logger)(access(mux)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /admin/login", h.PasswordLogin)
	mux.HandleFunc("POST /vendor/login", h.PasswordLogin)
	mux.HandleFunc("GET /auth/sso/login", h.BeginSSO)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
	mux.HandleFunc("POST /forgot-password", h.ForgotPassword)
}

// adminRouteHandlers groups the handlers mounted under /admin/api.
type adminRouteHandlers struct {
	Vendors    *VendorHandlers
	Categories *CategoryHandlers
	Products   *ProductHandlers
	Orders     *OrderHandlers
	Banners    *BannerHandlers
	Settings   *SettingsHandlers
	Dashboards *DashboardHandlers
	Actions    *AuditHandlers
}

// registerAdminRoutes mounts the admin API. The access zone already restricts
// /admin to admins; RequireRole is a second, route-local check so a wiring
// mistake in the zone config fails closed.
func registerAdminRoutes(mux *http.ServeMux, h adminRouteHandlers) {
	wrap := func(hf http.HandlerFunc) http.Handler {
		return RequireRole(domainauth.RoleAdmin)(hf)
	}

	mux.Handle("GET /admin/api/dashboard", wrap(h.Dashboards.Admin))

	mux.Handle("GET /admin/api/vendors", wrap(h.Vendors.List))
	mux.Handle("GET /admin/api/vendors/{id}", wrap(h.Vendors.Get))
	mux.Handle("POST /admin/api/vendors/{id}/status", wrap(h.Vendors.SetStatus))

	mux.Handle("GET /admin/api/categories", wrap(h.Categories.List))
	mux.Handle("POST /admin/api/categories", wrap(h.Categories.Create))
	mux.Handle("GET /admin/api/categories/{id}", wrap(h.Categories.Get))
	mux.Handle("PATCH /admin/api/categories/{id}", wrap(h.Categories.Update))
	mux.Handle("DELETE /admin/api/categories/{id}", wrap(h.Categories.Delete))

	mux.Handle("GET /admin/api/products", wrap(h.Products.AdminList))
	mux.Handle("DELETE /admin/api/products/{id}", wrap(h.Products.AdminDelete))

	mux.Handle("GET /admin/api/orders", wrap(h.Orders.AdminList))
	mux.Handle("GET /admin/api/orders/{id}", wrap(h.Orders.AdminGet))

	mux.Handle("GET /admin/api/banners", wrap(h.Banners.List))
	mux.Handle("POST /admin/api/banners", wrap(h.Banners.Create))
	mux.Handle("GET /admin/api/banners/{id}", wrap(h.Banners.Get))
	mux.Handle("PATCH /admin/api/banners/{id}", wrap(h.Banners.Update))
	mux.Handle("DELETE /admin/api/banners/{id}", wrap(h.Banners.Delete))

	mux.Handle("GET /admin/api/settings", wrap(h.Settings.Get))
	mux.Handle("PUT /admin/api/settings", wrap(h.Settings.Update))

	mux.Handle("GET /admin/api/actions", wrap(h.Actions.List))
}

// vendorRouteHandlers groups the handlers mounted under /vendor/api.
type vendorRouteHandlers struct {
	Vendors    *VendorHandlers
	Categories *CategoryHandlers
	Products   *ProductHandlers
	Orders     *OrderHandlers
	Dashboards *DashboardHandlers
}

func registerVendorRoutes(mux *http.ServeMux, h vendorRouteHandlers) {
	wrap := func(hf http.HandlerFunc) http.Handler {
		return RequireRole(domainauth.RoleVendor)(hf)
	}

	mux.Handle("GET /vendor/api/me", wrap(h.Vendors.Me))
	mux.Handle("GET /vendor/api/dashboard", wrap(h.Dashboards.Vendor))

	mux.Handle("GET /vendor/api/categories", wrap(h.Categories.List))

	mux.Handle("GET /vendor/api/products", wrap(h.Products.VendorList))
	mux.Handle("POST /vendor/api/products", wrap(h.Products.Create))
	mux.Handle("GET /vendor/api/products/{id}", wrap(h.Products.Get))
	mux.Handle("PATCH /vendor/api/products/{id}", wrap(h.Products.Update))
	mux.Handle("DELETE /vendor/api/products/{id}", wrap(h.Products.Delete))
	mux.Handle("POST /vendor/api/products/{id}/stock", wrap(h.Products.AdjustStock))

	mux.Handle("GET /vendor/api/orders", wrap(h.Orders.VendorList))
	mux.Handle("GET /vendor/api/orders/{id}", wrap(h.Orders.VendorGet))
	mux.Handle("POST /vendor/api/orders/{id}/advance", wrap(h.Orders.Advance))
	mux.Handle("POST /vendor/api/orders/{id}/cancel", wrap(h.Orders.Cancel))
}
