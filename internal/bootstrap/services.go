package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/nextgen-organics/portal-api/config"
	"github.com/nextgen-organics/portal-api/internal/adapters/reaper"
	"github.com/nextgen-organics/portal-api/internal/adapters/s3"
	"github.com/nextgen-organics/portal-api/internal/core"
	"github.com/nextgen-organics/portal-api/internal/data"
	"github.com/nextgen-organics/portal-api/internal/domain/authz"
	"github.com/nextgen-organics/portal-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth       *service.AuthService
	Access     *service.AccessService
	Vendors    *service.VendorService
	Categories *service.CategoryService
	Products   *service.ProductService
	Orders     *service.OrderService
	Banners    *service.BannerService
	Settings   *service.SettingsService
	Dashboards *service.DashboardService
	// Uploads is nil when no object storage credentials are configured.
	Uploads *service.UploadService
	Actions core.AdminActionRepository
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Profiles   *data.ProfileRepo
	Identities *data.IdentityRepo
	Vendors    *data.VendorRepo
	Categories *data.CategoryRepo
	Products   *data.ProductRepo
	Orders     *data.OrderRepo
	Banners    *data.BannerRepo
	Settings   *data.SettingsRepo
	Actions    *data.AdminActionRepo
	Dashboards *data.DashboardRepo
}

func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		Profiles:   data.NewProfileRepo(db),
		Identities: data.NewIdentityRepo(db),
		Vendors:    data.NewVendorRepo(db),
		Categories: data.NewCategoryRepo(db),
		Products:   data.NewProductRepo(db),
		Orders:     data.NewOrderRepo(db),
		Banners:    data.NewBannerRepo(db),
		Settings:   data.NewSettingsRepo(db),
		Actions:    data.NewAdminActionRepo(db),
		Dashboards: data.NewDashboardRepo(db),
	}
}

// buildEngine turns the validated route configuration into the pure decision
// engine.
func buildEngine(cfg config.RoutesConfig) *authz.Engine {
	return authz.NewEngine(authz.Routes{
		Public:          cfg.PublicRoutes,
		AdminPrefixes:   cfg.AdminPrefixes,
		VendorPrefixes:  cfg.VendorPrefixes,
		AdminLogin:      cfg.AdminLoginPath,
		VendorLogin:     cfg.VendorLoginPath,
		AdminDashboard:  cfg.AdminDashboardPath,
		VendorDashboard: cfg.VendorDashboardPath,
		VendorPending:   cfg.VendorPendingPath,
	})
}

// buildUploadService wires the S3 object store when credentials are present.
// Returns nil otherwise; the router leaves upload routes unmounted.
func buildUploadService(cfg config.StorageConfig, logger *slog.Logger) (*service.UploadService, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		logger.Warn("object storage credentials not configured; uploads disabled")
		return nil, nil
	}

	store, err := s3.NewObjectStore(s3.Config{
		Bucket:        cfg.Bucket,
		Region:        cfg.Region,
		AccessKey:     cfg.AccessKey,
		SecretKey:     cfg.SecretKey,
		Endpoint:      cfg.Endpoint,
		PublicBaseURL: cfg.PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("wire object store: %w", err)
	}

	return service.NewUploadService(service.UploadServiceOptions{Store: store, Logger: logger})
}

// NewServices wires all application services from their repositories.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	repos := buildRepositories(deps.DB)
	appCfg := deps.Config

	auth, err := BuildAuthService(AuthDeps{
		Auth:        appCfg.Auth,
		DB:          deps.DB,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("wire auth service: %w", err)
	}

	access, err := service.NewAccessService(service.AccessServiceOptions{
		Engine:        buildEngine(appCfg.Routes),
		Sessions:      auth,
		Profiles:      repos.Identities,
		LookupTimeout: appCfg.Auth.ProfileLookupTimeout,
		Logger:        logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("wire access service: %w", err)
	}

	vendors, err := service.NewVendorService(service.VendorServiceOptions{
		Vendors:  repos.Vendors,
		Profiles: repos.Profiles,
		Audit:    repos.Actions,
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("wire vendor service: %w", err)
	}

	categories, err := service.NewCategoryService(service.CategoryServiceOptions{
		Categories: repos.Categories,
		Logger:     logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("wire category service: %w", err)
	}

	products, err := service.NewProductService(service.ProductServiceOptions{
		Products: repos.Products,
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("wire product service: %w", err)
	}

	orders, err := service.NewOrderService(service.OrderServiceOptions{
		Orders: repos.Orders,
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("wire order service: %w", err)
	}

	banners, err := service.NewBannerService(service.BannerServiceOptions{
		Banners: repos.Banners,
		Audit:   repos.Actions,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("wire banner service: %w", err)
	}

	settings, err := service.NewSettingsService(service.SettingsServiceOptions{
		Settings: repos.Settings,
		Audit:    repos.Actions,
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("wire settings service: %w", err)
	}

	dashboards, err := service.NewDashboardService(service.DashboardServiceOptions{
		Dashboards: repos.Dashboards,
		Vendors:    repos.Vendors,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("wire dashboard service: %w", err)
	}

	uploads, err := buildUploadService(appCfg.Storage, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Auth:       auth,
		Access:     access,
		Vendors:    vendors,
		Categories: categories,
		Products:   products,
		Orders:     orders,
		Banners:    banners,
		Settings:   settings,
		Dashboards: dashboards,
		Uploads:    uploads,
		Actions:    repos.Actions,
	}, nil
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// RunServicesWithShutdown starts all enabled services and manages their
// lifecycle. It blocks until a shutdown signal is received or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config with AppConfig is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabled, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if enabled[config.ServiceModeHTTP] {
		server := StartHTTPServer(&HTTPServerConfig{
			Config:   cfg.Config,
			Services: cfg.Services,
			Logger:   logger,
		})
		g.Go(func() error {
			<-gctx.Done()
			return ShutdownHTTPServer(ShutdownConfig{
				Server:  server,
				Timeout: cfg.Config.HTTP.ShutdownTimeout,
				Logger:  logger,
			})
		})
	}

	if enabled[config.ServiceModeReaper] {
		runner, runnerErr := reaper.NewRunner(reaper.RunnerOptions{
			DB:     cfg.DB,
			Config: cfg.Config.Reaper,
			Logger: logger,
		})
		if runnerErr != nil {
			return fmt.Errorf("wire reaper runner: %w", runnerErr)
		}
		g.Go(func() error {
			return runner.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("all services stopped")
	return nil
}
