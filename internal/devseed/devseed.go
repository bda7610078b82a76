// Package devseed populates a development database with demo marketplace
// data: an admin account, vendors in every approval state, categories,
// products, and homepage banners. Seeding is idempotent; rows that already
// exist are left alone.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nextgen-organics/portal-api/internal/data"
	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	"github.com/nextgen-organics/portal-api/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB       *sql.DB
	profiles *data.ProfileRepo
	vendors  *service.VendorService
	cats     *service.CategoryService
	products *service.ProductService
	banners  *service.BannerService
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) (Services, error) {
	profileRepo := data.NewProfileRepo(db)
	actionRepo := data.NewAdminActionRepo(db)

	vendors, err := service.NewVendorService(service.VendorServiceOptions{
		Vendors:  data.NewVendorRepo(db),
		Profiles: profileRepo,
		Audit:    actionRepo,
	})
	if err != nil {
		return Services{}, fmt.Errorf("wire vendor service: %w", err)
	}

	cats, err := service.NewCategoryService(service.CategoryServiceOptions{
		Categories: data.NewCategoryRepo(db),
	})
	if err != nil {
		return Services{}, fmt.Errorf("wire category service: %w", err)
	}

	products, err := service.NewProductService(service.ProductServiceOptions{
		Products: data.NewProductRepo(db),
	})
	if err != nil {
		return Services{}, fmt.Errorf("wire product service: %w", err)
	}

	banners, err := service.NewBannerService(service.BannerServiceOptions{
		Banners: data.NewBannerRepo(db),
		Audit:   actionRepo,
	})
	if err != nil {
		return Services{}, fmt.Errorf("wire banner service: %w", err)
	}

	return Services{
		DB:       db,
		profiles: profileRepo,
		vendors:  vendors,
		cats:     cats,
		products: products,
		banners:  banners,
	}, nil
}

// Run executes the full development seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "devseed")

	admin, err := seedAdmin(ctx, svcs.profiles, logger)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	vendorIDs, failures := seedVendors(ctx, svcs, admin.ID, logger)
	categoryIDs, catFailures := seedCategories(ctx, svcs.cats, logger)
	failures += catFailures
	failures += seedProducts(ctx, svcs.products, vendorIDs, categoryIDs, logger)
	failures += seedBanners(ctx, svcs.banners, admin.ID, logger)

	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	logger.InfoContext(ctx, "development seeding complete")
	return nil
}

const (
	adminEmail    = "admin@nextgen.test"
	adminPassword = "admin12345"
)

func seedAdmin(ctx context.Context, profiles *data.ProfileRepo, logger *slog.Logger) (*model.Profile, error) {
	existing, err := profiles.GetByEmail(ctx, adminEmail)
	if err == nil {
		logger.InfoContext(ctx, "admin profile already exists", "email", adminEmail)
		return existing, nil
	}
	if !errors.Is(err, data.ErrProfileNotFound) {
		return nil, err
	}

	hash, err := service.HashPassword(adminPassword)
	if err != nil {
		return nil, err
	}
	profile, err := profiles.Create(ctx, &model.CreateProfileRequest{
		Email:    adminEmail,
		FullName: "Portal Admin",
		Role:     domainauth.RoleAdmin,
		Password: adminPassword,
	}, hash)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "created admin profile", "email", adminEmail, "user_id", profile.ID)
	return profile, nil
}

type vendorSeed struct {
	Email    string
	FullName string
	ShopName string
	Phone    string
	Address  string
	Status   domainauth.VendorStatus
}

func vendorSeeds() []vendorSeed {
	return []vendorSeed{
		{
			Email:    "greenvalley@nextgen.test",
			FullName: "Priya Raman",
			ShopName: "Green Valley Farm",
			Phone:    "+1-555-0101",
			Address:  "12 Orchard Lane",
			Status:   domainauth.VendorApproved,
		},
		{
			Email:    "sunrise@nextgen.test",
			FullName: "Marco Silva",
			ShopName: "Sunrise Dairy Co-op",
			Phone:    "+1-555-0102",
			Address:  "88 Meadow Road",
			Status:   domainauth.VendorApproved,
		},
		{
			Email:    "hillside@nextgen.test",
			FullName: "Anna Kowalski",
			ShopName: "Hillside Apiary",
			Phone:    "+1-555-0103",
			Address:  "4 Ridge Trail",
			Status:   domainauth.VendorPending,
		},
		{
			Email:    "roadside@nextgen.test",
			FullName: "Dev Patel",
			ShopName: "Roadside Produce",
			Phone:    "+1-555-0104",
			Address:  "301 Market Street",
			Status:   domainauth.VendorRejected,
		},
	}
}

// seedVendors registers demo vendors and moves each to its target approval
// state. Returns approved vendor IDs keyed by shop name for product seeding.
func seedVendors(ctx context.Context, svcs Services, adminID string, logger *slog.Logger) (map[string]string, int) {
	failures := 0
	approved := make(map[string]string)

	for _, seed := range vendorSeeds() {
		vendor, created, err := ensureVendor(ctx, svcs, seed)
		if err != nil {
			logger.ErrorContext(ctx, "failed to seed vendor", "shop_name", seed.ShopName, "error", err)
			failures++
			continue
		}

		if created && seed.Status != domainauth.VendorPending {
			vendor, err = svcs.vendors.SetStatus(ctx, service.SetStatusInput{
				VendorID: vendor.ID,
				Status:   seed.Status,
				AdminID:  adminID,
			})
			if err != nil {
				logger.ErrorContext(ctx, "failed to set vendor status",
					"shop_name", seed.ShopName, "status", seed.Status, "error", err)
				failures++
				continue
			}
		}

		if vendor.Status == domainauth.VendorApproved {
			approved[seed.ShopName] = vendor.ID
		}
		msg := "vendor already exists"
		if created {
			msg = "created vendor"
		}
		logger.InfoContext(ctx, msg, "shop_name", seed.ShopName, "status", vendor.Status)
	}

	return approved, failures
}

func ensureVendor(ctx context.Context, svcs Services, seed vendorSeed) (*model.Vendor, bool, error) {
	profile, err := svcs.profiles.GetByEmail(ctx, seed.Email)
	if err == nil {
		vendor, getErr := svcs.vendors.GetByUserID(ctx, profile.ID)
		if getErr != nil {
			return nil, false, getErr
		}
		return vendor, false, nil
	}
	if !errors.Is(err, data.ErrProfileNotFound) {
		return nil, false, err
	}

	vendor, err := svcs.vendors.Register(ctx, service.RegisterVendorInput{
		Email:    seed.Email,
		FullName: seed.FullName,
		Password: "vendor12345",
		ShopName: seed.ShopName,
		Phone:    seed.Phone,
		Address:  seed.Address,
	})
	if err != nil {
		return nil, false, err
	}
	return vendor, true, nil
}

// seedCategories creates the demo categories and returns their IDs by name.
func seedCategories(ctx context.Context, svc *service.CategoryService, logger *slog.Logger) (map[string]string, int) {
	failures := 0
	byName := make(map[string]string)

	existing, err := svc.List(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list categories", "error", err)
		return byName, 1
	}
	for _, c := range existing {
		byName[c.Name] = c.ID
	}

	names := []string{"Fruits", "Vegetables", "Dairy", "Honey & Preserves", "Grains"}
	for _, name := range names {
		if _, ok := byName[name]; ok {
			logger.InfoContext(ctx, "category already exists", "name", name)
			continue
		}
		created, err := svc.Create(ctx, &model.CreateCategoryRequest{Name: name})
		if err != nil {
			logger.ErrorContext(ctx, "failed to create category", "name", name, "error", err)
			failures++
			continue
		}
		byName[name] = created.ID
		logger.InfoContext(ctx, "created category", "name", name)
	}

	return byName, failures
}

type productSeed struct {
	ShopName    string
	Category    string
	Name        string
	Description string
	Price       float64
	Stock       int
}

func productSeeds() []productSeed {
	return []productSeed{
		{
			ShopName: "Green Valley Farm", Category: "Fruits",
			Name: "Organic Honeycrisp Apples", Description: "Crisp, sweet apples picked this week.",
			Price: 4.99, Stock: 120,
		},
		{
			ShopName: "Green Valley Farm", Category: "Vegetables",
			Name: "Rainbow Carrot Bunch", Description: "Heirloom carrots in purple, yellow, and orange.",
			Price: 3.49, Stock: 80,
		},
		{
			ShopName: "Sunrise Dairy Co-op", Category: "Dairy",
			Name: "Grass-Fed Whole Milk", Description: "Non-homogenized, bottled on the farm.",
			Price: 5.25, Stock: 40,
		},
		{
			ShopName: "Sunrise Dairy Co-op", Category: "Dairy",
			Name: "Aged Farmhouse Cheddar", Description: "Twelve months in the cave.",
			Price: 11.00, Stock: 18,
		},
	}
}

func seedProducts(
	ctx context.Context,
	svc *service.ProductService,
	vendorIDs map[string]string,
	categoryIDs map[string]string,
	logger *slog.Logger,
) int {
	failures := 0

	for _, seed := range productSeeds() {
		vendorID, ok := vendorIDs[seed.ShopName]
		if !ok {
			logger.WarnContext(ctx, "skipping product, vendor not approved", "product", seed.Name, "shop_name", seed.ShopName)
			continue
		}
		categoryID, ok := categoryIDs[seed.Category]
		if !ok {
			logger.WarnContext(ctx, "skipping product, category missing", "product", seed.Name, "category", seed.Category)
			continue
		}

		exists, err := productExists(ctx, svc, vendorID, seed.Name)
		if err != nil {
			logger.ErrorContext(ctx, "failed to check product", "product", seed.Name, "error", err)
			failures++
			continue
		}
		if exists {
			logger.InfoContext(ctx, "product already exists", "product", seed.Name)
			continue
		}

		desc := seed.Description
		if _, err := svc.Create(ctx, &model.CreateProductRequest{
			VendorID:    vendorID,
			CategoryID:  categoryID,
			Name:        seed.Name,
			Description: &desc,
			Price:       seed.Price,
			Stock:       seed.Stock,
		}); err != nil {
			logger.ErrorContext(ctx, "failed to create product", "product", seed.Name, "error", err)
			failures++
			continue
		}
		logger.InfoContext(ctx, "created product", "product", seed.Name, "shop_name", seed.ShopName)
	}

	return failures
}

func productExists(ctx context.Context, svc *service.ProductService, vendorID, name string) (bool, error) {
	products, err := svc.List(ctx, model.ProductsListOptions{VendorID: &vendorID})
	if err != nil {
		return false, err
	}
	for _, p := range products {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func seedBanners(ctx context.Context, svc *service.BannerService, adminID string, logger *slog.Logger) int {
	failures := 0

	existing, err := svc.List(ctx, false)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list banners", "error", err)
		return 1
	}
	have := make(map[string]bool, len(existing))
	for _, b := range existing {
		have[b.Title] = true
	}

	subtitle := "Fresh picks from local farms, delivered to your door"
	seeds := []model.CreateBannerRequest{
		{
			Title:      "Harvest Season Sale",
			Subtitle:   &subtitle,
			ColorStart: "#3f6212",
			ColorEnd:   "#a3e635",
			Position:   1,
		},
		{
			Title:      "New Vendors Weekly",
			ColorStart: "#7c2d12",
			ColorEnd:   "#fb923c",
			Position:   2,
		},
	}

	for i := range seeds {
		if have[seeds[i].Title] {
			logger.InfoContext(ctx, "banner already exists", "title", seeds[i].Title)
			continue
		}
		if _, err := svc.Create(ctx, adminID, &seeds[i]); err != nil {
			logger.ErrorContext(ctx, "failed to create banner", "title", seeds[i].Title, "error", err)
			failures++
			continue
		}
		logger.InfoContext(ctx, "created banner", "title", seeds[i].Title)
	}

	return failures
}
