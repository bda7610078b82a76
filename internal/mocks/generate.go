// Package mocks provides mock implementations for testing the portal services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockOrderRepository(ctrl)
//	mockRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(order, nil)
package mocks

// Generate mock for ProfileRepository interface from internal/core package.
// This creates MockProfileRepository with methods for all ProfileRepository interface methods:
// Create, GetByID, GetByEmail
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=profile_repository_mock.go github.com/nextgen-organics/portal-api/internal/core ProfileRepository

// Generate mock for VendorRepository interface from internal/core package.
// This creates MockVendorRepository with methods for all VendorRepository interface methods:
// Create, GetByID, GetByUserID, ListWithOwners, UpdateStatus
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=vendor_repository_mock.go github.com/nextgen-organics/portal-api/internal/core VendorRepository

// Generate mock for OrderRepository interface from internal/core package.
// This creates MockOrderRepository with methods for all OrderRepository interface methods:
// GetByID, List, TransitionStatus, CancelStalePending
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=order_repository_mock.go github.com/nextgen-organics/portal-api/internal/core OrderRepository

// Generate mock for SettingsRepository interface from internal/core package.
// This creates MockSettingsRepository with methods for all SettingsRepository interface methods:
// Get, Upsert
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=settings_repository_mock.go github.com/nextgen-organics/portal-api/internal/core SettingsRepository

// Generate mock for AdminActionRepository interface from internal/core package.
// This creates MockAdminActionRepository with methods for all AdminActionRepository interface methods:
// Insert, List
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=admin_action_repository_mock.go github.com/nextgen-organics/portal-api/internal/core AdminActionRepository
