// Package mocks provides mock implementations of the ports for testing the view service and handlers.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockStateStore(ctrl)
//	store.EXPECT().Get(gomock.Any(), "visitor").Return(view.State{}, ports.ErrStateNotFound)
package mocks

// Generate mock for StateStore interface from internal/ports package.
// This creates MockStateStore with methods: Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=state_store_mock.go github.com/jobboard/jobboard-ui/internal/ports StateStore

// Generate mock for IdentityProvider interface from internal/ports package.
// This creates MockIdentityProvider with methods: Lookup
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=identity_provider_mock.go github.com/jobboard/jobboard-ui/internal/ports IdentityProvider

// Generate mock for RoleMapper interface from internal/ports package.
// This creates MockRoleMapper with methods: Map
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=role_mapper_mock.go github.com/jobboard/jobboard-ui/internal/ports RoleMapper

// Generate mock for JobCatalog interface from internal/ports package.
// This creates MockJobCatalog with methods: List, Get
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_catalog_mock.go github.com/jobboard/jobboard-ui/internal/ports JobCatalog
