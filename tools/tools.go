//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// They are run via `go install` or `go run` and are not tracked in go.mod.
package tools

// Development tools:
//
// Air - live reload while editing templates and handlers (DEV=true)
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs: https://github.com/air-verse/air
//
// mockgen - regenerates internal/mocks from internal/ports
//   Run: go generate ./internal/mocks
//   Version: go.uber.org/mock v0.6.0 (matches go.mod)
