// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `go generate ./test/mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/snapshot_repository.go -destination=snapshot_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/reporter.go -destination=reporter_mock.go -package=mocks
