//go:build mage

// Package main provides build targets for the smartfarm project using Mage.
//
// Usage:
//
//	mage build          Compile the smartfarm binary to bin/
//	mage install        Install smartfarm to GOPATH/bin
//	mage clean          Remove build artifacts
//	mage test:all       Run every package's tests
//	mage test:short     Run tests with -short
//	mage test:cover     Run tests and write coverage.out
//	mage lint           Run golangci-lint
//	mage vet            Run go vet
//	mage fmtCheck       Fail if any file needs gofmt
package main
