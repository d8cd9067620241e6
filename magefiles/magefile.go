//go:build mage

// Package main provides build targets for the reflected project using Mage.
//
// Usage:
//
//	mage build          Compile the reflected binary to bin/
//	mage install        Install reflected to GOPATH/bin
//	mage clean          Remove build artifacts
//	mage lint           Run golangci-lint
//	mage test:all       Run every test
//	mage test:unit      Run tests in short mode
//	mage test:race      Run every test with the race detector
//	mage test:cover     Write a coverage profile (--out path)
//	mage demo           Build, then seed and list a scratch workspace
//	mage stats          Print Go lines of code per package
package main
