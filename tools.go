//go:build tools

package tools

// This file documents the CLI tools used by the repository.
// It is not compiled into the binary.
//
// - github.com/matryer/moq: *_mock_test.go files for consumer-side interfaces
// - github.com/pressly/goose/v3/cmd/goose: pinned via the go.mod tool directive
