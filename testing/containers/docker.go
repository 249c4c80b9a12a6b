//go:build integration

// Package containers starts disposable databases for integration tests. Tests are
// skipped when no Docker daemon is reachable.
package containers

import (
	"context"

	"github.com/testcontainers/testcontainers-go"
)

// isDockerAvailable reports whether the testcontainers Docker provider can reach a daemon.
func isDockerAvailable(ctx context.Context) bool {
	provider, err := testcontainers.NewDockerProvider()
	if err != nil {
		return false
	}
	defer provider.Close()

	_, err = provider.DaemonHost(ctx)
	return err == nil
}

func skipWithoutDocker(ctx context.Context, t TB) {
	if !isDockerAvailable(ctx) {
		t.Skip("Docker is not available - skipping integration test")
	}
}

// TB is the subset of testing.TB the helpers use.
type TB interface {
	Helper()
	Skip(args ...any)
	Logf(format string, args ...any)
	Fatalf(format string, args ...any)
	Cleanup(func())
}
