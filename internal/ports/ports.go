package ports

import "context"

// HealthChecker reports storage liveness for the readiness probe.
type HealthChecker interface {
	Health(ctx context.Context) error
}
