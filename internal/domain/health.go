package domain

import "context"

// HealthStatus reports per-dependency status ("UP" or "DOWN")
type HealthStatus struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}
