package usecase

import (
	"context"
	"time"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/logger"
)

const (
	statusUp   = "UP"
	statusDown = "DOWN"

	healthCheckTimeout = 2 * time.Second
)

// Probe checks one dependency
type Probe func(ctx context.Context) error

type healthUsecase struct {
	required map[string]Probe
	optional map[string]Probe
}

// NewHealthUsecase reports DOWN when any required probe fails. Optional
// probes are reported but never change the overall status.
func NewHealthUsecase(required, optional map[string]Probe) domain.HealthUsecase {
	return &healthUsecase{required: required, optional: optional}
}

func (u *healthUsecase) Check(ctx context.Context) domain.HealthStatus {
	status := domain.HealthStatus{Status: statusUp, Dependencies: map[string]string{}}

	for name, probe := range u.required {
		if !u.run(ctx, name, probe, status.Dependencies) {
			status.Status = statusDown
		}
	}
	for name, probe := range u.optional {
		u.run(ctx, name, probe, status.Dependencies)
	}
	return status
}

func (u *healthUsecase) run(ctx context.Context, name string, probe Probe, out map[string]string) bool {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := probe(ctx); err != nil {
		logger.Log.Warn("Health check failed", "dependency", name, "error", err)
		out[name] = statusDown
		return false
	}
	out[name] = statusUp
	return true
}
