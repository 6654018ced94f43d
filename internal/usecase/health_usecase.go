package usecase

import (
	"context"

	"profiler-backend/pkg/health"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
	// Ready reports every dependency's state and fails if any is down.
	Ready(ctx context.Context) (map[string]string, error)
}

type healthUsecase struct {
	checkers []health.Checker
}

func NewHealthUsecase(checkers ...health.Checker) HealthUsecase {
	return &healthUsecase{checkers: checkers}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	return map[string]string{
		"status": "ok",
	}
}

func (u *healthUsecase) Ready(ctx context.Context) (map[string]string, error) {
	report := make(map[string]string, len(u.checkers))
	var firstErr error
	for _, ch := range u.checkers {
		if err := ch.Check(ctx); err != nil {
			report[ch.Name()] = err.Error()
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		report[ch.Name()] = "ok"
	}
	return report, firstErr
}
