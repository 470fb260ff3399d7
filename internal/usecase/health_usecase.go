package usecase

import (
	"context"
	"time"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	db Pinger
}

func NewHealthUsecase(db Pinger) HealthUsecase {
	return &healthUsecase{db: db}
}

// Check reports the service and database state. The bool is false when the
// database cannot be reached.
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{
		"status":   "ok",
		"database": "ok",
	}
	if u.db == nil {
		status["database"] = "unconfigured"
		return status, true
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := u.db.Ping(ctx); err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		return status, false
	}
	return status, true
}
