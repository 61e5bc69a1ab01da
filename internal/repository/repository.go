package repository

import (
	"context"

	"bpauto/internal/domain"
)

// Repository defines the interface for plan archive access
type Repository interface {
	// SavePlan stores a plan, assigning an ID and creation time if unset
	SavePlan(ctx context.Context, plan *domain.Plan) error

	// GetPlan returns nil, nil when the plan does not exist
	GetPlan(ctx context.Context, id string) (*domain.Plan, error)

	// ListPlans returns the newest plans first; limit <= 0 returns all
	ListPlans(ctx context.Context, limit int) ([]domain.PlanInfo, error)

	DeletePlan(ctx context.Context, id string) error

	// Close releases resources
	Close() error
}
