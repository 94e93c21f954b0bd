package ports

import (
	"context"

	"yield-analytics-service/internal/yield/core/domain"
)

// GoalTargetKey identifies one goal target row. AdvisorUserID is 0 for
// company targets.
type GoalTargetKey struct {
	PeriodID      string // YYYY-MM
	Scope         domain.Scope
	AdvisorUserID int64
}

type GoalTargetReaderPort interface {
	// FetchGoalTargets returns empty targets when none are stored.
	FetchGoalTargets(ctx context.Context, key GoalTargetKey) (domain.GoalTargets, error)
}
