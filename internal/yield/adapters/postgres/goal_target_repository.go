package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"yield-analytics-service/internal/yield/core/domain"
	"yield-analytics-service/internal/yield/core/ports"
)

// GoalTargetRepository reads per-period targets stored as a jsonb object.
type GoalTargetRepository struct {
	db DB
}

func NewGoalTargetRepository(db DB) *GoalTargetRepository {
	return &GoalTargetRepository{db: db}
}

func (r *GoalTargetRepository) FetchGoalTargets(ctx context.Context, key ports.GoalTargetKey) (domain.GoalTargets, error) {
	args := []any{key.PeriodID, string(key.Scope)}
	byAdvisor := key.AdvisorUserID > 0
	if byAdvisor {
		args = append(args, key.AdvisorUserID)
	}

	rows, err := r.db.QueryContext(withQueryName(ctx, "goal_targets"), buildGoalTargetSQL(byAdvisor), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := domain.GoalTargets{}
	if rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		if targets, err = decodeTargets(raw); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return targets, nil
}

// decodeTargets reads "<metric>Target" keys, falling back to bare "<metric>"
// keys. Numbers may be stored as JSON numbers or numeric strings.
func decodeTargets(raw []byte) (domain.GoalTargets, error) {
	targets := domain.GoalTargets{}
	if len(raw) == 0 {
		return targets, nil
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode goal targets: %w", err)
	}
	for _, m := range domain.MetricKeys {
		v, ok := doc[string(m)+"Target"]
		if !ok {
			v, ok = doc[string(m)]
		}
		if !ok {
			continue
		}
		if n, ok := targetNumber(v); ok && n > 0 {
			targets[m] = n
		}
	}
	return targets, nil
}

func targetNumber(v json.RawMessage) (int64, bool) {
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return int64(math.Round(f)), true
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(math.Round(f)), true
		}
	}
	return 0, false
}
