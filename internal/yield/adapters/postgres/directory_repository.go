package postgres

import (
	"context"

	"github.com/lib/pq"
)

// AdvisorDirectory resolves advisor display names from users.
type AdvisorDirectory struct {
	db DB
}

func NewAdvisorDirectory(db DB) *AdvisorDirectory {
	return &AdvisorDirectory{db: db}
}

func (d *AdvisorDirectory) FetchAdvisorNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	rows, err := d.db.QueryContext(withQueryName(ctx, "advisor_names"), advisorNamesSQL, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		if name != "" {
			names[id] = name
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
