package ports

import "context"

type AdvisorDirectoryPort interface {
	// FetchAdvisorNames maps advisor ids to display names. Unknown ids are
	// simply absent from the result.
	FetchAdvisorNames(ctx context.Context, ids []int64) (map[int64]string, error)
}
