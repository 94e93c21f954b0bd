package postgres

import "context"

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

type queryNameKey struct{}

// withQueryName labels the queries issued with ctx for the query observer.
func withQueryName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, queryNameKey{}, name)
}

// QueryName returns the label set by the repository, "unnamed" otherwise.
func QueryName(ctx context.Context) string {
	if name, ok := ctx.Value(queryNameKey{}).(string); ok && name != "" {
		return name
	}
	return "unnamed"
}
