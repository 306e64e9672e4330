package store

import "context"

// Store executes parameterized read queries against the fixed
// three-table development-indicator schema, plus the import paths the
// CSV loader uses. Implementations: postgres (pgx pool) and sqlite.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	Countries(ctx context.Context, f CountryFilter) ([]Country, error)
	Indicators(ctx context.Context, f IndicatorFilter) ([]Indicator, error)
	Values(ctx context.Context, f ValueFilter) ([]Observation, error)

	ImportCountries(ctx context.Context, rows []Country) error
	ImportIndicators(ctx context.Context, rows []Indicator) error
	ImportValues(ctx context.Context, rows []Observation) error

	RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}
