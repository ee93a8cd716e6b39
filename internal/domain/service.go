package domain

import "context"

// InterviewRepository is the durable store of interview records.
type InterviewRepository interface {
	// Create inserts a record and returns it with ID and CreatedAt assigned.
	Create(ctx context.Context, jobTitle, jobDescription string, qa QASet) (*InterviewRecord, error)

	// List returns records ordered by CreatedAt descending, bounded by filter.Limit.
	List(ctx context.Context, filter HistoryFilter) ([]*InterviewRecord, error)

	// GetByID returns a single record or an error matching ErrNotFound.
	GetByID(ctx context.Context, id int64) (*InterviewRecord, error)

	// Ping checks store connectivity.
	Ping(ctx context.Context) error
}

// QAGenerator produces a three-level question/answer set for a role.
type QAGenerator interface {
	// Generate returns ErrGenerationUnavailable when the provider is not configured or the call fails.
	Generate(ctx context.Context, jobTitle, jobDescription string) (QASet, error)

	// Available reports whether a provider is configured.
	Available() bool
}
