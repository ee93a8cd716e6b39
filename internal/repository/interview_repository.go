package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"interview-agent/internal/database"
	"interview-agent/internal/domain"
	"interview-agent/internal/logger"
	"interview-agent/internal/repository/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

const selectRecordColumns = `SELECT
		id "id",
		job_title "job_title",
		job_description "job_description",
		qa "qa",
		created_at "created_at"
	FROM interview_records`

// InterviewDatabaseAdapter implements domain.InterviewRepository using sqlx.DB
type InterviewDatabaseAdapter struct {
	db           *sqlx.DB
	dialect      database.Dialect
	now          func() time.Time
	defaultLimit int
	maxLimit     int
}

// Option customizes an InterviewDatabaseAdapter.
type Option func(*InterviewDatabaseAdapter)

// WithClock overrides the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(a *InterviewDatabaseAdapter) { a.now = now }
}

// WithLimits overrides the default and maximum history page sizes.
// Non-positive values keep the built-in limits.
func WithLimits(defaultLimit, maxLimit int) Option {
	return func(a *InterviewDatabaseAdapter) {
		if defaultLimit > 0 {
			a.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			a.maxLimit = maxLimit
		}
	}
}

// NewInterviewDatabaseAdapter creates a new instance of InterviewDatabaseAdapter
func NewInterviewDatabaseAdapter(db *sqlx.DB, dialect database.Dialect, opts ...Option) *InterviewDatabaseAdapter {
	a := &InterviewDatabaseAdapter{
		db:           db,
		dialect:      dialect,
		now:          time.Now,
		defaultLimit: DefaultHistoryLimit,
		maxLimit:     MaxHistoryLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.defaultLimit > a.maxLimit {
		a.defaultLimit = a.maxLimit
	}
	return a
}

// Create implements domain.InterviewRepository
func (a *InterviewDatabaseAdapter) Create(ctx context.Context, jobTitle, jobDescription string, qa domain.QASet) (*domain.InterviewRecord, error) {
	createdAt := a.now().UTC()
	qaCol := models.NewQAColumn(qa)

	var (
		id  int64
		err error
	)
	if a.dialect.ReturningInsert {
		id, err = a.insertReturning(ctx, jobTitle, jobDescription, qaCol, createdAt)
	} else {
		id, err = a.insertLastID(ctx, jobTitle, jobDescription, qaCol, createdAt)
	}
	if err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	return &domain.InterviewRecord{
		ID:             id,
		JobTitle:       jobTitle,
		JobDescription: jobDescription,
		QA:             qaCol.Set,
		CreatedAt:      createdAt,
	}, nil
}

func (a *InterviewDatabaseAdapter) insertLastID(ctx context.Context, jobTitle, jobDescription string, qa models.QAColumn, createdAt time.Time) (int64, error) {
	query := a.db.Rebind(`INSERT INTO interview_records (job_title, job_description, qa, created_at)
		VALUES (?, ?, ?, ?)`)
	res, err := a.db.ExecContext(ctx, query, jobTitle, jobDescription, qa, createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert interview record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted interview record id: %w", err)
	}
	return id, nil
}

// Oracle does not implement LastInsertId, so the identity comes back through an out bind.
func (a *InterviewDatabaseAdapter) insertReturning(ctx context.Context, jobTitle, jobDescription string, qa models.QAColumn, createdAt time.Time) (int64, error) {
	query := a.db.Rebind(`INSERT INTO interview_records (job_title, job_description, qa, created_at)
		VALUES (?, ?, ?, ?) RETURNING id INTO ?`)
	var id int64
	if _, err := a.db.ExecContext(ctx, query, jobTitle, jobDescription, qa, createdAt, sql.Out{Dest: &id}); err != nil {
		return 0, fmt.Errorf("failed to insert interview record: %w", err)
	}
	return id, nil
}

// List implements domain.InterviewRepository
func (a *InterviewDatabaseAdapter) List(ctx context.Context, filter domain.HistoryFilter) ([]*domain.InterviewRecord, error) {
	query := selectRecordColumns
	args := make([]interface{}, 0, 2)
	if filter.JobTitle != "" {
		query += ` WHERE job_title = ?`
		args = append(args, filter.JobTitle)
	}
	query += ` ORDER BY created_at DESC, id DESC ` + a.dialect.LimitClause()
	args = append(args, a.EffectiveLimit(filter.Limit))

	var rows []models.InterviewRecord
	if err := a.db.SelectContext(ctx, &rows, a.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list interview records: %w", err)
	}

	records := make([]*domain.InterviewRecord, 0, len(rows))
	for i := range rows {
		records = append(records, a.toDomain(&rows[i]))
	}
	return records, nil
}

// GetByID implements domain.InterviewRepository
func (a *InterviewDatabaseAdapter) GetByID(ctx context.Context, id int64) (*domain.InterviewRecord, error) {
	var row models.InterviewRecord
	query := a.db.Rebind(selectRecordColumns + ` WHERE id = ?`)
	if err := a.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewRecordNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get interview record %d: %w", id, err)
	}
	return a.toDomain(&row), nil
}

// Ping implements domain.InterviewRepository
func (a *InterviewDatabaseAdapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// EffectiveLimit applies the default and the upper bound to a requested page size.
func (a *InterviewDatabaseAdapter) EffectiveLimit(limit int) int {
	if limit <= 0 {
		return a.defaultLimit
	}
	if limit > a.maxLimit {
		return a.maxLimit
	}
	return limit
}

func (a *InterviewDatabaseAdapter) toDomain(row *models.InterviewRecord) *domain.InterviewRecord {
	if row.QA.Err != nil {
		logger.Get().Warn("Stored qa value could not be decoded, returning empty set",
			zap.Int64("id", row.ID),
			zap.Error(row.QA.Err))
	}
	return row.ToDomain()
}

var _ domain.InterviewRepository = (*InterviewDatabaseAdapter)(nil)
