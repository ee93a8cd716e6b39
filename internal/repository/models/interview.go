package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"interview-agent/internal/domain"
)

// InterviewRecord is the interview_records row.
type InterviewRecord struct {
	ID             int64     `db:"id"`
	JobTitle       string    `db:"job_title"`
	JobDescription string    `db:"job_description"`
	QA             QAColumn  `db:"qa"`
	CreatedAt      Timestamp `db:"created_at"`
}

// ToDomain converts the row into a domain record.
func (r *InterviewRecord) ToDomain() *domain.InterviewRecord {
	return &domain.InterviewRecord{
		ID:             r.ID,
		JobTitle:       r.JobTitle,
		JobDescription: r.JobDescription,
		QA:             r.QA.Set.Normalize(),
		CreatedAt:      r.CreatedAt.Time,
	}
}

// QAColumn stores a domain.QASet as JSON text.
// NULL and empty values scan to an empty set. Undecodable values also scan to an
// empty set and keep the decode error in Err so the caller can report it.
type QAColumn struct {
	Set domain.QASet
	Err error
}

// NewQAColumn wraps a set for writing.
func NewQAColumn(set domain.QASet) QAColumn {
	return QAColumn{Set: set.Normalize()}
}

// Value implements the driver.Valuer interface
func (c QAColumn) Value() (driver.Value, error) {
	data, err := json.Marshal(c.Set)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (c *QAColumn) Scan(value interface{}) error {
	c.Set = domain.NewEmptyQASet()
	c.Err = nil

	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		c.Err = fmt.Errorf("unsupported qa column type %T", value)
		return nil
	}

	if s := strings.TrimSpace(string(raw)); s == "" || s == "null" {
		return nil
	}

	var set domain.QASet
	if err := json.Unmarshal(raw, &set); err != nil {
		c.Err = err
		return nil
	}
	c.Set = set.Normalize()
	return nil
}

// Timestamp scans time values that drivers hand back either as time.Time or as text.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Scan implements the sql.Scanner interface
func (t *Timestamp) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v.UTC()
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	}
	return fmt.Errorf("unsupported timestamp type %T", value)
}

// Value implements the driver.Valuer interface
func (t Timestamp) Value() (driver.Value, error) {
	return t.Time, nil
}

func (t *Timestamp) parse(s string) error {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}
