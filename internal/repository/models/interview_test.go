package models

import (
	"testing"
	"time"

	"interview-agent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQAColumn_Value(t *testing.T) {
	col := NewQAColumn(domain.QASet{
		Basic: []domain.QAPair{{Question: "What is a goroutine?", Answer: "A lightweight thread."}},
	})

	v, err := col.Value()
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"basic":[{"question":"What is a goroutine?","answer":"A lightweight thread."}],"intermediate":[],"expert":[]}`,
		v.(string))
}

func TestQAColumn_Scan(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantTotal int
		wantErr   bool
	}{
		{name: "null", input: nil},
		{name: "empty string", input: ""},
		{name: "json null", input: "null"},
		{name: "valid string", input: `{"basic":[{"question":"q","answer":"a"}],"intermediate":[],"expert":[]}`, wantTotal: 1},
		{name: "valid bytes missing levels", input: []byte(`{"expert":[{"question":"q","answer":"a"}]}`), wantTotal: 1},
		{name: "corrupt", input: `{"basic": [`, wantErr: true},
		{name: "unsupported type", input: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var col QAColumn
			require.NoError(t, col.Scan(tt.input))

			assert.Equal(t, tt.wantTotal, col.Set.Total())
			assert.NotNil(t, col.Set.Basic)
			assert.NotNil(t, col.Set.Intermediate)
			assert.NotNil(t, col.Set.Expert)
			if tt.wantErr {
				assert.Error(t, col.Err)
			} else {
				assert.NoError(t, col.Err)
			}
		})
	}
}

func TestTimestamp_Scan(t *testing.T) {
	want := time.Date(2024, 3, 1, 10, 30, 15, 0, time.UTC)

	tests := []struct {
		name  string
		input interface{}
	}{
		{name: "time value", input: want.In(time.FixedZone("KST", 9*60*60))},
		{name: "sqlite text", input: "2024-03-01 10:30:15+00:00"},
		{name: "rfc3339 bytes", input: []byte("2024-03-01T10:30:15Z")},
		{name: "current_timestamp text", input: "2024-03-01 10:30:15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, ts.Scan(tt.input))
			assert.True(t, want.Equal(ts.Time), "got %v", ts.Time)
		})
	}

	var ts Timestamp
	assert.Error(t, ts.Scan("yesterday"))
	assert.Error(t, ts.Scan(3.14))
}

func TestInterviewRecord_ToDomain(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	row := InterviewRecord{
		ID:             7,
		JobTitle:       "SRE",
		JobDescription: "On-call and Kubernetes",
		CreatedAt:      Timestamp{Time: created},
	}

	rec := row.ToDomain()
	assert.Equal(t, int64(7), rec.ID)
	assert.Equal(t, "SRE", rec.JobTitle)
	assert.Equal(t, created, rec.CreatedAt)
	assert.Equal(t, domain.NewEmptyQASet(), rec.QA)
}
