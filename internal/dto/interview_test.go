package dto

import (
	"encoding/json"
	"testing"
	"time"

	"interview-agent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInterviewRecordResponse_AlwaysHasThreeLevels(t *testing.T) {
	rec := &domain.InterviewRecord{
		ID:        3,
		JobTitle:  "Designer",
		QA:        domain.QASet{Basic: []domain.QAPair{{Question: "q", Answer: "a"}}},
		CreatedAt: time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC),
	}

	data, err := json.Marshal(ToInterviewRecordResponse(rec))
	require.NoError(t, err)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &body))
	assert.JSONEq(t, `{"basic":[{"question":"q","answer":"a"}],"intermediate":[],"expert":[]}`, string(body["qa"]))
	assert.JSONEq(t, `"2024-02-03T04:05:06Z"`, string(body["created_at"]))
}

func TestToHistoryResponse_EmptyItemsIsArray(t *testing.T) {
	data, err := json.Marshal(ToHistoryResponse(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"count":0}`, string(data))
}
