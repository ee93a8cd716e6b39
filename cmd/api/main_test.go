package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"interview-agent/internal/adapter/qagen"
	"interview-agent/internal/config"
	"interview-agent/internal/database"
	"interview-agent/internal/dto"
	"interview-agent/internal/handler"
	"interview-agent/internal/middleware"
	"interview-agent/internal/repository"
	"interview-agent/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type cannedModel struct {
	response string
}

func (m *cannedModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.response}}}, nil
}

func (m *cannedModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// newTestApp wires the real stack against an in-memory database.
func newTestApp(t *testing.T, model llms.Model) *fiber.App {
	t.Helper()

	db, dialect, err := database.OpenAndMigrate(context.Background(), config.DBConfig{Driver: config.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewInterviewDatabaseAdapter(db, dialect)
	generator := qagen.New(model, config.ProviderGemini, qagen.Options{})

	app := newApp(config.ServerConfig{BodyLimit: 1024 * 1024})
	handler.RegisterRoutes(app,
		handler.NewInterviewHandler(
			service.NewInterviewService(generator, repo, nil),
			service.NewHistoryService(repo, nil, 0),
		),
		handler.NewHealthHandler(service.NewHealthService(repo, nil, generator)),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestAPI_GenerateThenReadBack(t *testing.T) {
	app := newTestApp(t, &cannedModel{
		response: `{"basic":[{"question":"What is a goroutine?","answer":"A lightweight thread."}],"intermediate":[],"expert":[]}`,
	})

	resp, body := doJSON(t, app, http.MethodPost, "/api/agent", `{"job_title":"Go Developer","job_description":"APIs"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	var created dto.InterviewRecordResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Go Developer", created.JobTitle)
	require.Len(t, created.QA.Basic, 1)

	resp, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/interviews/%d", created.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var fetched dto.InterviewRecordResponse
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.QA, fetched.QA)

	resp, body = doJSON(t, app, http.MethodGet, "/api/history?job_title=Go%20Developer", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var history dto.HistoryResponse
	require.NoError(t, json.Unmarshal(body, &history))
	assert.Equal(t, 1, history.Count)

	resp, body = doJSON(t, app, http.MethodGet, "/api/history?job_title=go%20developer", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &history))
	assert.Equal(t, 0, history.Count)
	assert.NotNil(t, history.Items)
}

func TestAPI_Errors(t *testing.T) {
	app := newTestApp(t, &cannedModel{response: "{}"})

	resp, body := doJSON(t, app, http.MethodPost, "/api/agent", `{"job_title":"  "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))

	resp, _ = doJSON(t, app, http.MethodGet, "/api/interviews/999", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/history?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_GenerationUnavailable(t *testing.T) {
	app := newTestApp(t, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/agent", `{"job_title":"SRE","job_description":"On-call"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, string(body))

	resp, body = doJSON(t, app, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history dto.HistoryResponse
	require.NoError(t, json.Unmarshal(body, &history))
	assert.Zero(t, history.Count, "failed generations are not stored")
}

func TestAPI_Health(t *testing.T) {
	app := newTestApp(t, nil)

	resp, body := doJSON(t, app, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, service.StatusOK, health.Status)
	assert.Equal(t, service.ComponentDisabled, health.Cache)
	assert.False(t, health.GenerationAvailable)
}
