package service

import (
	"context"
	"time"

	"interview-agent/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockInterviewRepository ---
type MockInterviewRepository struct {
	mock.Mock
}

func (m *MockInterviewRepository) Create(ctx context.Context, jobTitle, jobDescription string, qa domain.QASet) (*domain.InterviewRecord, error) {
	args := m.Called(ctx, jobTitle, jobDescription, qa)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewRecord), args.Error(1)
}

func (m *MockInterviewRepository) List(ctx context.Context, filter domain.HistoryFilter) ([]*domain.InterviewRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InterviewRecord), args.Error(1)
}

func (m *MockInterviewRepository) GetByID(ctx context.Context, id int64) (*domain.InterviewRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewRecord), args.Error(1)
}

func (m *MockInterviewRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockQAGenerator ---
type MockQAGenerator struct {
	mock.Mock
}

func (m *MockQAGenerator) Generate(ctx context.Context, jobTitle, jobDescription string) (domain.QASet, error) {
	args := m.Called(ctx, jobTitle, jobDescription)
	return args.Get(0).(domain.QASet), args.Error(1)
}

func (m *MockQAGenerator) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
