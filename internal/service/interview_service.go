package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"interview-agent/internal/domain"
	"interview-agent/internal/logger"
	"interview-agent/internal/validation"

	"go.uber.org/zap"
)

// InterviewService runs the generate-then-persist flow behind POST /api/agent.
type InterviewService interface {
	HandleAgentRequest(ctx context.Context, jobTitle, jobDescription string) (*domain.InterviewRecord, error)
}

type interviewService struct {
	generator domain.QAGenerator
	repo      domain.InterviewRepository
	validator *validation.Validator
}

// NewInterviewService creates a new instance of interviewService
func NewInterviewService(generator domain.QAGenerator, repo domain.InterviewRepository, validator *validation.Validator) InterviewService {
	if validator == nil {
		validator = validation.NewValidator()
	}
	return &interviewService{
		generator: generator,
		repo:      repo,
		validator: validator,
	}
}

// HandleAgentRequest validates the inputs, generates a question set and stores it.
// Nothing is stored when generation is unavailable.
func (s *interviewService) HandleAgentRequest(ctx context.Context, jobTitle, jobDescription string) (*domain.InterviewRecord, error) {
	l := logger.Get()

	jobTitle = strings.TrimSpace(jobTitle)
	jobDescription = strings.TrimSpace(jobDescription)
	if errs := s.validator.ValidateAgentRequest(jobTitle, jobDescription); len(errs) > 0 {
		return nil, errs
	}

	started := time.Now()
	qa, err := s.generator.Generate(ctx, jobTitle, jobDescription)
	if err != nil {
		if !errors.Is(err, domain.ErrGenerationUnavailable) {
			err = domain.NewGenerationUnavailableError(err)
		}
		l.Warn("Question generation unavailable",
			zap.String("job_title", jobTitle),
			zap.Error(err))
		return nil, err
	}
	qa = qa.Normalize()

	record, err := s.repo.Create(ctx, jobTitle, jobDescription, qa)
	if err != nil {
		l.Error("Failed to persist generated interview questions",
			zap.String("job_title", jobTitle),
			zap.String("job_description", jobDescription),
			zap.Any("qa", qa),
			zap.Error(err))
		if !errors.Is(err, domain.ErrPersistence) {
			err = domain.NewPersistenceError(err)
		}
		return nil, err
	}

	l.Info("Interview questions generated",
		zap.Int64("id", record.ID),
		zap.String("job_title", jobTitle),
		zap.Int("total", record.QA.Total()),
		zap.Duration("elapsed", time.Since(started)))
	return record, nil
}
