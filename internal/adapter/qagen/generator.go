package qagen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"interview-agent/internal/config"
	"interview-agent/internal/domain"
	"interview-agent/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const (
	DefaultQuestionsPerLevel = 4
	DefaultTimeout           = 60 * time.Second
)

var defaultModels = map[string]string{
	config.ProviderGemini: "gemini-2.0-flash",
	config.ProviderOpenAI: "gpt-4o-mini",
	config.ProviderOllama: "llama3.1",
}

var errNotConfigured = errors.New("generative model is not configured")

// Options tunes a Generator.
type Options struct {
	Temperature       float64
	Timeout           time.Duration
	QuestionsPerLevel int
}

// Generator implements domain.QAGenerator on top of a langchaingo model.
// A Generator without a model is valid and reports itself unavailable.
type Generator struct {
	model       llms.Model
	provider    string
	temperature float64
	timeout     time.Duration
	perLevel    int
}

// New wraps model. A nil model yields a generator that is always unavailable.
func New(model llms.Model, provider string, opts Options) *Generator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.QuestionsPerLevel <= 0 {
		opts.QuestionsPerLevel = DefaultQuestionsPerLevel
	}
	return &Generator{
		model:       model,
		provider:    provider,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
		perLevel:    opts.QuestionsPerLevel,
	}
}

// NewFromConfig builds the provider client selected by cfg.Provider.
// A hosted provider without an API key is not an error: the generator is
// returned unavailable so the rest of the service keeps working.
func NewFromConfig(ctx context.Context, cfg config.LLMConfig) (*Generator, error) {
	l := logger.Get()
	opts := Options{
		Temperature:       cfg.Temperature,
		Timeout:           cfg.Timeout,
		QuestionsPerLevel: cfg.QuestionsPerLevel,
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultModels[cfg.Provider]
	}

	var (
		model llms.Model
		err   error
	)
	switch cfg.Provider {
	case config.ProviderGemini:
		if cfg.APIKey == "" {
			l.Warn("Gemini API key not configured, question generation disabled")
			return New(nil, cfg.Provider, opts), nil
		}
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(modelName),
		)
	case config.ProviderOpenAI:
		if cfg.APIKey == "" {
			l.Warn("OpenAI API key not configured, question generation disabled")
			return New(nil, cfg.Provider, opts), nil
		}
		model, err = openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(modelName),
		)
	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(modelName),
			ollama.WithServerURL(cfg.ServerURL),
		)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	l.Info("Question generator initialized",
		zap.String("provider", cfg.Provider),
		zap.String("model", modelName))
	return New(model, cfg.Provider, opts), nil
}

// Available implements domain.QAGenerator
func (g *Generator) Available() bool {
	return g.model != nil
}

// Generate implements domain.QAGenerator. It makes a single attempt; any
// provider failure or timeout is reported as ErrGenerationUnavailable.
// A response that cannot be parsed is not a failure and yields an empty set.
func (g *Generator) Generate(ctx context.Context, jobTitle, jobDescription string) (domain.QASet, error) {
	l := logger.Get()
	if g.model == nil {
		return domain.QASet{}, domain.NewGenerationUnavailableError(errNotConfigured)
	}

	prompt := BuildPrompt(jobTitle, jobDescription, g.perLevel)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	started := time.Now()
	raw, err := llms.GenerateFromSinglePrompt(callCtx, g.model, prompt,
		llms.WithTemperature(g.temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			l.Error("Question generation timed out",
				zap.String("provider", g.provider),
				zap.Duration("timeout", g.timeout),
				zap.Error(err))
		} else {
			l.Error("Question generation failed",
				zap.String("provider", g.provider),
				zap.Error(err))
		}
		return domain.QASet{}, domain.NewGenerationUnavailableError(err)
	}

	l.Debug("Raw generation response received",
		zap.String("provider", g.provider),
		zap.Duration("elapsed", time.Since(started)),
		zap.String("raw_response", raw))

	result := ParseQASet(raw)
	if result.Outcome == Unparseable {
		l.Warn("Generation response could not be parsed, returning empty set",
			zap.String("reason", result.Reason),
			zap.String("raw_response", raw))
	} else {
		l.Info("Generated interview questions",
			zap.String("job_title", jobTitle),
			zap.Int("basic", len(result.Set.Basic)),
			zap.Int("intermediate", len(result.Set.Intermediate)),
			zap.Int("expert", len(result.Set.Expert)))
	}
	return result.Set, nil
}

var _ domain.QAGenerator = (*Generator)(nil)
