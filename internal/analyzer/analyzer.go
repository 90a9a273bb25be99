package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tweetsense/internal/classifier"
	"tweetsense/internal/domain"
	"tweetsense/internal/metrics"
)

const PromptMessage = "Please enter a tweet or text for analysis."

// Outcome is what one analysis request renders. Either Prompt is set (no
// input was given) or Sentiment and Score are.
type Outcome struct {
	Prompt    string
	Sentiment domain.Sentiment
	Score     string
	Raw       domain.Classification
}

func (o *Outcome) Empty() bool {
	return o.Prompt != ""
}

type Analyzer struct {
	classifier classifier.Classifier
	backend    string
	log        *zap.Logger
}

// New builds an Analyzer. backend labels the inference metrics.
func New(cl classifier.Classifier, backend string, log *zap.Logger) *Analyzer {
	return &Analyzer{
		classifier: cl,
		backend:    backend,
		log:        log,
	}
}

// Analyze classifies text with a single blocking call to the classifier.
// Blank input is answered with PromptMessage and never reaches the model.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*Outcome, error) {
	if strings.TrimSpace(text) == "" {
		metrics.ObserveAnalysis(metrics.OutcomeEmpty)
		return &Outcome{Prompt: PromptMessage}, nil
	}

	start := time.Now()
	result, err := a.classifier.Classify(ctx, text)
	metrics.ObserveInference(a.backend, time.Since(start))
	if err != nil {
		metrics.ObserveAnalysis(metrics.OutcomeError)
		a.log.Error("classification failed", zap.Error(err), zap.Int("input_len", len(text)))
		return nil, fmt.Errorf("classify: %w", err)
	}

	sentiment, err := domain.SentimentFor(result.Label)
	if err != nil {
		metrics.ObserveAnalysis(metrics.OutcomeError)
		a.log.Error("unmapped label", zap.String("label", string(result.Label)), zap.Float64("score", result.Score))
		return nil, err
	}

	metrics.ObserveAnalysis(sentiment.Text)
	a.log.Info("analysis complete",
		zap.String("label", string(result.Label)),
		zap.String("sentiment", sentiment.Text),
		zap.Float64("score", result.Score),
		zap.Duration("latency", time.Since(start)),
	)

	return &Outcome{
		Sentiment: sentiment,
		Score:     domain.FormatScore(result.Score),
		Raw:       *result,
	}, nil
}
