package classifier

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tweetsense/internal/config"
	"tweetsense/internal/domain"
)

const (
	DefaultHuggingFaceModel = "cardiffnlp/twitter-roberta-base-sentiment"
	DefaultHuggingFaceURL   = "https://router.huggingface.co/hf-inference"
)

var ErrNoPrediction = errors.New("model returned no prediction")

// Classifier is the inference collaborator: one text in, one top label out.
type Classifier interface {
	Classify(ctx context.Context, text string) (*domain.Classification, error)
}

// Model is a Classifier backed by a remote model that has to be brought up
// before it can serve. Load is called once at startup.
type Model interface {
	Classifier
	Load(ctx context.Context) error
	Backend() string
	Name() string
}

// New builds the backend selected by cfg.Backend. The returned model is not
// loaded yet. Empty model and base URL settings select the backend defaults.
func New(ctx context.Context, cfg config.ClassifierConfig, log *zap.Logger) (Model, error) {
	switch cfg.Backend {
	case "huggingface", "":
		return NewHuggingFace(cfg.BaseURL, cfg.Model, cfg.APIToken, cfg.Timeout), nil
	case "gemini":
		return NewGemini(ctx, cfg.APIToken, cfg.Model, cfg.BaseURL, log)
	default:
		return nil, fmt.Errorf("unknown classifier backend %q", cfg.Backend)
	}
}
