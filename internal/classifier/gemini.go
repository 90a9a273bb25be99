package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"tweetsense/internal/domain"
)

const defaultGeminiModel = "gemini-2.0-flash"

const instructions = `You classify the sentiment of tweets. The user message is the tweet, verbatim.

Use exactly one label:
- "LABEL_0": negative
- "LABEL_1": neutral
- "LABEL_2": positive

Respond in JSON format only:
{
  "label": "LABEL_0|LABEL_1|LABEL_2",
  "score": 0.0-1.0
}`

// Gemini asks a Gemini model to act as a three-class sentiment classifier
// with the same label set as the Hugging Face model.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a Gemini backend. baseURL may be empty to use the API
// default. A missing model, or the Hugging Face default carried over from a
// shared config, is replaced by defaultGeminiModel.
func NewGemini(ctx context.Context, apiKey, model, baseURL string, log *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" || model == DefaultHuggingFaceModel {
		if model != "" {
			log.Warn("model is not a Gemini model, using default",
				zap.String("configured", model),
				zap.String("model", defaultGeminiModel),
			)
		}
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Backend() string { return "gemini" }
func (g *Gemini) Name() string    { return g.model }

func (g *Gemini) Load(ctx context.Context) error {
	if _, err := g.Classify(ctx, warmupText); err != nil {
		return fmt.Errorf("load model %s: %w", g.model, err)
	}
	return nil
}

// Classify sends the tweet as its own user message so its content can never
// be read as part of the instructions.
func (g *Gemini) Classify(ctx context.Context, text string) (*domain.Classification, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instructions, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("GenAI generate failed: %w", err)
	}

	return parseResponse(resp.Text())
}

func parseResponse(content string) (*domain.Classification, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	if content == "" {
		return nil, ErrNoPrediction
	}

	var result prediction
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to decode model answer: %w", err)
	}
	if result.Label == "" {
		return nil, ErrNoPrediction
	}

	score := result.Score
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return &domain.Classification{
		Label: normalizeLabel(result.Label),
		Score: score,
	}, nil
}
