package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tweetsense/internal/domain"
)

const warmupText = "Model warm-up."

// HuggingFace calls a text-classification model on the Hugging Face
// Inference API.
type HuggingFace struct {
	baseURL string
	model   string
	token   string
	client  *http.Client
}

type hfRequest struct {
	Inputs  string    `json:"inputs"`
	Options hfOptions `json:"options"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type hfError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

func NewHuggingFace(baseURL, model, token string, timeout time.Duration) *HuggingFace {
	if baseURL == "" {
		baseURL = DefaultHuggingFaceURL
	}
	if model == "" {
		model = DefaultHuggingFaceModel
	}

	return &HuggingFace{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (h *HuggingFace) Backend() string { return "huggingface" }
func (h *HuggingFace) Name() string    { return h.model }

// Load sends a warm-up request and blocks until the model answers.
func (h *HuggingFace) Load(ctx context.Context) error {
	if _, err := h.Classify(ctx, warmupText); err != nil {
		return fmt.Errorf("load model %s: %w", h.model, err)
	}
	return nil
}

func (h *HuggingFace) Classify(ctx context.Context, text string) (*domain.Classification, error) {
	body, err := json.Marshal(hfRequest{
		Inputs:  text,
		Options: hfOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/models/"+h.model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("inference API returned status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("inference API returned status %d", resp.StatusCode)
	}

	predictions, err := decodePredictions(raw)
	if err != nil {
		return nil, err
	}

	return topPrediction(predictions)
}

// decodePredictions accepts both [{...}] and [[{...}]] payloads.
func decodePredictions(raw []byte) ([]prediction, error) {
	var nested [][]prediction
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 {
			return nil, ErrNoPrediction
		}
		return nested[0], nil
	}

	var flat []prediction
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return flat, nil
}

func topPrediction(predictions []prediction) (*domain.Classification, error) {
	if len(predictions) == 0 {
		return nil, ErrNoPrediction
	}

	best := predictions[0]
	for _, p := range predictions[1:] {
		if p.Score > best.Score {
			best = p
		}
	}

	return &domain.Classification{
		Label: normalizeLabel(best.Label),
		Score: best.Score,
	}, nil
}

// normalizeLabel maps known spellings onto LABEL_n and passes anything else
// through untouched, so the label mapper can reject it.
func normalizeLabel(s string) domain.Label {
	if l, err := domain.ParseLabel(s); err == nil {
		return l
	}
	return domain.Label(s)
}
