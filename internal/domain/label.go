package domain

import (
	"fmt"
	"strings"
)

// Label is the raw class identifier emitted by the sentiment model.
type Label string

const (
	LabelNegative Label = "LABEL_0"
	LabelNeutral  Label = "LABEL_1"
	LabelPositive Label = "LABEL_2"
)

// Labels lists every label the model is documented to emit, in class order.
var Labels = []Label{LabelNegative, LabelNeutral, LabelPositive}

// ParseLabel normalises a label string returned by an inference backend.
// Newer checkpoints of the same model family report class names instead of
// LABEL_n identifiers; both spellings are accepted.
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "label_0", "negative":
		return LabelNegative, nil
	case "label_1", "neutral":
		return LabelNeutral, nil
	case "label_2", "positive":
		return LabelPositive, nil
	}
	return Label(s), fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// Classification is the result of one inference call.
type Classification struct {
	Label Label
	Score float64
}
