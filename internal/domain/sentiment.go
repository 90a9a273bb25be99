package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrUnknownLabel = errors.New("unknown sentiment label")

// Sentiment is the human-readable view of a label.
type Sentiment struct {
	Text string
	Icon string
}

var sentiments = map[Label]Sentiment{
	LabelNegative: {Text: "Negative", Icon: "😢"},
	LabelNeutral:  {Text: "Neutral", Icon: "😐"},
	LabelPositive: {Text: "Positive", Icon: "😊"},
}

// SentimentFor maps a model label to its sentiment name and glyph.
// Labels outside the documented set return ErrUnknownLabel.
func SentimentFor(label Label) (Sentiment, error) {
	s, ok := sentiments[label]
	if !ok {
		return Sentiment{}, fmt.Errorf("%w: %q", ErrUnknownLabel, string(label))
	}
	return s, nil
}

// FormatScore renders a confidence score with two decimal places.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}
