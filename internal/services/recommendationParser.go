package services

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"recommender/internal/models"
)

var ErrNoJSONArray = errors.New("no JSON array found in completion")

// Suggestion is one element of the model's answer, before it is matched
// against the catalog.
type Suggestion struct {
	ProductID   models.ProductID `json:"product_id"`
	Explanation string           `json:"explanation"`
	Score       *Score           `json:"score"`
}

// ConfidenceScore returns the model's score or the default when it gave none.
func (s Suggestion) ConfidenceScore() float64 {
	if s.Score == nil {
		return models.DefaultConfidenceScore
	}
	return float64(*s.Score)
}

// Score accepts a JSON number or a numeric string.
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*s = Score(f)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return err
	}
	*s = Score(f)
	return nil
}

// ResponseParser turns raw completion text into suggestions.
type ResponseParser interface {
	Parse(content string) ([]Suggestion, error)
}

// BracketParser reads the text between the first '[' and the last ']' as a
// JSON array, so prose or markdown fences around the array are ignored.
// Elements are read field by field: an element whose product_id is neither
// a string nor a number is skipped, and a badly typed explanation or score
// falls back to its default.
type BracketParser struct{}

func (BracketParser) Parse(content string) ([]Suggestion, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 {
		return nil, ErrNoJSONArray
	}
	if end < start {
		return nil, errors.New("closing bracket appears before opening bracket")
	}

	var elements []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content[start:end+1]), &elements); err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(elements))
	for i, fields := range elements {
		suggestion, err := suggestionFromFields(fields)
		if err != nil {
			log.Debug().Err(err).Int("index", i).Msg("Skipping malformed suggestion")
			continue
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions, nil
}

func suggestionFromFields(fields map[string]json.RawMessage) (Suggestion, error) {
	var suggestion Suggestion

	if raw, ok := fields["product_id"]; ok {
		if err := json.Unmarshal(raw, &suggestion.ProductID); err != nil {
			return Suggestion{}, err
		}
	}

	if raw, ok := fields["explanation"]; ok {
		var explanation string
		if err := json.Unmarshal(raw, &explanation); err == nil {
			suggestion.Explanation = explanation
		}
	}

	if raw, ok := fields["score"]; ok && !isJSONNull(raw) {
		var score Score
		if err := json.Unmarshal(raw, &score); err == nil {
			suggestion.Score = &score
		}
	}

	return suggestion, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
