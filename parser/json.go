package parser

import (
	"encoding/json"
	"fmt"
)

// ParseJSON parses a single JSON object using generics.
func ParseJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &result, nil
}

// ParseJSONArray parses a JSON array into a slice using generics.
func ParseJSONArray[T any](data []byte) ([]T, error) {
	var results []T
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}
	return results, nil
}

// ExtractAndParse locates the first JSON payload in raw LLM output and
// decodes it into T. Extraction failures surface engine.ErrNoJSONFound;
// decode failures report the parse error.
func ExtractAndParse[T any](text string) (*T, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	return ParseJSON[T](raw)
}
