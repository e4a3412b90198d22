package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"tripplanner/internal/models/response_models"
	"tripplanner/pkg/utils"
)

// NormalizeOutput parses a raw completion as one strict JSON document.
// Surrounding whitespace is tolerated; any other text before or after the
// document, an empty answer, or a truncated document is ErrMalformedModelOutput.
func NormalizeOutput(raw string) (*response_models.ItineraryDocument, error) {
	text := []byte(strings.TrimSpace(raw))
	if len(text) == 0 {
		return nil, fmt.Errorf("%w: empty completion", utils.ErrMalformedModelOutput)
	}

	var value any
	if err := json.Unmarshal(text, &value); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedModelOutput, err)
	}

	var compacted bytes.Buffer
	if err := json.Compact(&compacted, text); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedModelOutput, err)
	}

	keys, err := topLevelKeys(compacted.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedModelOutput, err)
	}

	return &response_models.ItineraryDocument{
		Raw:   json.RawMessage(compacted.Bytes()),
		Value: value,
		Keys:  keys,
	}, nil
}

func topLevelKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
