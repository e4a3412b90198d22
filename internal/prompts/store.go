// Package prompts holds the few-shot example store and the prompt assembler
// that turns trip data into the literal text sent to the completion model.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stage selects which step of the itinerary pipeline a prompt is built for.
type Stage string

const (
	StageNewTrip Stage = "new_trip"
	StageWeather Stage = "weather"
)

// Stages lists every stage in pipeline order.
func Stages() []Stage {
	return []Stage{StageNewTrip, StageWeather}
}

// FewShotExample is one hand-authored prompt/response pair. Response is
// itself a JSON document of the expected output shape.
type FewShotExample struct {
	Prompt   string `yaml:"prompt"`
	Response string `yaml:"response"`
}

//go:embed examples.yaml
var examplesYAML []byte

// ExampleStore is the read-only set of few-shot examples, loaded once per
// process.
type ExampleStore struct {
	examples map[Stage][]FewShotExample
}

// LoadExampleStore parses the examples compiled into the binary.
func LoadExampleStore() (*ExampleStore, error) {
	return ParseExampleStore(examplesYAML)
}

// ParseExampleStore builds a store from YAML and checks that every stage has
// examples and every response is valid JSON.
func ParseExampleStore(data []byte) (*ExampleStore, error) {
	var file struct {
		Stages map[Stage][]FewShotExample `yaml:"stages"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing few-shot examples: %w", err)
	}

	for _, stage := range Stages() {
		examples := file.Stages[stage]
		if len(examples) == 0 {
			return nil, fmt.Errorf("stage %s has no few-shot examples", stage)
		}
		for i, ex := range examples {
			if strings.TrimSpace(ex.Prompt) == "" {
				return nil, fmt.Errorf("stage %s example %d: empty prompt", stage, i+1)
			}
			if !json.Valid([]byte(ex.Response)) {
				return nil, fmt.Errorf("stage %s example %d: response is not valid JSON", stage, i+1)
			}
		}
	}

	return &ExampleStore{examples: file.Stages}, nil
}

// Examples returns the examples of a stage in store order. The slice is a
// copy; callers cannot alter the store.
func (s *ExampleStore) Examples(stage Stage) []FewShotExample {
	src := s.examples[stage]
	out := make([]FewShotExample, len(src))
	copy(out, src)
	return out
}
