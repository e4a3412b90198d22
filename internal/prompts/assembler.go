package prompts

import (
	"fmt"
	"strings"
	"text/template"
	"text/template/parse"

	"tripplanner/pkg/utils"
)

const (
	exampleTemplate  = "{{.Prompt}}\n{{.Response}}"
	exampleSeparator = "\n\n"

	newTripSuffix = "This trip is to {{.location}} between {{.trip_start}} and {{.trip_end}}. " +
		"This person will be traveling {{.traveling_with}} and would like to stay in {{.lodging}}. " +
		"They want to {{.adventure}}. Create a daily itinerary for this trip using this information. " +
		"You are a backend data processor that is part of our site's programmatic workflow. " +
		"Output the itinerary as only JSON with no text before or after the JSON."

	weatherSuffix = "Update the following JSON object to include typical weather conditions for the trip " +
		"based on the values of trip_start, trip_end, and location. Keep the object exactly as it is, " +
		"and add a key / value pair to the JSON, with the key being typical_weather and the value being " +
		"a string describing the typical weather for the time period. Add this key / value pair after " +
		"the key / value pair with a key of location. You are a backend data processor that is part of " +
		"our site's programmatic workflow. Output the itinerary as only JSON with no text before or " +
		"after the JSON. {{.input}}"
)

var suffixSources = map[Stage]string{
	StageNewTrip: newTripSuffix,
	StageWeather: weatherSuffix,
}

// MissingVariableError reports a suffix placeholder the caller did not supply.
type MissingVariableError struct {
	Stage Stage
	Name  string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("prompt stage %s: missing variable %q", e.Stage, e.Name)
}

func (e *MissingVariableError) Unwrap() error {
	return utils.ErrMissingVariable
}

type suffixTemplate struct {
	tmpl      *template.Template
	variables []string
}

// Assembler renders the few-shot prompt of a stage. It is immutable after
// construction and safe for concurrent use.
type Assembler struct {
	store    *ExampleStore
	example  *template.Template
	suffixes map[Stage]suffixTemplate
}

func NewAssembler(store *ExampleStore) (*Assembler, error) {
	example, err := template.New("example").Option("missingkey=error").Parse(exampleTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing example template: %w", err)
	}

	suffixes := make(map[Stage]suffixTemplate, len(suffixSources))
	for stage, src := range suffixSources {
		tmpl, err := template.New(string(stage)).Option("missingkey=error").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parsing %s suffix template: %w", stage, err)
		}
		suffixes[stage] = suffixTemplate{tmpl: tmpl, variables: placeholders(tmpl)}
	}

	return &Assembler{store: store, example: example, suffixes: suffixes}, nil
}

// Variables returns the placeholder names the suffix of stage expects.
func (a *Assembler) Variables(stage Stage) []string {
	s, ok := a.suffixes[stage]
	if !ok {
		return nil
	}
	out := make([]string, len(s.variables))
	copy(out, s.variables)
	return out
}

// Render concatenates every example of the stage, in store order, followed by
// the suffix with vars substituted. Extra variables are ignored.
func (a *Assembler) Render(stage Stage, vars map[string]string) (string, error) {
	suffix, ok := a.suffixes[stage]
	if !ok {
		return "", fmt.Errorf("unknown prompt stage %q", stage)
	}
	for _, name := range suffix.variables {
		if _, ok := vars[name]; !ok {
			return "", &MissingVariableError{Stage: stage, Name: name}
		}
	}

	var b strings.Builder
	for i, ex := range a.store.Examples(stage) {
		if err := a.example.Execute(&b, ex); err != nil {
			return "", fmt.Errorf("rendering %s example %d: %w", stage, i+1, err)
		}
		b.WriteString(exampleSeparator)
	}
	if err := suffix.tmpl.Execute(&b, vars); err != nil {
		return "", fmt.Errorf("rendering %s suffix: %w", stage, err)
	}
	return b.String(), nil
}

// placeholders lists the top-level field names referenced by a template, in
// order of first use.
func placeholders(t *template.Template) []string {
	var names []string
	seen := make(map[string]bool)

	var walk func(node parse.Node)
	walk = func(node parse.Node) {
		switch n := node.(type) {
		case *parse.ListNode:
			if n == nil {
				return
			}
			for _, child := range n.Nodes {
				walk(child)
			}
		case *parse.ActionNode:
			walk(n.Pipe)
		case *parse.PipeNode:
			if n == nil {
				return
			}
			for _, cmd := range n.Cmds {
				for _, arg := range cmd.Args {
					walk(arg)
				}
			}
		case *parse.FieldNode:
			if len(n.Ident) > 0 && !seen[n.Ident[0]] {
				seen[n.Ident[0]] = true
				names = append(names, n.Ident[0])
			}
		}
	}
	walk(t.Tree.Root)
	return names
}
