package agents

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/scribe/internal/models"
)

const (
	minTemperature = 0.0
	maxTemperature = 2.0
)

// fields is the normalized, validated form shared by create, save, and update.
type fields struct {
	name              string
	prompt            string
	model             models.ID
	temperature       float64
	contextDocs       []string
	connectedAgents   []string
	includeTranscript bool
}

func (c CreateCommand) validate() (fields, error) {
	if strings.TrimSpace(c.Owner) == "" {
		return fields{}, fmt.Errorf("%w: owner is required", ErrInvalidAgent)
	}
	return normalize(c.Name, c.Prompt, c.Model, c.Temperature, c.ContextDocs, c.ConnectedAgents, c.IncludeTranscript)
}

func (c UpdateCommand) validate() (fields, error) {
	return normalize(c.Name, c.Prompt, c.Model, c.Temperature, c.ContextDocs, c.ConnectedAgents, c.IncludeTranscript)
}

func normalize(name, prompt, model string, temperature *float64, docs, connected []string, include bool) (fields, error) {
	f := fields{
		name:              strings.TrimSpace(name),
		prompt:            prompt,
		model:             models.Default,
		temperature:       DefaultTemperature,
		contextDocs:       nonNil(docs),
		connectedAgents:   nonNil(connected),
		includeTranscript: include,
	}

	if f.name == "" {
		return fields{}, fmt.Errorf("%w: name is required", ErrInvalidAgent)
	}

	if model != "" {
		id := models.ID(model)
		if err := id.Validate(); err != nil {
			return fields{}, fmt.Errorf("%w: %v", ErrInvalidAgent, err)
		}
		f.model = id
	}

	if temperature != nil {
		t := *temperature
		if t < minTemperature || t > maxTemperature {
			return fields{}, fmt.Errorf("%w: temperature %.2f outside [%.1f, %.1f]", ErrInvalidAgent, t, minTemperature, maxTemperature)
		}
		f.temperature = t
	}

	return f, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
