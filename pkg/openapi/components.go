package openapi

import (
	"bytes"
	"encoding/json"
)

// NewComponents creates components pre-populated with the shared PageRequest
// schema and the standard error responses.
func NewComponents() *Components {
	errorSchema := &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"error": {Type: "string", Description: "Error message"},
		},
	}

	errorResponse := func(description string) *Response {
		return &Response{
			Description: description,
			Content: map[string]*MediaType{
				"application/json": {Schema: SchemaRef("Error")},
			},
		}
	}

	return &Components{
		Schemas: map[string]*Schema{
			"Error": errorSchema,
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number (1-indexed)"},
					"page_size": {Type: "integer", Description: "Results per page"},
					"search":    {Type: "string", Description: "Search query"},
					"sort": {
						Type:        "array",
						Description: "Sort fields",
						Items: &Schema{
							Type: "object",
							Properties: map[string]*Schema{
								"field":      {Type: "string"},
								"descending": {Type: "boolean"},
							},
						},
					},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":     errorResponse("Invalid request"),
			"NotFound":       errorResponse("Resource not found"),
			"Conflict":       errorResponse("Resource conflict"),
			"GatewayTimeout": errorResponse("Operation exceeded its deadline"),
		},
	}
}

// AddSchemas merges schemas into the components. Existing names are kept.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		if _, exists := c.Schemas[name]; exists {
			continue
		}
		c.Schemas[name] = schema
	}
}

// AddResponses merges responses into the components. Existing names are kept.
func (c *Components) AddResponses(responses map[string]*Response) {
	for name, response := range responses {
		if _, exists := c.Responses[name]; exists {
			continue
		}
		c.Responses[name] = response
	}
}

// MarshalJSON renders a spec as indented JSON with a trailing newline.
func MarshalJSON(spec *Spec) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(spec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
