package agents

import (
	"github.com/JaimeStill/scribe/internal/models"
	"github.com/JaimeStill/scribe/pkg/openapi"
)

// spec holds OpenAPI operation definitions for the agents domain.
type spec struct {
	List        *openapi.Operation
	ListByOwner *openapi.Operation
	Find        *openapi.Operation
	Create      *openapi.Operation
	Save        *openapi.Operation
	Update      *openapi.Operation
	Delete      *openapi.Operation
	Reorder     *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all agent endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List agents",
		Description: "Returns a paginated list of agents with optional filtering and sorting",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Matches name or prompt", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("owner", "string", "Filter by owner identity", false),
			openapi.QueryParam("name", "string", "Filter by agent name (contains)", false),
			openapi.QueryParam("model", "string", "Filter by model identifier", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of agents", "AgentPageResult"),
		},
	},
	ListByOwner: &openapi.Operation{
		Summary:     "List owner agents",
		Description: "Returns the owner's agents in run order",
		Parameters: []*openapi.Parameter{
			openapi.StringPathParam("owner", "Owner identity"),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Agents in ascending order",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Agent")}},
				},
			},
		},
	},
	Find: &openapi.Operation{
		Summary: "Get agent by ID",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent", "Agent"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create agent",
		Description: "Validates and stores a new agent at the end of the owner's order",
		RequestBody: openapi.RequestBodyJSON("CreateAgentCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Agent created", "Agent"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Save: &openapi.Operation{
		Summary:     "Save agent",
		Description: "Updates the owner's agent with the given name, creating it when absent",
		RequestBody: openapi.RequestBodyJSON("CreateAgentCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent saved", "Agent"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary: "Update agent",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		RequestBody: openapi.RequestBodyJSON("UpdateAgentCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent updated", "Agent"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete agent",
		Description: "Removes an agent. References to it by name are left in place",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Agent deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Reorder: &openapi.Operation{
		Summary:     "Reorder agents",
		Description: "Assigns each listed agent its index as order",
		RequestBody: openapi.RequestBodyJSON("ReorderAgentsCommand", true),
		Responses: map[int]*openapi.Response{
			204: {Description: "Order applied"},
			400: openapi.ResponseRef("BadRequest"),
		},
	},
}

// Schemas returns the component schemas referenced by agent operations.
func (spec) Schemas() map[string]*openapi.Schema {
	modelEnum := make([]any, 0, len(models.All()))
	for _, id := range models.All() {
		modelEnum = append(modelEnum, string(id))
	}

	names := func(description string) *openapi.Schema {
		return &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}, Description: description}
	}

	temperature := &openapi.Schema{
		Type:    "number",
		Minimum: openapi.Float(0),
		Maximum: openapi.Float(2),
		Example: DefaultTemperature,
	}

	return map[string]*openapi.Schema{
		"Agent": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                 {Type: "string", Format: "uuid"},
				"owner":              {Type: "string"},
				"name":               {Type: "string"},
				"prompt":             {Type: "string"},
				"model":              {Type: "string", Enum: modelEnum},
				"temperature":        temperature,
				"context_docs":       names("Context document names"),
				"connected_agents":   names("Agent names listed in the prompt"),
				"include_transcript": {Type: "boolean"},
				"order":              {Type: "integer"},
				"created_at":         {Type: "string", Format: "date-time"},
				"updated_at":         {Type: "string", Format: "date-time"},
			},
		},
		"CreateAgentCommand": {
			Type:     "object",
			Required: []string{"owner", "name"},
			Properties: map[string]*openapi.Schema{
				"owner":              {Type: "string"},
				"name":               {Type: "string", Description: "Unique across all owners"},
				"prompt":             {Type: "string"},
				"model":              {Type: "string", Enum: modelEnum},
				"temperature":        temperature,
				"context_docs":       names("Context document names"),
				"connected_agents":   names("Agent names listed in the prompt"),
				"include_transcript": {Type: "boolean"},
			},
		},
		"UpdateAgentCommand": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name":               {Type: "string"},
				"prompt":             {Type: "string"},
				"model":              {Type: "string", Enum: modelEnum},
				"temperature":        temperature,
				"context_docs":       names("Context document names"),
				"connected_agents":   names("Agent names listed in the prompt"),
				"include_transcript": {Type: "boolean"},
			},
		},
		"ReorderAgentsCommand": {
			Type:     "object",
			Required: []string{"owner", "ids"},
			Properties: map[string]*openapi.Schema{
				"owner": {Type: "string"},
				"ids":   {Type: "array", Items: &openapi.Schema{Type: "string", Format: "uuid"}},
			},
		},
		"AgentPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Agent")},
				"total":       {Type: "integer", Description: "Total number of results"},
				"page":        {Type: "integer", Description: "Current page number"},
				"page_size":   {Type: "integer", Description: "Results per page"},
				"total_pages": {Type: "integer", Description: "Total number of pages"},
			},
		},
	}
}
