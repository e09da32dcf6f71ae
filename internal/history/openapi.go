package history

import "github.com/JaimeStill/scribe/pkg/openapi"

type spec struct {
	List        *openapi.Operation
	ListByOwner *openapi.Operation
	Find        *openapi.Operation
	Delete      *openapi.Operation
}

// Spec contains OpenAPI operation definitions for history endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List history",
		Description: "Returns recorded invocations, newest first",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Matches input or output text", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("owner", "string", "Filter by owner identity", false),
			openapi.QueryParam("model", "string", "Filter by model identifier", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated history", "HistoryPageResult"),
		},
	},
	ListByOwner: &openapi.Operation{
		Summary:     "List owner history",
		Description: "Returns every retained entry for an owner in ascending time order",
		Parameters: []*openapi.Parameter{
			openapi.StringPathParam("owner", "Owner identity"),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "History entries",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("HistoryEntry")}},
				},
			},
		},
	},
	Find: &openapi.Operation{
		Summary: "Get history entry",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Entry UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("History entry", "HistoryEntry"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary: "Delete history entry",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Entry UUID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Entry deleted"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"HistoryEntry": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"owner":       {Type: "string"},
				"input_text":  {Type: "string", Description: "Composed prompt sent to the model"},
				"output_text": {Type: "string", Description: "Model output, empty when degraded"},
				"model":       {Type: "string"},
				"agent_id":    {Type: "string", Format: "uuid", Description: "Agent that produced the entry, absent for the default prompt"},
				"degraded":    {Type: "boolean", Description: "True when every attempt failed"},
				"attempts":    {Type: "integer"},
				"created_at":  {Type: "string", Format: "date-time"},
			},
		},
		"HistoryPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("HistoryEntry")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
