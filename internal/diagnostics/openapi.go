package diagnostics

import "github.com/JaimeStill/scribe/pkg/openapi"

type spec struct {
	Diagnose *openapi.Operation
	ListRuns *openapi.Operation
	FindRun  *openapi.Operation
	Stages   *openapi.Operation
}

// Spec contains OpenAPI operation definitions for diagnostic endpoints.
var Spec = spec{
	Diagnose: &openapi.Operation{
		Summary:     "Run diagnostic",
		Description: "Runs the owner's agents in order against the transcript and returns one response per agent. Owners without agents receive a single default answer.",
		RequestBody: openapi.RequestBodyJSON("DiagnosticRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent responses in agent order", "DiagnosticResponse"),
			400: openapi.ResponseRef("BadRequest"),
			500: {Description: "Persistence failure"},
			504: {Description: "Run exceeded its deadline"},
		},
	},
	ListRuns: &openapi.Operation{
		Summary:     "List diagnostic runs",
		Description: "Returns the run audit trail, newest first",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("owner", "string", "Filter by owner identity", false),
			openapi.QueryParam("status", "string", "Filter by run status", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated runs", "DiagnosticRunPageResult"),
		},
	},
	FindRun: &openapi.Operation{
		Summary: "Get diagnostic run",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Run UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Run", "DiagnosticRun"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Stages: &openapi.Operation{
		Summary:     "List run stages",
		Description: "Returns the executed nodes of a run in execution order",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Run UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Stages",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("DiagnosticStage")}},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"DiagnosticRequest": {
			Type:     "object",
			Required: []string{"ownerIdentity", "transcriptText"},
			Properties: map[string]*openapi.Schema{
				"ownerIdentity":  {Type: "string"},
				"transcriptText": {Type: "string"},
				"freeContext":    {Type: "string", Description: "Appended to every agent's resolved context"},
			},
		},
		"DiagnosticResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"responses": {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"DiagnosticRun": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"owner":        {Type: "string"},
				"status":       {Type: "string", Enum: []any{"running", "completed", "failed", "timeout"}},
				"agent_count":  {Type: "integer"},
				"error":        {Type: "string"},
				"started_at":   {Type: "string", Format: "date-time"},
				"completed_at": {Type: "string", Format: "date-time"},
			},
		},
		"DiagnosticStage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"run_id":      {Type: "string", Format: "uuid"},
				"node":        {Type: "string", Description: "default, agent-<index>, or done"},
				"iteration":   {Type: "integer"},
				"status":      {Type: "string", Enum: []any{"started", "completed", "failed"}},
				"duration_ms": {Type: "integer"},
				"error":       {Type: "string"},
				"created_at":  {Type: "string", Format: "date-time"},
			},
		},
		"DiagnosticRunPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("DiagnosticRun")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
