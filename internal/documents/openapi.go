package documents

import "github.com/JaimeStill/scribe/pkg/openapi"

type spec struct {
	List      *openapi.Operation
	Find      *openapi.Operation
	Create    *openapi.Operation
	Upload    *openapi.Operation
	Update    *openapi.Operation
	SetActive *openapi.Operation
	Delete    *openapi.Operation
}

// Spec contains OpenAPI operation definitions for document endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List documents",
		Description: "Returns a paginated list of context documents",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Matches name or text", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("owner", "string", "Filter by owner identity", false),
			openapi.QueryParam("name", "string", "Filter by name (contains)", false),
			openapi.QueryParam("active", "boolean", "Filter by active flag", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of documents", "DocumentPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Get document by ID",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create document",
		Description: "Stores a named block of context text",
		RequestBody: openapi.RequestBodyJSON("CreateDocumentCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Document created", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			413: {Description: "Document exceeds maximum size"},
		},
	},
	Upload: &openapi.Operation{
		Summary:     "Upload document",
		Description: "Creates a document from a plain-text file",
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type:     "object",
						Required: []string{"file", "owner"},
						Properties: map[string]*openapi.Schema{
							"file":   {Type: "string", Format: "binary", Description: "Text file"},
							"owner":  {Type: "string", Description: "Owner identity"},
							"name":   {Type: "string", Description: "Document name (defaults to the file name)"},
							"active": {Type: "boolean", Description: "Defaults to true"},
						},
					},
				},
			},
		},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Document created", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			413: {Description: "Document exceeds maximum size"},
			415: {Description: "File is not text"},
		},
	},
	Update: &openapi.Operation{
		Summary: "Update document",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document UUID"),
		},
		RequestBody: openapi.RequestBodyJSON("UpdateDocumentCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document updated", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	SetActive: &openapi.Operation{
		Summary:     "Toggle document activation",
		Description: "Inactive documents are skipped during context resolution",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document UUID"),
		},
		RequestBody: openapi.RequestBodyJSON("DocumentActiveCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document updated", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary: "Delete document",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document UUID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Document deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Document": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "string", Format: "uuid"},
				"owner":         {Type: "string"},
				"name":          {Type: "string", Description: "Name agents reference the document by"},
				"text":          {Type: "string"},
				"active":        {Type: "boolean", Description: "Only active documents are resolved"},
				"user_selected": {Type: "boolean"},
				"created_at":    {Type: "string", Format: "date-time"},
				"updated_at":    {Type: "string", Format: "date-time"},
			},
		},
		"CreateDocumentCommand": {
			Type:     "object",
			Required: []string{"owner", "name", "text"},
			Properties: map[string]*openapi.Schema{
				"owner":         {Type: "string"},
				"name":          {Type: "string"},
				"text":          {Type: "string"},
				"active":        {Type: "boolean", Description: "Defaults to true"},
				"user_selected": {Type: "boolean"},
			},
		},
		"UpdateDocumentCommand": {
			Type:     "object",
			Required: []string{"name", "text"},
			Properties: map[string]*openapi.Schema{
				"name":          {Type: "string"},
				"text":          {Type: "string"},
				"user_selected": {Type: "boolean"},
			},
		},
		"DocumentActiveCommand": {
			Type:     "object",
			Required: []string{"active"},
			Properties: map[string]*openapi.Schema{
				"active": {Type: "boolean"},
			},
		},
		"DocumentPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Document")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
