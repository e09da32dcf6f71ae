package diagnostics

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/scribe/pkg/handlers"
	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/JaimeStill/scribe/pkg/routes"
	"github.com/google/uuid"
)

// Handler exposes diagnostic runs over HTTP.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger,
		pagination: pagination,
	}
}

// Routes returns the route group for diagnostic endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api/diagnostics",
		Tags:        []string{"Diagnostics"},
		Description: "Unified diagnostic pipeline",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Diagnose, OpenAPI: Spec.Diagnose},
			{Method: "GET", Pattern: "/runs", Handler: h.ListRuns, OpenAPI: Spec.ListRuns},
			{Method: "GET", Pattern: "/runs/{id}", Handler: h.FindRun, OpenAPI: Spec.FindRun},
			{Method: "GET", Pattern: "/runs/{id}/stages", Handler: h.Stages, OpenAPI: Spec.Stages},
		},
	}
}

// Diagnose handles POST /api/diagnostics. Only the responses are returned;
// steps are available through the run audit trail.
func (h *Handler) Diagnose(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[Request](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Diagnose(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Responses: result.Responses})
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := RunFiltersFromQuery(r.URL.Query())

	result, err := h.sys.ListRuns(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) FindRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	run, err := h.sys.FindRun(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, run)
}

func (h *Handler) Stages(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	stages, err := h.sys.Stages(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stages)
}
