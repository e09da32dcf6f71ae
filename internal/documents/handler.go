package documents

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JaimeStill/scribe/pkg/handlers"
	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/JaimeStill/scribe/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP endpoints for context documents.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	maxSize    int64
}

// NewHandler creates a document handler. maxSize bounds uploaded files.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config, maxSize int64) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "documents"),
		pagination: pagination,
		maxSize:    maxSize,
	}
}

// Routes returns the document endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api/documents",
		Tags:        []string{"Documents"},
		Description: "Context documents resolved into agent prompts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "POST", Pattern: "/upload", Handler: h.Upload, OpenAPI: Spec.Upload},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "POST", Pattern: "/{id}/active", Handler: h.SetActive, OpenAPI: Spec.SetActive},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	doc, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[CreateCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	doc, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, doc)
}

// Upload creates a document from a multipart text file. Form fields: file,
// owner, and optionally name (defaults to the file name without extension)
// and active.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+(1<<20))

	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidDocument, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: file is required", ErrInvalidDocument))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxSize+1))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidDocument, err))
		return
	}
	if int64(len(data)) > h.maxSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrTooLarge)
		return
	}

	if ct := http.DetectContentType(data); !strings.HasPrefix(ct, "text/") {
		handlers.RespondError(w, h.logger, http.StatusUnsupportedMediaType, fmt.Errorf("%w: %s", ErrUnsupportedType, ct))
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	}

	cmd := CreateCommand{
		Owner: r.FormValue("owner"),
		Name:  name,
		Text:  string(data),
	}
	if v := r.FormValue("active"); v != "" {
		if active, err := strconv.ParseBool(v); err == nil {
			cmd.Active = &active
		}
	}

	doc, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, doc)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd, err := handlers.DecodeJSON[UpdateCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	doc, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd, err := handlers.DecodeJSON[ActiveCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	doc, err := h.sys.SetActive(r.Context(), id, cmd.Active)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondNoContent(w)
}
