package main

import (
	"net/http"

	"github.com/JaimeStill/scribe/internal/agents"
	"github.com/JaimeStill/scribe/internal/config"
	"github.com/JaimeStill/scribe/internal/diagnostics"
	"github.com/JaimeStill/scribe/internal/documents"
	"github.com/JaimeStill/scribe/internal/history"
	"github.com/JaimeStill/scribe/pkg/lifecycle"
	"github.com/JaimeStill/scribe/pkg/openapi"
	"github.com/JaimeStill/scribe/pkg/routes"
	"github.com/JaimeStill/scribe/web/docs"
)

// registerRoutes configures all HTTP routes for the service.
func registerRoutes(r routes.System, runtime *Runtime, domain *Domain, cfg *config.Config) error {
	r.RegisterGroup(diagnostics.NewHandler(domain.Diagnostics, runtime.Logger, runtime.Pagination).Routes())
	r.RegisterGroup(agents.NewHandler(domain.Agents, runtime.Logger, runtime.Pagination).Routes())
	r.RegisterGroup(documents.NewHandler(domain.Documents, runtime.Logger, runtime.Pagination, cfg.Documents.MaxSizeBytes()).Routes())
	r.RegisterGroup(history.NewHandler(domain.History, runtime.Logger, runtime.Pagination).Routes())

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
		OpenAPI: &openapi.Operation{
			Summary: "Health check endpoint",
			Tags:    []string{"Infrastructure"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Service is healthy"},
			},
		},
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			handleReadinessCheck(w, runtime.Lifecycle)
		},
		OpenAPI: &openapi.Operation{
			Summary: "Readiness check endpoint",
			Tags:    []string{"Infrastructure"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Service is ready"},
				503: {Description: "Service not ready"},
			},
		},
	})

	components := openapi.NewComponents()
	components.AddSchemas(diagnostics.Spec.Schemas())
	components.AddSchemas(agents.Spec.Schemas())
	components.AddSchemas(documents.Spec.Schemas())
	components.AddSchemas(history.Spec.Schemas())

	spec, err := openapi.MarshalJSON(generateSpec(r, components, cfg))
	if err != nil {
		return err
	}

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/api/openapi.json",
		Handler: serveOpenAPISpec(spec),
	})

	r.RegisterGroup(docs.Routes())

	return nil
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}

func serveOpenAPISpec(spec []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(spec)
	}
}
