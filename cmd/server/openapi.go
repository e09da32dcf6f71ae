package main

import (
	"github.com/JaimeStill/scribe/internal/config"
	"github.com/JaimeStill/scribe/pkg/openapi"
	"github.com/JaimeStill/scribe/pkg/routes"
)

func generateSpec(rs routes.System, components *openapi.Components, cfg *config.Config) *openapi.Spec {
	spec := &openapi.Spec{
		OpenAPI:    "3.1.0",
		Info:       cfg.API.OpenAPI.Info(cfg.Version),
		Servers:    cfg.API.OpenAPI.Servers(cfg.Server.Addr()),
		Components: components,
		Paths:      make(map[string]*openapi.PathItem),
	}

	for _, group := range rs.Groups() {
		group.Walk(func(path string, tags []string, route routes.Route) {
			if route.OpenAPI == nil {
				return
			}
			op := route.OpenAPI
			if len(op.Tags) == 0 {
				op.Tags = tags
			}
			addOperation(spec, path, route.Method, op)
		})
	}

	for _, route := range rs.Routes() {
		if route.OpenAPI == nil {
			continue
		}
		addOperation(spec, route.Pattern, route.Method, route.OpenAPI)
	}

	return spec
}

func addOperation(spec *openapi.Spec, path, method string, op *openapi.Operation) {
	if spec.Paths[path] == nil {
		spec.Paths[path] = &openapi.PathItem{}
	}

	switch method {
	case "GET":
		spec.Paths[path].Get = op
	case "POST":
		spec.Paths[path].Post = op
	case "PUT":
		spec.Paths[path].Put = op
	case "DELETE":
		spec.Paths[path].Delete = op
	}
}
