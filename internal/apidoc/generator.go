// Package apidoc builds the documentation graph of a set of resources.
package apidoc

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/kolah/restdoc/internal/config"
	"github.com/kolah/restdoc/internal/decl"
	"github.com/kolah/restdoc/internal/endpoint"
	"github.com/kolah/restdoc/internal/model"
	"github.com/kolah/restdoc/internal/naming"
	"github.com/kolah/restdoc/internal/schema"
)

type Generator struct {
	config     *config.Config
	translator naming.Translator
	schemas    *schema.Extractor
	logger     *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) (*Generator, error) {
	convention, err := naming.ParseConvention(cfg.Naming.Convention)
	if err != nil {
		return nil, fmt.Errorf("creating naming policy: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	translator := naming.NewPolicy(convention)
	return &Generator{
		config:     cfg,
		translator: translator,
		schemas:    schema.New(translator, cfg.OpaqueTypes...),
		logger:     logger,
	}, nil
}

// extraction is the outcome of one operation.
type extraction struct {
	endpoint *model.Endpoint
	models   []model.Schema
}

// Generate extracts every operation in parallel, each with its own endpoint
// extractor, then merges the results in declaration order so that the first
// registration of a model name always comes from the earliest operation.
func (g *Generator) Generate(ctx context.Context, resources []decl.Resource) (*model.Document, error) {
	ops := make([][]decl.Operation, len(resources))
	results := make([][]extraction, len(resources))
	for i, r := range resources {
		ops[i] = r.Operations()
		results[i] = make([]extraction, len(ops[i]))
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.config.Concurrency, 1))

	for i, r := range resources {
		basePath := r.Path()
		for j, op := range ops[i] {
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i][j] = g.extract(basePath, op)
				return nil
			})
		}
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("extracting endpoints: %w", err)
	}

	catalog := model.NewCatalog()
	doc := &model.Document{}
	for i, r := range resources {
		res := model.Resource{
			Name:        r.Name(),
			Path:        r.Path(),
			Description: r.Comment(),
		}
		for j, op := range ops[i] {
			result := results[i][j]
			if result.endpoint == nil {
				g.logger.Debug("operation skipped", "resource", r.Name(), "operation", op.Name(), "reason", "no verb marker")
				continue
			}
			res.Endpoints = append(res.Endpoints, *result.endpoint)
			catalog.Merge(result.models)
		}
		if len(res.Endpoints) == 0 {
			g.logger.Debug("resource skipped", "resource", r.Name(), "reason", "no endpoints")
			continue
		}
		doc.Resources = append(doc.Resources, res)
	}
	doc.Models = catalog.Schemas()

	g.logger.Debug("document generated",
		"resources", len(doc.Resources),
		"endpoints", len(doc.Endpoints()),
		"models", len(doc.Models),
	)
	return doc, nil
}

func (g *Generator) extract(basePath string, op decl.Operation) extraction {
	e := endpoint.New(g.translator, g.schemas, endpoint.Options{
		ParseModels:    g.config.ParseModels,
		ResponseTags:   g.config.ResponseTags,
		ExcludeMarkers: g.config.ExcludeMarkers,
		ShadowType:     g.config.ShadowType,
		Logger:         g.logger,
	})
	ep, ok := e.Extract(basePath, op)
	if !ok {
		return extraction{}
	}
	return extraction{endpoint: ep, models: e.Models()}
}

// Schemas returns the models reachable from root.
func (g *Generator) Schemas(root decl.Type) []model.Schema {
	return g.schemas.Extract(root)
}
