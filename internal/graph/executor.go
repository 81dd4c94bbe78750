package graph

import (
	"context"

	"github.com/anonto42/nano-midea/gateway/internal/loaders"
	"github.com/anonto42/nano-midea/gateway/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
	"github.com/sirupsen/logrus"
)

// Request is one GraphQL operation as posted by a client.
type Request struct {
	Query         string
	OperationName string
	Variables     map[string]interface{}
}

// Options configures an Executor. The zero value is usable.
type Options struct {
	MaxDepth  int // 0 means DefaultMaxDepth
	MaxBatch  int
	Metrics   *loaders.Metrics
	Logger    logrus.FieldLogger
	Validator *validator.Validate
}

// Executor runs GraphQL operations against a Store. It is safe for
// concurrent use; every Execute call gets its own loaders.
type Executor struct {
	schema   graphql.Schema
	store    *repositories.Store
	maxDepth int
	loader   loaders.Options
	log      logrus.FieldLogger
}

// NewExecutor builds the schema and returns an Executor over store.
func NewExecutor(store *repositories.Store, opts Options) (*Executor, error) {
	schema, err := NewSchema(opts.Validator)
	if err != nil {
		return nil, err
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Executor{
		schema:   schema,
		store:    store,
		maxDepth: opts.MaxDepth,
		loader: loaders.Options{
			Metrics:  opts.Metrics,
			Logger:   opts.Logger,
			MaxBatch: opts.MaxBatch,
		},
		log: opts.Logger,
	}, nil
}

// Schema returns the executable schema.
func (e *Executor) Schema() graphql.Schema {
	return e.schema
}

// Execute parses, bounds, validates and runs req. Operations rejected
// before execution carry errors only, with no data.
func (e *Executor) Execute(ctx context.Context, req Request) *graphql.Result {
	doc, err := parser.Parse(parser.ParseParams{
		Source: source.NewSource(&source.Source{
			Body: []byte(req.Query),
			Name: "GraphQL request",
		}),
	})
	if err != nil {
		return &graphql.Result{Errors: gqlerrors.FormatErrors(err)}
	}

	if errs := CheckDepth(doc, e.maxDepth); len(errs) > 0 {
		e.log.WithField("operation", req.OperationName).Info("operation too deep")
		return &graphql.Result{Errors: errs}
	}

	if v := graphql.ValidateDocument(&e.schema, doc, nil); !v.IsValid {
		return &graphql.Result{Errors: v.Errors}
	}

	reg := loaders.NewRegistry(e.store, e.loader)
	result := graphql.Execute(graphql.ExecuteParams{
		Schema:        e.schema,
		AST:           doc,
		OperationName: req.OperationName,
		Args:          req.Variables,
		Context:       loaders.WithRegistry(ctx, reg),
	})
	if result.HasErrors() {
		e.log.WithFields(logrus.Fields{
			"operation": req.OperationName,
			"errors":    len(result.Errors),
		}).Info("graphql execution returned errors")
	}
	return result
}
